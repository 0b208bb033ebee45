package ports

import (
	"context"

	"go.husk.sh/husk/internal/core/domain"
)

// VaultClient fetches items from the session vault via its CLI, using the
// session token already present in the environment.
//
//go:generate mockgen -source=vault.go -destination=mocks/mock_vault.go -package=mocks
type VaultClient interface {
	// Item fetches and decodes the item with the given uuid.
	Item(ctx context.Context, uuid string) (*domain.VaultItem, error)

	// Password fetches the item and extracts its password detail.
	Password(ctx context.Context, uuid string) (string, error)
}
