package ports

import (
	"context"

	"go.husk.sh/husk/internal/core/domain"
)

// Realizer turns an environment descriptor into a live session: a concrete
// variable map whose PATH lists every build input's bin directory in
// descriptor order.
//
//go:generate mockgen -source=realizer.go -destination=mocks/mock_realizer.go -package=mocks
type Realizer interface {
	// Realize builds the session for the descriptor.
	Realize(ctx context.Context, desc *domain.EnvironmentDescriptor) (*domain.Session, error)
}
