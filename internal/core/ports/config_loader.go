package ports

import "go.husk.sh/husk/internal/core/domain"

// ConfigLoader defines the interface for loading the environment manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers husk.yaml starting at cwd and walking upward, and
	// returns the parsed, validated manifest.
	Load(cwd string) (*domain.Manifest, error)
}
