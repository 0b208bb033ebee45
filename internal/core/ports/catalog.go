package ports

import (
	"context"

	"go.husk.sh/husk/internal/core/domain"
)

// CatalogResolver maps channel specs and package requests to concrete
// references using the channel catalog.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogResolver interface {
	// Open binds the resolver to the catalog at url and loads its index,
	// cache-first. With refresh the index is fetched even when a cached
	// copy exists. Open must be called before any Resolve method.
	Open(ctx context.Context, url string, refresh bool) error

	// ResolveChannel resolves a channel spec to a toolchain whose compiler
	// and build tool come from the same channel entry.
	ResolveChannel(ctx context.Context, spec domain.ChannelSpec) (domain.ToolchainRef, error)

	// ResolvePackage resolves a single package request for the host platform.
	ResolvePackage(ctx context.Context, req domain.PackageRequest) (domain.PackageRef, error)

	// ResolveRequests resolves a batch of package requests. The result maps
	// request spec strings (PackageRequest.String) to resolved references.
	ResolveRequests(ctx context.Context, reqs []domain.PackageRequest) (map[string]domain.PackageRef, error)
}
