// Package catalog implements the CatalogResolver port against a remote
// JSON channel catalog, with an on-disk cache under .husk/cache/catalog.
package catalog

import (
	"context"
	"net/http"
	"runtime"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
)

// Resolver implements ports.CatalogResolver. Open loads the index once;
// the Resolve methods are in-memory lookups after that.
type Resolver struct {
	fetcher  *fetcher
	platform domain.PlatformID

	mu  sync.RWMutex
	idx *index
}

// NewResolver creates a Resolver for the host platform, caching under the
// default catalog cache path.
func NewResolver(logger ports.Logger) (*Resolver, error) {
	platform, err := domain.CurrentPlatform()
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: httpClientTimeout}
	return NewResolverWithClient(domain.DefaultCatalogCachePath(), client, platform, logger)
}

// NewResolverWithClient creates a Resolver with an explicit cache
// directory, HTTP client and platform. Tests use it to stay hermetic.
func NewResolverWithClient(cacheDir string, client *http.Client, platform domain.PlatformID, logger ports.Logger) (*Resolver, error) {
	f, err := newFetcher(cacheDir, client, logger)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		fetcher:  f,
		platform: platform,
	}, nil
}

// Open binds the resolver to the catalog at url and loads its index.
func (r *Resolver) Open(ctx context.Context, url string, refresh bool) error {
	idx, err := r.fetcher.load(ctx, url, refresh)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.idx = idx
	r.mu.Unlock()
	return nil
}

func (r *Resolver) index() (*index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.idx == nil {
		return nil, domain.ErrCatalogNotOpened
	}
	return r.idx, nil
}

// ResolveChannel maps spec to a toolchain. Compiler and build tool always
// come from the same channel entry, never mixed across channels.
func (r *Resolver) ResolveChannel(_ context.Context, spec domain.ChannelSpec) (domain.ToolchainRef, error) {
	idx, err := r.index()
	if err != nil {
		return domain.ToolchainRef{}, err
	}
	if err := spec.Validate(); err != nil {
		return domain.ToolchainRef{}, err
	}

	name := spec.Name
	if spec.Strategy == domain.StrategyLatestStable {
		if idx.Stable == "" {
			return domain.ToolchainRef{}, zerr.With(domain.ErrUnknownChannel, "strategy", string(spec.Strategy))
		}
		name = idx.Stable
	}

	entry, ok := idx.Channels[name]
	if !ok {
		return domain.ToolchainRef{}, zerr.With(domain.ErrUnknownChannel, "channel", name)
	}

	compiler, err := r.componentRef(entry.Components.Compiler, name, "compiler")
	if err != nil {
		return domain.ToolchainRef{}, err
	}
	builder, err := r.componentRef(entry.Components.Builder, name, "builder")
	if err != nil {
		return domain.ToolchainRef{}, err
	}

	return domain.ToolchainRef{
		Channel:  domain.Intern(name),
		Compiler: compiler,
		Builder:  builder,
	}, nil
}

// componentRef selects the artifact of one toolchain component for the
// host platform. The component's version is the channel name.
func (r *Resolver) componentRef(comp componentEntry, channel, role string) (domain.PackageRef, error) {
	if comp.Name == "" {
		missingErr := zerr.With(domain.ErrMissingToolchainBinding, "component", role)
		return domain.PackageRef{}, zerr.With(missingErr, "channel", channel)
	}

	sys, ok := comp.Systems[string(r.platform)]
	if !ok {
		platformErr := zerr.With(domain.ErrUnsupportedPlatform, "component", comp.Name)
		platformErr = zerr.With(platformErr, "channel", channel)
		return domain.PackageRef{}, zerr.With(platformErr, "platform", string(r.platform))
	}

	return domain.NewPackageRef(comp.Name, channel, sys.OutPath), nil
}

// ResolvePackage resolves req for the host platform. An empty version or
// "latest" follows the package's latest pointer.
func (r *Resolver) ResolvePackage(_ context.Context, req domain.PackageRequest) (domain.PackageRef, error) {
	idx, err := r.index()
	if err != nil {
		return domain.PackageRef{}, err
	}

	entry, ok := idx.Packages[req.Name]
	if !ok {
		return domain.PackageRef{}, zerr.With(domain.ErrUnknownPackage, "package", req.Name)
	}

	version := req.Version
	if version == "" || version == domain.LatestVersion {
		version = entry.Latest
	}

	ver, ok := entry.Versions[version]
	if !ok || version == "" {
		versionErr := zerr.With(domain.ErrUnknownPackageVersion, "package", req.Name)
		return domain.PackageRef{}, zerr.With(versionErr, "version", req.Version)
	}

	sys, ok := ver.Systems[string(r.platform)]
	if !ok {
		platformErr := zerr.With(domain.ErrUnsupportedPlatform, "package", req.Name)
		platformErr = zerr.With(platformErr, "version", version)
		return domain.PackageRef{}, zerr.With(platformErr, "platform", string(r.platform))
	}

	return domain.NewPackageRef(req.Name, version, sys.OutPath), nil
}

// ResolveRequests resolves reqs against the loaded index, fanning lookups
// out across CPUs. The result maps request spec strings to references.
func (r *Resolver) ResolveRequests(ctx context.Context, reqs []domain.PackageRequest) (map[string]domain.PackageRef, error) {
	if _, err := r.index(); err != nil {
		return nil, err
	}

	refs := make([]domain.PackageRef, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, req := range reqs {
		g.Go(func() error {
			ref, err := r.ResolvePackage(ctx, req)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make(map[string]domain.PackageRef, len(reqs))
	for i, req := range reqs {
		resolved[req.String()] = refs[i]
	}
	return resolved, nil
}
