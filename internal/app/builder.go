package app

import (
	"context"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
	"go.husk.sh/husk/internal/engine/derive"
	"go.husk.sh/husk/internal/engine/overlay"
)

// Builder runs the resolution pipeline: manifest requests are mapped to
// concrete package references (from the lockfile when it is fresh, from the
// catalog otherwise), composed through the overlay registry and assembled
// into an environment descriptor.
type Builder struct {
	resolver ports.CatalogResolver
	locks    ports.LockStore
	hasher   ports.Hasher
	logger   ports.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(resolver ports.CatalogResolver, locks ports.LockStore, hasher ports.Hasher, log ports.Logger) *Builder {
	return &Builder{
		resolver: resolver,
		locks:    locks,
		hasher:   hasher,
		logger:   log,
	}
}

// BuildOptions configures a resolution run.
type BuildOptions struct {
	// Refresh bypasses both the lockfile and the catalog cache.
	Refresh bool
}

// Resolution is the outcome of resolving a manifest.
type Resolution struct {
	// Manifest is the manifest the resolution was computed from.
	Manifest *domain.Manifest

	// Platform is the host platform the resolution targets.
	Platform domain.PlatformID

	// Digest is the manifest content digest, used for lockfile freshness.
	Digest string

	// ChannelToolchain is the toolchain as the channel resolved it, before
	// overlay rebinding. This is what a pinned lockfile records.
	ChannelToolchain domain.ToolchainRef

	// Toolchain is the effective toolchain after overlay rebinding.
	Toolchain domain.ToolchainRef

	// Descriptor is the derived environment descriptor.
	Descriptor *domain.EnvironmentDescriptor

	// Packages maps every manifest request spec to its resolved reference.
	Packages map[string]domain.PackageRef

	// FromLock reports whether the resolution was replayed from the
	// lockfile instead of the catalog.
	FromLock bool
}

// LockfilePath returns the lockfile location for the resolved manifest.
func (r *Resolution) LockfilePath() string {
	return filepath.Join(r.Manifest.Root, domain.DefaultLockfilePath())
}

// Resolve maps the manifest to a Resolution. A fresh lockfile short-circuits
// the catalog entirely; otherwise the catalog is opened (cache-first unless
// opts.Refresh) and every request is resolved live.
func (b *Builder) Resolve(ctx context.Context, m *domain.Manifest, opts BuildOptions) (*Resolution, error) {
	digest, err := b.hasher.FileDigest(m.Path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to digest manifest")
	}

	platform, err := domain.CurrentPlatform()
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if res, ok := b.fromLock(m, platform, digest); ok {
			return res, nil
		}
	}
	return b.fromCatalog(ctx, m, platform, digest, opts.Refresh)
}

// Pin writes the resolution to the manifest's lockfile and returns its path.
func (b *Builder) Pin(res *Resolution) (string, error) {
	packages := make(map[string]domain.LockedPackage, len(res.Packages))
	for spec, ref := range res.Packages {
		packages[spec] = domain.LockPackage(ref)
	}

	lock := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: res.Digest,
		Platform:       res.Platform,
		Channel:        res.Manifest.Channel.Name,
		Strategy:       res.Manifest.Channel.Strategy,
		Toolchain:      domain.LockToolchain(res.ChannelToolchain),
		Packages:       packages,
		GeneratedAt:    time.Now().UTC(),
	}

	path := res.LockfilePath()
	if err := b.locks.Save(path, lock); err != nil {
		return "", err
	}
	return path, nil
}

// fromLock replays a resolution from the lockfile. It declines (second
// return false) when the lockfile is absent, stale for the manifest digest
// or platform, or does not cover every request.
func (b *Builder) fromLock(m *domain.Manifest, platform domain.PlatformID, digest string) (*Resolution, bool) {
	path := filepath.Join(m.Root, domain.DefaultLockfilePath())

	lock, err := b.locks.Load(path)
	if err != nil {
		// An unreadable lockfile falls back to live resolution rather than
		// blocking the session.
		b.logger.Warn("ignoring unreadable lockfile: " + err.Error())
		return nil, false
	}
	if lock == nil || !lock.Fresh(digest, platform) {
		return nil, false
	}

	reqs := m.Requests()
	packages := make(map[string]domain.PackageRef, len(reqs))
	for _, req := range reqs {
		ref, ok := lock.LookupRequest(req)
		if !ok {
			b.logger.Debug("lockfile does not pin " + req.String() + ", resolving live")
			return nil, false
		}
		packages[req.String()] = ref
	}

	toolchain := lock.Toolchain.Ref()
	desc, effective, err := compose(m, platform, toolchain, func(req domain.PackageRequest) (domain.PackageRef, error) {
		ref, ok := lock.LookupRequest(req)
		if !ok {
			return domain.PackageRef{}, zerr.With(domain.ErrBindingNotFound, "request", req.String())
		}
		return ref, nil
	})
	if err != nil {
		b.logger.Warn("pinned resolution no longer composes: " + err.Error())
		return nil, false
	}

	b.logger.Debug("using pinned resolution from " + domain.LockFileName)
	return &Resolution{
		Manifest:         m,
		Platform:         platform,
		Digest:           digest,
		ChannelToolchain: toolchain,
		Toolchain:        effective,
		Descriptor:       desc,
		Packages:         packages,
		FromLock:         true,
	}, true
}

// fromCatalog resolves every request against the channel catalog.
func (b *Builder) fromCatalog(ctx context.Context, m *domain.Manifest, platform domain.PlatformID, digest string, refresh bool) (*Resolution, error) {
	if err := b.resolver.Open(ctx, m.CatalogURL, refresh); err != nil {
		return nil, err
	}

	toolchain, err := b.resolver.ResolveChannel(ctx, m.Channel)
	if err != nil {
		return nil, err
	}

	resolved, err := b.resolver.ResolveRequests(ctx, m.Requests())
	if err != nil {
		return nil, err
	}

	desc, effective, err := compose(m, platform, toolchain, func(req domain.PackageRequest) (domain.PackageRef, error) {
		if ref, ok := resolved[req.String()]; ok {
			return ref, nil
		}
		return b.resolver.ResolvePackage(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Manifest:         m,
		Platform:         platform,
		Digest:           digest,
		ChannelToolchain: toolchain,
		Toolchain:        effective,
		Descriptor:       desc,
		Packages:         resolved,
	}, nil
}

// resolveFunc maps one package request to a concrete reference.
type resolveFunc func(domain.PackageRequest) (domain.PackageRef, error)

// compose turns resolved requests into a descriptor. The base inputs and
// both toolchain components seed a package set keyed by name; overlay stages
// apply on top, so a stage may rebind anything the set names, including the
// compiler. Build-input order is contractual: declared inputs first (re-read
// from the composed set so overrides take effect), then names introduced by
// overlays in stage order, then the toolchain, then the platform
// conditionals.
func compose(m *domain.Manifest, platform domain.PlatformID, toolchain domain.ToolchainRef, resolve resolveFunc) (*domain.EnvironmentDescriptor, domain.ToolchainRef, error) {
	base := make([]domain.PackageRef, 0, len(m.Packages))
	for _, req := range m.Packages {
		ref, err := resolve(req)
		if err != nil {
			return nil, domain.ToolchainRef{}, err
		}
		base = append(base, ref)
	}

	seed := make([]domain.PackageRef, 0, len(base)+2)
	seed = append(seed, base...)
	seed = append(seed, toolchain.Compiler, toolchain.Builder)

	var regOpts []overlay.Option
	if m.StrictOverlays {
		regOpts = append(regOpts, overlay.WithStrictConflicts())
	}
	registry := overlay.NewRegistry(regOpts...)
	for _, stage := range m.Overlays {
		registry.Append(overlay.FromStage(stage, resolve))
	}

	final, err := registry.Apply(domain.NewPackageSet(seed...))
	if err != nil {
		return nil, domain.ToolchainRef{}, err
	}

	// Overlay rebinding reaches the toolchain components too: the effective
	// compiler is whatever the composed set binds under the compiler's name.
	compilerName := toolchain.Compiler.Name.String()
	builderName := toolchain.Builder.Name.String()

	effective := toolchain
	if ref, ok := final.Lookup(compilerName); ok {
		effective.Compiler = ref
	}
	if ref, ok := final.Lookup(builderName); ok {
		effective.Builder = ref
	}

	inputs, err := orderedInputs(m, final, compilerName, builderName)
	if err != nil {
		return nil, domain.ToolchainRef{}, err
	}

	conditionals, err := conditionalInputs(m, final, resolve)
	if err != nil {
		return nil, domain.ToolchainRef{}, err
	}

	desc, err := derive.Build(derive.Request{
		Name:         m.Name,
		Platform:     platform,
		Base:         inputs,
		Toolchain:    effective,
		Conditionals: conditionals,
		Hook:         m.EffectiveHookRule(),
		HookScript:   m.Hook.Script,
	})
	if err != nil {
		return nil, domain.ToolchainRef{}, err
	}
	return desc, effective, nil
}

// orderedInputs lists the non-toolchain build inputs in contractual order:
// the manifest's declared packages first, then names an overlay introduced,
// stage by stage. Every name reads its final binding from the composed set.
func orderedInputs(m *domain.Manifest, final domain.PackageSet, compilerName, builderName string) ([]domain.PackageRef, error) {
	inputs := make([]domain.PackageRef, 0, final.Len())
	seen := make(map[string]struct{}, final.Len())

	for _, req := range m.Packages {
		ref, ok := final.Lookup(req.Name)
		if !ok {
			return nil, zerr.With(domain.ErrBindingNotFound, "binding", req.Name)
		}
		inputs = append(inputs, ref)
		seen[req.Name] = struct{}{}
	}

	for _, stage := range m.Overlays {
		for _, name := range stage.BindingNames() {
			if _, dup := seen[name]; dup {
				continue
			}
			// Toolchain rebindings surface through the toolchain slots, not
			// as extra inputs.
			if name == compilerName || name == builderName {
				continue
			}
			ref, ok := final.Lookup(name)
			if !ok {
				return nil, zerr.With(domain.ErrBindingNotFound, "binding", name)
			}
			inputs = append(inputs, ref)
			seen[name] = struct{}{}
		}
	}
	return inputs, nil
}

// conditionalInputs resolves the platform-conditional requests. A name an
// overlay has bound follows the composed set; anything else resolves by its
// own request, so a conditional pin never collides with an unrelated base
// pin of the same name.
func conditionalInputs(m *domain.Manifest, final domain.PackageSet, resolve resolveFunc) ([]domain.ConditionalInput, error) {
	overlayBound := make(map[string]struct{})
	for _, stage := range m.Overlays {
		for _, name := range stage.BindingNames() {
			overlayBound[name] = struct{}{}
		}
	}

	conds := make([]domain.ConditionalInput, 0, len(m.Darwin)+len(m.Linux))
	appendAll := func(when domain.PlatformCondition, reqs []domain.PackageRequest) error {
		for _, req := range reqs {
			var (
				ref domain.PackageRef
				err error
			)
			if _, bound := overlayBound[req.Name]; bound {
				var ok bool
				ref, ok = final.Lookup(req.Name)
				if !ok {
					err = zerr.With(domain.ErrBindingNotFound, "binding", req.Name)
				}
			} else {
				ref, err = resolve(req)
			}
			if err != nil {
				return err
			}
			conds = append(conds, domain.ConditionalInput{When: when, Ref: ref})
		}
		return nil
	}

	if err := appendAll(domain.DarwinOnly, m.Darwin); err != nil {
		return nil, err
	}
	if err := appendAll(domain.LinuxOnly, m.Linux); err != nil {
		return nil, err
	}
	return conds, nil
}
