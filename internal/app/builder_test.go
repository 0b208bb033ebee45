package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.husk.sh/husk/internal/app"
	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports/mocks"
)

const testDigest = "a1b2c3d4e5f60718"

func ref(name, version string) domain.PackageRef {
	return domain.NewPackageRef(name, version, "/husk/store/"+name+"-"+version)
}

func testToolchain() domain.ToolchainRef {
	return domain.ToolchainRef{
		Channel:  domain.Intern("1.28.0"),
		Compiler: ref("rustc", "1.28.0"),
		Builder:  ref("cargo", "1.28.0"),
	}
}

func testManifest() *domain.Manifest {
	return testManifestAt("/proj")
}

func testManifestAt(root string) *domain.Manifest {
	return &domain.Manifest{
		Name:       "dev-shell",
		CatalogURL: "https://catalog.husk.sh/index.json",
		Channel:    domain.ChannelSpec{Name: "1.28.0", Strategy: domain.StrategyExactVersion},
		Packages: []domain.PackageRequest{
			{Name: "openssl", Version: "1.1.1w"},
			{Name: "pkg-config"},
		},
		Root: root,
		Path: filepath.Join(root, "husk.yaml"),
	}
}

// resolvedFor maps every request of the manifest to a reference, using the
// requested version or a stand-in for latest.
func resolvedFor(m *domain.Manifest) map[string]domain.PackageRef {
	out := make(map[string]domain.PackageRef)
	for _, req := range m.Requests() {
		version := req.Version
		if version == "" {
			version = "9.9.9"
		}
		out[req.String()] = ref(req.Name, version)
	}
	return out
}

type builderFixture struct {
	builder  *app.Builder
	resolver *mocks.MockCatalogResolver
	locks    *mocks.MockLockStore
	hasher   *mocks.MockHasher
	logger   *mocks.MockLogger
}

func newBuilderFixture(t *testing.T) *builderFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	f := &builderFixture{
		resolver: mocks.NewMockCatalogResolver(ctrl),
		locks:    mocks.NewMockLockStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		logger:   logger,
	}
	f.builder = app.NewBuilder(f.resolver, f.locks, f.hasher, logger)
	return f
}

// expectCatalog programs the live resolution path: digest, no lockfile,
// catalog open, channel and batch package resolution.
func (f *builderFixture) expectCatalog(m *domain.Manifest, resolved map[string]domain.PackageRef) {
	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(filepath.Join(m.Root, ".husk", "husk.lock.json")).Return(nil, nil)
	f.resolver.EXPECT().Open(gomock.Any(), m.CatalogURL, false).Return(nil)
	f.resolver.EXPECT().ResolveChannel(gomock.Any(), m.Channel).Return(testToolchain(), nil)
	f.resolver.EXPECT().ResolveRequests(gomock.Any(), gomock.Eq(m.Requests())).Return(resolved, nil)
}

func inputNames(desc *domain.EnvironmentDescriptor) []string {
	names := make([]string, 0, len(desc.BuildInputs))
	for _, r := range desc.BuildInputs {
		names = append(names, r.String())
	}
	return names
}

func TestBuilder_Resolve_FromCatalog(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	assert.False(t, res.FromLock)
	assert.Equal(t, testDigest, res.Digest)
	assert.Equal(t, testToolchain(), res.Toolchain)
	assert.Equal(t, testToolchain(), res.ChannelToolchain)

	require.NotNil(t, res.Descriptor)
	assert.Equal(t, "dev-shell", res.Descriptor.Name.String())
	assert.Equal(t, []string{
		"openssl@1.1.1w",
		"pkg-config@9.9.9",
		"rustc@1.28.0",
		"cargo@1.28.0",
	}, inputNames(res.Descriptor))
	assert.Equal(t, domain.DefaultHookRule(), res.Descriptor.Hook)
}

func TestBuilder_Resolve_ConditionalInputs(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.Darwin = []domain.PackageRequest{{Name: "security-framework"}}
	m.Linux = []domain.PackageRequest{{Name: "glibc", Version: "2.39"}}
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	platform, err := domain.CurrentPlatform()
	require.NoError(t, err)

	names := inputNames(res.Descriptor)
	switch platform.OS() {
	case "linux":
		assert.Contains(t, names, "glibc@2.39")
		assert.NotContains(t, names, "security-framework@9.9.9")
		assert.Equal(t, "glibc@2.39", names[len(names)-1])
	case "darwin":
		assert.Contains(t, names, "security-framework@9.9.9")
		assert.NotContains(t, names, "glibc@2.39")
	}
}

func TestBuilder_Resolve_OverlayOverridesBaseInput(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.Overlays = []domain.OverlayStage{
		{Name: "bump-openssl", Override: map[string]string{"openssl": "3.0.13"}},
	}
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	// The override replaces the declared slot, it does not append.
	assert.Equal(t, []string{
		"openssl@3.0.13",
		"pkg-config@9.9.9",
		"rustc@1.28.0",
		"cargo@1.28.0",
	}, inputNames(res.Descriptor))
}

func TestBuilder_Resolve_OverlayAddsInput(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.Overlays = []domain.OverlayStage{
		{Name: "extras", Add: map[string]string{"zlib": ""}},
	}
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	// Added names join after the declared inputs, before the toolchain.
	assert.Equal(t, []string{
		"openssl@1.1.1w",
		"pkg-config@9.9.9",
		"zlib@9.9.9",
		"rustc@1.28.0",
		"cargo@1.28.0",
	}, inputNames(res.Descriptor))
}

func TestBuilder_Resolve_OverlayRebindsCompiler(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.Overlays = []domain.OverlayStage{
		{Name: "nightly", Override: map[string]string{"rustc": "1.29.0"}},
	}
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, "rustc@1.29.0", res.Toolchain.Compiler.String())
	assert.Equal(t, "rustc@1.28.0", res.ChannelToolchain.Compiler.String())
	assert.Equal(t, "cargo@1.28.0", res.Toolchain.Builder.String())

	// Exactly one rustc entry, in the compiler slot.
	assert.Equal(t, []string{
		"openssl@1.1.1w",
		"pkg-config@9.9.9",
		"rustc@1.29.0",
		"cargo@1.28.0",
	}, inputNames(res.Descriptor))
}

func TestBuilder_Resolve_StrictOverlayConflict(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.StrictOverlays = true
	m.Overlays = []domain.OverlayStage{
		{Name: "first", Add: map[string]string{"zlib": ""}},
		{Name: "second", Add: map[string]string{"zlib": "1.3"}},
	}
	f.expectCatalog(m, resolvedFor(m))

	_, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.Error(t, err)
	require.ErrorContains(t, err, "overlay binding conflict")
}

func TestBuilder_Resolve_FromLock(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	platform, err := domain.CurrentPlatform()
	require.NoError(t, err)

	lock := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: testDigest,
		Platform:       platform,
		Channel:        m.Channel.Name,
		Strategy:       m.Channel.Strategy,
		Toolchain:      domain.LockToolchain(testToolchain()),
		Packages:       map[string]domain.LockedPackage{},
		GeneratedAt:    time.Now().UTC(),
	}
	for spec, r := range resolvedFor(m) {
		lock.Packages[spec] = domain.LockPackage(r)
	}

	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(filepath.Join(m.Root, ".husk", "husk.lock.json")).Return(lock, nil)
	// No resolver expectations: a fresh lockfile must not touch the catalog.

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	assert.True(t, res.FromLock)
	assert.Equal(t, testToolchain(), res.Toolchain)
	assert.Equal(t, []string{
		"openssl@1.1.1w",
		"pkg-config@9.9.9",
		"rustc@1.28.0",
		"cargo@1.28.0",
	}, inputNames(res.Descriptor))
}

func TestBuilder_Resolve_StaleLockResolvesLive(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	platform, err := domain.CurrentPlatform()
	require.NoError(t, err)

	stale := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: "0000000000000000",
		Platform:       platform,
	}

	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(gomock.Any()).Return(stale, nil)
	f.resolver.EXPECT().Open(gomock.Any(), m.CatalogURL, false).Return(nil)
	f.resolver.EXPECT().ResolveChannel(gomock.Any(), m.Channel).Return(testToolchain(), nil)
	f.resolver.EXPECT().ResolveRequests(gomock.Any(), gomock.Any()).Return(resolvedFor(m), nil)

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)
	assert.False(t, res.FromLock)
}

func TestBuilder_Resolve_RefreshBypassesLock(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	// No locks.Load expectation: refresh skips the lockfile entirely.
	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.resolver.EXPECT().Open(gomock.Any(), m.CatalogURL, true).Return(nil)
	f.resolver.EXPECT().ResolveChannel(gomock.Any(), m.Channel).Return(testToolchain(), nil)
	f.resolver.EXPECT().ResolveRequests(gomock.Any(), gomock.Any()).Return(resolvedFor(m), nil)

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{Refresh: true})
	require.NoError(t, err)
	assert.False(t, res.FromLock)
}

func TestBuilder_Resolve_UnreadableLockFallsBack(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrLockfileParseFailed)
	f.logger.EXPECT().Warn(gomock.Any())
	f.resolver.EXPECT().Open(gomock.Any(), m.CatalogURL, false).Return(nil)
	f.resolver.EXPECT().ResolveChannel(gomock.Any(), m.Channel).Return(testToolchain(), nil)
	f.resolver.EXPECT().ResolveRequests(gomock.Any(), gomock.Any()).Return(resolvedFor(m), nil)

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)
	assert.False(t, res.FromLock)
}

func TestBuilder_Resolve_DigestFailure(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	f.hasher.EXPECT().FileDigest(m.Path).Return("", domain.ErrManifestReadFailed)

	_, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to digest manifest")
}

func TestBuilder_Resolve_CatalogUnavailable(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()

	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(gomock.Any()).Return(nil, nil)
	f.resolver.EXPECT().Open(gomock.Any(), m.CatalogURL, false).Return(domain.ErrCatalogUnavailable)

	_, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestBuilder_Pin(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	var saved *domain.Lockfile
	f.locks.EXPECT().
		Save(filepath.Join(m.Root, ".husk", "husk.lock.json"), gomock.Any()).
		DoAndReturn(func(_ string, lock *domain.Lockfile) error {
			saved = lock
			return nil
		})

	path, err := f.builder.Pin(res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Root, ".husk", "husk.lock.json"), path)

	require.NotNil(t, saved)
	assert.Equal(t, domain.LockfileVersion, saved.Version)
	assert.Equal(t, testDigest, saved.ManifestDigest)
	assert.Equal(t, res.Platform, saved.Platform)
	assert.Equal(t, "1.28.0", saved.Channel)
	assert.Equal(t, domain.StrategyExactVersion, saved.Strategy)
	assert.Equal(t, "rustc", saved.Toolchain.Compiler.Name)
	assert.False(t, saved.GeneratedAt.IsZero())

	require.Len(t, saved.Packages, len(m.Requests()))
	locked, ok := saved.Packages["openssl@1.1.1w"]
	require.True(t, ok)
	assert.Equal(t, "1.1.1w", locked.Version)
}

func TestBuilder_Pin_RoundTripsThroughFreshLock(t *testing.T) {
	f := newBuilderFixture(t)
	m := testManifest()
	m.Overlays = []domain.OverlayStage{
		{Name: "extras", Add: map[string]string{"zlib": ""}},
	}
	f.expectCatalog(m, resolvedFor(m))

	res, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)

	var saved *domain.Lockfile
	f.locks.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ string, lock *domain.Lockfile) error {
		saved = lock
		return nil
	})
	_, err = f.builder.Pin(res)
	require.NoError(t, err)

	// A second resolve replays the pinned state without the catalog.
	f.hasher.EXPECT().FileDigest(m.Path).Return(testDigest, nil)
	f.locks.EXPECT().Load(gomock.Any()).Return(saved, nil)

	replayed, err := f.builder.Resolve(context.Background(), m, app.BuildOptions{})
	require.NoError(t, err)
	assert.True(t, replayed.FromLock)
	assert.Equal(t, domain.GenerateSessionID(res.Descriptor), domain.GenerateSessionID(replayed.Descriptor))
}
