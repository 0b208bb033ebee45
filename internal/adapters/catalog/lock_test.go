package catalog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.husk.sh/husk/internal/adapters/catalog"
	"go.husk.sh/husk/internal/core/domain"
)

func TestFileLockStore_RoundTrip(t *testing.T) {
	store := catalog.NewLockStore()
	path := filepath.Join(t.TempDir(), domain.LockFileName)

	lock := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: "a1b2c3d4e5f60718",
		Platform:       testPlatform,
		Channel:        "1.28.0",
		Strategy:       domain.StrategyExactVersion,
		Toolchain: domain.LockToolchain(domain.ToolchainRef{
			Channel:  domain.Intern("1.28.0"),
			Compiler: domain.NewPackageRef("rustc", "1.28.0", "/husk/store/rustc-1.28.0"),
			Builder:  domain.NewPackageRef("cargo", "1.28.0", "/husk/store/cargo-1.28.0"),
		}),
		Packages: map[string]domain.LockedPackage{
			"openssl@1.1.1w": {Name: "openssl", Version: "1.1.1w", OutPath: "/husk/store/openssl-1.1.1w"},
		},
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(path, lock))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, lock, loaded)
	assert.True(t, loaded.Fresh("a1b2c3d4e5f60718", testPlatform))

	ref, ok := loaded.LookupRequest(domain.PackageRequest{Name: "openssl", Version: "1.1.1w"})
	require.True(t, ok)
	assert.Equal(t, "/husk/store/openssl-1.1.1w", ref.OutPath.String())
}

func TestFileLockStore_MissingFile(t *testing.T) {
	store := catalog.NewLockStore()

	lock, err := store.Load(filepath.Join(t.TempDir(), domain.LockFileName))
	require.NoError(t, err)
	assert.Nil(t, lock)
}

func TestFileLockStore_Malformed(t *testing.T) {
	store := catalog.NewLockStore()
	path := filepath.Join(t.TempDir(), domain.LockFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(path)
	assert.ErrorContains(t, err, "failed to parse lockfile")
}

func TestFileLockStore_SaveCreatesParentDir(t *testing.T) {
	store := catalog.NewLockStore()
	path := filepath.Join(t.TempDir(), domain.DefaultLockfilePath())

	require.NoError(t, store.Save(path, &domain.Lockfile{Version: domain.LockfileVersion}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)
}
