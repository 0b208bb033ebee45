package domain

import "path/filepath"

const (
	// HuskDirName is the name of the internal workspace directory.
	HuskDirName = ".husk"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// CatalogDirName is the name of the catalog cache directory.
	CatalogDirName = "catalog"

	// SessionDirName is the name of the session state directory.
	SessionDirName = "sessions"

	// ManifestFileName is the name of the project manifest file.
	ManifestFileName = "husk.yaml"

	// LockFileName is the name of the pinned resolution file.
	LockFileName = "husk.lock.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// ScriptPerm is the permission for generated executable scripts (rwx------).
	ScriptPerm = 0o700
)

// DefaultHuskPath returns the root directory for husk metadata, relative to
// the project root.
func DefaultHuskPath() string {
	return HuskDirName
}

// DefaultCatalogCachePath returns the catalog cache directory.
// It joins .husk, cache, and catalog.
func DefaultCatalogCachePath() string {
	return filepath.Join(HuskDirName, CacheDirName, CatalogDirName)
}

// DefaultSessionPath returns the session state directory.
// It joins .husk and sessions.
func DefaultSessionPath() string {
	return filepath.Join(HuskDirName, SessionDirName)
}

// DefaultLockfilePath returns the pinned resolution file path.
// It joins .husk and husk.lock.json.
func DefaultLockfilePath() string {
	return filepath.Join(HuskDirName, LockFileName)
}
