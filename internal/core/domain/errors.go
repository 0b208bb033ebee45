package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when no husk.yaml can be found in the
	// working directory or any of its parents.
	ErrManifestNotFound = zerr.New("could not find husk.yaml")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrUnsupportedManifestVersion is returned when the manifest declares a
	// schema version this build does not understand.
	ErrUnsupportedManifestVersion = zerr.New("unsupported manifest version, expected \"1\"")

	// ErrMissingEnvironmentName is returned when a manifest has no name.
	ErrMissingEnvironmentName = zerr.New("missing environment name")

	// ErrInvalidEnvironmentName is returned when an environment name is invalid.
	ErrInvalidEnvironmentName = zerr.New("environment name can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingCatalogURL is returned when a manifest does not declare a catalog URL.
	ErrMissingCatalogURL = zerr.New("missing catalog url")

	// ErrInvalidPackageSpec is returned when a package specification is malformed.
	ErrInvalidPackageSpec = zerr.New("invalid package specification, expected format: name or name@version")

	// ErrInvalidOverlayKey is returned when an overlay map key carries a
	// version pin. Pins belong in the map value.
	ErrInvalidOverlayKey = zerr.New("invalid overlay binding name, version pins belong in the value")

	// ErrInvalidStrategy is returned when a resolution strategy is invalid.
	ErrInvalidStrategy = zerr.New("invalid resolution strategy, expected 'exact' or 'latest-stable'")

	// ErrInvalidChannelSpec is returned when exact resolution is requested
	// without a channel name.
	ErrInvalidChannelSpec = zerr.New("channel name required for exact resolution")

	// ErrUnknownChannel is returned when the requested channel does not exist
	// in the catalog.
	ErrUnknownChannel = zerr.New("channel not found in catalog")

	// ErrCatalogUnavailable is returned when the catalog cannot be fetched and
	// no cached copy exists.
	ErrCatalogUnavailable = zerr.New("catalog unavailable")

	// ErrCatalogNotOpened is returned when a resolve is attempted before the
	// catalog index has been loaded.
	ErrCatalogNotOpened = zerr.New("catalog index not loaded")

	// ErrCatalogRequestFailed is returned when the catalog HTTP request fails.
	ErrCatalogRequestFailed = zerr.New("failed to make catalog request")

	// ErrCatalogParseFailed is returned when the catalog payload cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog")

	// ErrCatalogCacheCreateFailed is returned when the catalog cache directory
	// cannot be created.
	ErrCatalogCacheCreateFailed = zerr.New("failed to create catalog cache directory")

	// ErrCatalogCacheReadFailed is returned when reading from the catalog cache fails.
	ErrCatalogCacheReadFailed = zerr.New("failed to read from catalog cache")

	// ErrCatalogCacheWriteFailed is returned when writing to the catalog cache fails.
	ErrCatalogCacheWriteFailed = zerr.New("failed to write to catalog cache")

	// ErrUnknownPackage is returned when a package name is not present in the catalog.
	ErrUnknownPackage = zerr.New("package not found in catalog")

	// ErrUnknownPackageVersion is returned when a package exists but the
	// requested version does not.
	ErrUnknownPackageVersion = zerr.New("package version not found in catalog")

	// ErrUnsupportedPlatform is returned when no artifact exists for the host
	// platform, or the host architecture cannot be mapped to a platform id.
	ErrUnsupportedPlatform = zerr.New("platform not supported")

	// ErrBindingNotFound is returned when an overlay or consumer looks up a
	// name that is not bound in the package set.
	ErrBindingNotFound = zerr.New("binding not found in package set")

	// ErrCircularOverlay is returned when resolving a deferred overlay binding
	// re-enters itself.
	ErrCircularOverlay = zerr.New("circular overlay binding")

	// ErrOverlayConflict is returned in strict mode when an overlay rebinds a
	// name that is already bound.
	ErrOverlayConflict = zerr.New("overlay binding conflict")

	// ErrMissingToolchainBinding is returned when a derivation is requested
	// before the toolchain has been resolved.
	ErrMissingToolchainBinding = zerr.New("toolchain binding missing")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrShellNotFound is returned when no shell can be determined for an
	// interactive session.
	ErrShellNotFound = zerr.New("could not determine user shell")

	// ErrInvalidEnvFormat is returned when print-env is asked for an
	// unknown output format.
	ErrInvalidEnvFormat = zerr.New("invalid environment format, expected 'shell' or 'json'")

	// ErrVaultCLIMissing is returned when the op command cannot be located.
	ErrVaultCLIMissing = zerr.New("op command not found")

	// ErrVaultSessionMissing is returned when no OP_SESSION_* variable is set.
	ErrVaultSessionMissing = zerr.New("no OP_SESSION variable in environment")

	// ErrVaultSessionAmbiguous is returned when more than one OP_SESSION_*
	// variable is set.
	ErrVaultSessionAmbiguous = zerr.New("multiple OP_SESSION variables in environment")

	// ErrVaultItemGet is returned when op exits non-zero while fetching an item.
	ErrVaultItemGet = zerr.New("failed to get item")

	// ErrVaultItemParse is returned when an op item payload cannot be parsed.
	ErrVaultItemParse = zerr.New("failed to parse item")

	// ErrVaultNoPassword is returned when an item carries no password detail.
	ErrVaultNoPassword = zerr.New("item has no password field")
)
