package domain

import "time"

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// LockedPackage is the serialized form of a resolved package reference.
type LockedPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	OutPath string `json:"outPath"`
}

// Ref converts the locked entry back to a PackageRef.
func (p LockedPackage) Ref() PackageRef {
	return NewPackageRef(p.Name, p.Version, p.OutPath)
}

// LockPackage converts a PackageRef to its serialized form.
func LockPackage(ref PackageRef) LockedPackage {
	return LockedPackage{
		Name:    ref.Name.String(),
		Version: ref.Version.String(),
		OutPath: ref.OutPath.String(),
	}
}

// LockedToolchain is the serialized form of a resolved toolchain.
type LockedToolchain struct {
	Channel  string        `json:"channel"`
	Compiler LockedPackage `json:"compiler"`
	Builder  LockedPackage `json:"builder"`
}

// Ref converts the locked toolchain back to a ToolchainRef.
func (t LockedToolchain) Ref() ToolchainRef {
	return ToolchainRef{
		Channel:  Intern(t.Channel),
		Compiler: t.Compiler.Ref(),
		Builder:  t.Builder.Ref(),
	}
}

// LockToolchain converts a ToolchainRef to its serialized form.
func LockToolchain(ref ToolchainRef) LockedToolchain {
	return LockedToolchain{
		Channel:  ref.Channel.String(),
		Compiler: LockPackage(ref.Compiler),
		Builder:  LockPackage(ref.Builder),
	}
}

// Lockfile is a reproducible snapshot of a manifest's resolution: the
// toolchain and every package pinned to concrete out paths. It lets
// sessions start without consulting the catalog as long as the manifest
// has not changed.
type Lockfile struct {
	// Version is the lockfile format version, for future migrations.
	Version int `json:"version"`

	// ManifestDigest is the xxhash digest of the manifest bytes the
	// resolution was computed from.
	ManifestDigest string `json:"manifestDigest"`

	// Platform is the host the resolution was computed for. Out paths are
	// platform-specific, so a lockfile from another platform is stale.
	Platform PlatformID `json:"platform"`

	// Channel and Strategy echo the manifest's channel spec.
	Channel  string             `json:"channel"`
	Strategy ResolutionStrategy `json:"strategy"`

	// Toolchain is the resolved toolchain.
	Toolchain LockedToolchain `json:"toolchain"`

	// Packages maps request specs (name or name@version) to resolved entries.
	Packages map[string]LockedPackage `json:"packages"`

	// GeneratedAt records when the resolution ran.
	GeneratedAt time.Time `json:"generatedAt"`
}

// Fresh reports whether the lockfile still describes the given manifest
// digest on the given platform.
func (l *Lockfile) Fresh(manifestDigest string, platform PlatformID) bool {
	return l.Version == LockfileVersion &&
		l.ManifestDigest == manifestDigest &&
		l.Platform == platform
}

// LookupRequest returns the locked entry for a package request.
func (l *Lockfile) LookupRequest(req PackageRequest) (PackageRef, bool) {
	locked, ok := l.Packages[req.String()]
	if !ok {
		return PackageRef{}, false
	}
	return locked.Ref(), true
}
