package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// PlatformID identifies a host system in arch-os form (e.g., "x86_64-linux",
// "aarch64-darwin"). Catalog artifacts are keyed by this id.
type PlatformID string

// CurrentPlatform derives the PlatformID of the running process.
// Returns ErrUnsupportedPlatform for architectures the catalog format
// does not name.
func CurrentPlatform() (PlatformID, error) {
	var arch string
	switch runtime.GOARCH {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	default:
		return "", zerr.With(ErrUnsupportedPlatform, "goarch", runtime.GOARCH)
	}
	return PlatformID(arch + "-" + runtime.GOOS), nil
}

// OS returns the operating-system segment of the id (e.g., "linux").
func (p PlatformID) OS() string {
	if i := strings.LastIndex(string(p), "-"); i >= 0 {
		return string(p[i+1:])
	}
	return string(p)
}

// Arch returns the architecture segment of the id (e.g., "x86_64").
func (p PlatformID) Arch() string {
	if i := strings.LastIndex(string(p), "-"); i >= 0 {
		return string(p[:i])
	}
	return ""
}

// PlatformCondition is a pure predicate over an explicit PlatformID.
// It never consults ambient host state; the platform under test is always
// passed in by the caller.
type PlatformCondition string

const (
	// AnyPlatform matches every platform.
	AnyPlatform PlatformCondition = "any"

	// DarwinOnly matches darwin hosts.
	DarwinOnly PlatformCondition = "darwin"

	// LinuxOnly matches linux hosts.
	LinuxOnly PlatformCondition = "linux"
)

// Matches reports whether the condition holds for the given platform.
func (c PlatformCondition) Matches(p PlatformID) bool {
	switch c {
	case AnyPlatform:
		return true
	case DarwinOnly:
		return p.OS() == "darwin"
	case LinuxOnly:
		return p.OS() == "linux"
	default:
		return false
	}
}
