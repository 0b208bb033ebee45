package domain

import (
	"path"
	"slices"
)

// PackageRef is the identity of a realizable package: a name, a version and
// the store-style output path whose bin directory joins the session PATH.
// The out path is opaque to husk; it is consumed as-is.
type PackageRef struct {
	// Name is the canonical package name (e.g., "openssl").
	Name InternedString

	// Version is the resolved version string (e.g., "1.1.1w").
	Version InternedString

	// OutPath is the root of the realized package tree.
	OutPath InternedString
}

// NewPackageRef creates a PackageRef from plain strings.
func NewPackageRef(name, version, outPath string) PackageRef {
	return PackageRef{
		Name:    Intern(name),
		Version: Intern(version),
		OutPath: Intern(outPath),
	}
}

// IsZero reports whether the reference is unset.
func (r PackageRef) IsZero() bool {
	return r.Name.IsZero() && r.Version.IsZero() && r.OutPath.IsZero()
}

// BinDir returns the directory that contributes this package's executables
// to a session PATH.
func (r PackageRef) BinDir() string {
	return path.Join(r.OutPath.String(), "bin")
}

// String renders the reference as name@version.
func (r PackageRef) String() string {
	return r.Name.String() + "@" + r.Version.String()
}

// PackageSet is an immutable mapping from package name to PackageRef.
// Keys are unique and insertion order is irrelevant. Composition never
// mutates a set; it produces a new one.
type PackageSet struct {
	refs map[string]PackageRef
}

// NewPackageSet builds a set from the given references. When two references
// share a name the later one wins, matching attribute-set update semantics.
func NewPackageSet(refs ...PackageRef) PackageSet {
	m := make(map[string]PackageRef, len(refs))
	for _, ref := range refs {
		m[ref.Name.String()] = ref
	}
	return PackageSet{refs: m}
}

// Lookup returns the reference bound to name.
func (s PackageSet) Lookup(name string) (PackageRef, bool) {
	ref, ok := s.refs[name]
	return ref, ok
}

// Names returns the bound names in sorted order.
func (s PackageSet) Names() []string {
	names := make([]string, 0, len(s.refs))
	for name := range s.refs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of bindings.
func (s PackageSet) Len() int {
	return len(s.refs)
}

// With returns a new set with the given references bound, shadowing any
// existing bindings of the same names. The receiver is unchanged.
func (s PackageSet) With(refs ...PackageRef) PackageSet {
	m := make(map[string]PackageRef, len(s.refs)+len(refs))
	for name, ref := range s.refs {
		m[name] = ref
	}
	for _, ref := range refs {
		m[ref.Name.String()] = ref
	}
	return PackageSet{refs: m}
}
