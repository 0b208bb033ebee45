package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// LatestVersion is the version spec that follows a package's latest
// pointer in the catalog. An empty version means the same thing.
const LatestVersion = "latest"

// PackageRequest is a package name with an optional version pin.
// An empty version resolves to the catalog's latest entry for the name.
type PackageRequest struct {
	// Name is the package name (e.g., "openssl").
	Name string

	// Version is the requested version, or "" for the catalog's latest.
	Version string
}

// ParsePackageRequest parses a "name" or "name@version" specification.
func ParsePackageRequest(spec string) (PackageRequest, error) {
	name, version, found := strings.Cut(spec, "@")
	if name == "" || (found && version == "") {
		return PackageRequest{}, zerr.With(ErrInvalidPackageSpec, "spec", spec)
	}
	return PackageRequest{Name: name, Version: version}, nil
}

// String renders the request in spec form.
func (r PackageRequest) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "@" + r.Version
}

// OverlayStage is a declarative overlay from the manifest: new bindings to
// add and existing bindings to override. Within one stage binding order is
// immaterial; across stages the manifest list order is contractual.
type OverlayStage struct {
	// Name identifies the stage in conflict and cycle reports.
	Name string

	// Add binds names that are expected to be new. Values are version pins
	// ("" for latest).
	Add map[string]string

	// Override rebinds names that earlier stages or the base set bound.
	Override map[string]string
}

// BindingNames returns every name the stage binds, additions before
// overrides, each group sorted. A name present in both maps appears once.
func (s OverlayStage) BindingNames() []string {
	names := make([]string, 0, len(s.Add)+len(s.Override))
	names = append(names, sortedKeys(s.Add)...)
	for _, name := range sortedKeys(s.Override) {
		if _, dup := s.Add[name]; dup {
			continue
		}
		names = append(names, name)
	}
	return names
}

// HookSpec is the manifest's hook configuration.
type HookSpec struct {
	// Rule is the interception rule; zero means DefaultHookRule.
	Rule HookRule

	// Script is extra script text appended to the generated hook.
	Script string
}

// Manifest is the parsed, validated view of husk.yaml, decoupled from the
// on-disk schema.
type Manifest struct {
	// Name is the environment name.
	Name string

	// CatalogURL is the opaque HTTPS location of the channel catalog.
	CatalogURL string

	// Channel selects the toolchain release channel.
	Channel ChannelSpec

	// Packages are the base inputs in declaration order.
	Packages []PackageRequest

	// Darwin and Linux are the platform-conditional inputs in declaration
	// order. Darwin entries precede linux entries in the derived descriptor.
	Darwin []PackageRequest
	Linux  []PackageRequest

	// Overlays are the declarative overlay stages in declaration order.
	Overlays []OverlayStage

	// StrictOverlays turns duplicate overlay bindings into errors instead
	// of silent shadowing.
	StrictOverlays bool

	// Hook is the session hook configuration.
	Hook HookSpec

	// Root is the directory containing the manifest.
	Root string

	// Path is the absolute path of the manifest file.
	Path string
}

var envNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validate checks the manifest's invariants.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingEnvironmentName
	}
	if !envNamePattern.MatchString(m.Name) {
		return zerr.With(ErrInvalidEnvironmentName, "name", m.Name)
	}
	if m.CatalogURL == "" {
		return ErrMissingCatalogURL
	}
	if err := m.Channel.Validate(); err != nil {
		return err
	}
	return nil
}

// Requests returns every package request the manifest can resolve: base
// inputs, conditional inputs and overlay entries. Duplicate specs collapse.
func (m *Manifest) Requests() []PackageRequest {
	seen := make(map[PackageRequest]struct{})
	var out []PackageRequest

	add := func(reqs ...PackageRequest) {
		for _, req := range reqs {
			if _, dup := seen[req]; dup {
				continue
			}
			seen[req] = struct{}{}
			out = append(out, req)
		}
	}

	add(m.Packages...)
	add(m.Darwin...)
	add(m.Linux...)
	for _, stage := range m.Overlays {
		for _, name := range sortedKeys(stage.Add) {
			add(PackageRequest{Name: name, Version: stage.Add[name]})
		}
		for _, name := range sortedKeys(stage.Override) {
			add(PackageRequest{Name: name, Version: stage.Override[name]})
		}
	}
	return out
}

// EffectiveHookRule returns the manifest's hook rule, falling back to the
// default when unset.
func (m *Manifest) EffectiveHookRule() HookRule {
	if m.Hook.Rule.IsZero() {
		return DefaultHookRule()
	}
	return m.Hook.Rule
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
