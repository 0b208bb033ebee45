package domain_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"go.husk.sh/husk/internal/core/domain"
)

func TestParsePackageRequest(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    domain.PackageRequest
		wantErr bool
	}{
		{"bare name", "openssl", domain.PackageRequest{Name: "openssl"}, false},
		{"pinned", "openssl@1.1.1w", domain.PackageRequest{Name: "openssl", Version: "1.1.1w"}, false},
		{"empty", "", domain.PackageRequest{}, true},
		{"missing version after at", "openssl@", domain.PackageRequest{}, true},
		{"missing name", "@1.0", domain.PackageRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePackageRequest(tt.spec)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), domain.ErrInvalidPackageSpec.Error()) {
					t.Fatalf("expected ErrInvalidPackageSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePackageRequest(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseResolutionStrategy(t *testing.T) {
	if s, err := domain.ParseResolutionStrategy(""); err != nil || s != domain.StrategyExactVersion {
		t.Errorf("empty strategy should default to exact, got %q, %v", s, err)
	}
	if s, err := domain.ParseResolutionStrategy("latest-stable"); err != nil || s != domain.StrategyLatestStable {
		t.Errorf("ParseResolutionStrategy(latest-stable) = %q, %v", s, err)
	}
	if _, err := domain.ParseResolutionStrategy("nightly"); err == nil || !strings.Contains(err.Error(), domain.ErrInvalidStrategy.Error()) {
		t.Errorf("expected ErrInvalidStrategy, got %v", err)
	}
}

func TestManifest_Validate(t *testing.T) {
	valid := func() *domain.Manifest {
		return &domain.Manifest{
			Name:       "rust-op-shell",
			CatalogURL: "https://channels.husk.sh/rust/catalog.json",
			Channel:    domain.ChannelSpec{Name: "1.28.0", Strategy: domain.StrategyExactVersion},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	m := valid()
	m.Name = ""
	if !errors.Is(m.Validate(), domain.ErrMissingEnvironmentName) {
		t.Error("missing name should be rejected")
	}

	m = valid()
	m.Name = "bad name!"
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), domain.ErrInvalidEnvironmentName.Error()) {
		t.Error("invalid name should be rejected")
	}

	m = valid()
	m.CatalogURL = ""
	if !errors.Is(m.Validate(), domain.ErrMissingCatalogURL) {
		t.Error("missing catalog url should be rejected")
	}

	m = valid()
	m.Channel = domain.ChannelSpec{Strategy: domain.StrategyExactVersion}
	if !errors.Is(m.Validate(), domain.ErrInvalidChannelSpec) {
		t.Error("exact strategy without channel name should be rejected")
	}

	m = valid()
	m.Channel = domain.ChannelSpec{Strategy: domain.StrategyLatestStable}
	if err := m.Validate(); err != nil {
		t.Errorf("latest-stable without channel name should be accepted, got %v", err)
	}
}

func TestManifest_RequestsCollectsAndDedupes(t *testing.T) {
	m := &domain.Manifest{
		Packages: []domain.PackageRequest{{Name: "openssl"}, {Name: "pkg-config"}},
		Darwin:   []domain.PackageRequest{{Name: "darwin-security-shim"}},
		Linux:    []domain.PackageRequest{{Name: "inotify-tools"}},
		Overlays: []domain.OverlayStage{
			{
				Name:     "team-pins",
				Add:      map[string]string{"ripgrep": "13.0.0"},
				Override: map[string]string{"openssl": "1.1.1w"},
			},
		},
	}

	var specs []string
	for _, req := range m.Requests() {
		specs = append(specs, req.String())
	}

	want := []string{
		"openssl", "pkg-config", "darwin-security-shim", "inotify-tools",
		"ripgrep@13.0.0", "openssl@1.1.1w",
	}
	if !slices.Equal(specs, want) {
		t.Errorf("Requests() = %v, want %v", specs, want)
	}

	// openssl and openssl@1.1.1w are distinct requests; an exact duplicate
	// collapses.
	m.Packages = append(m.Packages, domain.PackageRequest{Name: "openssl"})
	if got := len(m.Requests()); got != len(want) {
		t.Errorf("duplicate request should collapse, got %d specs", got)
	}
}

func TestManifest_EffectiveHookRule(t *testing.T) {
	m := &domain.Manifest{}
	if got := m.EffectiveHookRule(); got != domain.DefaultHookRule() {
		t.Errorf("unset hook rule should default, got %+v", got)
	}

	m.Hook.Rule = domain.HookRule{Command: "vault", EvalArg: "login"}
	if got := m.EffectiveHookRule(); got.Command != "vault" || got.EvalArg != "login" {
		t.Errorf("explicit hook rule ignored, got %+v", got)
	}
}
