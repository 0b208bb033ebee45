// Package config provides the manifest loader for husk.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedManifestVersion is the only husk.yaml schema version this build
// understands. Manifests may omit the field.
const supportedManifestVersion = "1"

// Loader implements ports.ConfigLoader using a YAML manifest.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers husk.yaml by walking up from cwd, then parses and
// validates it into a domain.Manifest.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	manifestPath, err := l.findManifest(cwd)
	if err != nil {
		return nil, err
	}
	return l.loadManifest(manifestPath)
}

func (l *Loader) findManifest(cwd string) (string, error) {
	currentDir := cwd

	for {
		manifestPath := filepath.Join(currentDir, domain.ManifestFileName)
		if _, err := os.Stat(manifestPath); err == nil {
			return manifestPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
}

func (l *Loader) loadManifest(manifestPath string) (*domain.Manifest, error) {
	var file ManifestFile
	if err := readAndUnmarshalYAML(manifestPath, &file); err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}

	if file.Version != "" && file.Version != supportedManifestVersion {
		return nil, zerr.With(domain.ErrUnsupportedManifestVersion, "version", file.Version)
	}

	return l.buildManifest(&file, manifestPath)
}

func (l *Loader) buildManifest(file *ManifestFile, manifestPath string) (*domain.Manifest, error) {
	packages, err := parseRequests(file.Packages)
	if err != nil {
		return nil, zerr.With(err, "section", "packages")
	}

	darwin, err := parseRequests(file.Platforms.Darwin)
	if err != nil {
		return nil, zerr.With(err, "section", "platforms.darwin")
	}

	linux, err := parseRequests(file.Platforms.Linux)
	if err != nil {
		return nil, zerr.With(err, "section", "platforms.linux")
	}

	overlays, err := l.buildOverlays(file.Overlays)
	if err != nil {
		return nil, err
	}

	strategy, err := domain.ParseResolutionStrategy(file.Channel.Strategy)
	if err != nil {
		return nil, err
	}

	m := &domain.Manifest{
		Name:           file.Name,
		CatalogURL:     file.Catalog.URL,
		Channel:        domain.ChannelSpec{Name: file.Channel.Name, Strategy: strategy},
		Packages:       packages,
		Darwin:         darwin,
		Linux:          linux,
		Overlays:       overlays,
		StrictOverlays: file.OverlaysStrict,
		Hook: domain.HookSpec{
			Rule:   hookRule(file.Hook),
			Script: file.Hook.Script,
		},
		Root: filepath.Dir(manifestPath),
		Path: manifestPath,
	}

	if err := m.Validate(); err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}

	return m, nil
}

func (l *Loader) buildOverlays(dtos []OverlayDTO) ([]domain.OverlayStage, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	overlays := make([]domain.OverlayStage, 0, len(dtos))
	for i, dto := range dtos {
		name := dto.Name
		if name == "" {
			name = fmt.Sprintf("overlay[%d]", i)
		}

		if len(dto.Add) == 0 && len(dto.Override) == 0 {
			l.Logger.Warn(fmt.Sprintf("overlay stage %q has no bindings", name))
		}

		for key := range dto.Add {
			if err := validateOverlayKey(key); err != nil {
				return nil, zerr.With(err, "overlay", name)
			}
		}
		for key := range dto.Override {
			if err := validateOverlayKey(key); err != nil {
				return nil, zerr.With(err, "overlay", name)
			}
		}

		overlays = append(overlays, domain.OverlayStage{
			Name:     name,
			Add:      dto.Add,
			Override: dto.Override,
		})
	}

	return overlays, nil
}

// hookRule converts the hook block, filling partial declarations from the
// default rule. A fully absent block stays zero so downstream defaulting
// applies.
func hookRule(dto HookDTO) domain.HookRule {
	rule := domain.HookRule{Command: dto.Command, EvalArg: dto.EvalArg}
	if rule.Command == "" && rule.EvalArg == "" {
		return rule
	}

	defaults := domain.DefaultHookRule()
	if rule.Command == "" {
		rule.Command = defaults.Command
	}
	if rule.EvalArg == "" {
		rule.EvalArg = defaults.EvalArg
	}
	return rule
}

// validateOverlayKey checks that an overlay map key is a bare package name.
func validateOverlayKey(key string) error {
	if key == "" || strings.Contains(key, "@") {
		return zerr.With(domain.ErrInvalidOverlayKey, "name", key)
	}
	return nil
}

func parseRequests(specs []string) ([]domain.PackageRequest, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	requests := make([]domain.PackageRequest, 0, len(specs))
	for _, spec := range specs {
		req, err := domain.ParsePackageRequest(spec)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target
// struct. Unknown keys are rejected so manifest typos surface early.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrManifestParseFailed.Error())
	}

	return nil
}
