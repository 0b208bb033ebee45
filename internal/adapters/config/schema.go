package config

// ManifestFile represents the structure of the husk.yaml manifest.
type ManifestFile struct {
	Version        string       `yaml:"version"`
	Name           string       `yaml:"name"`
	Catalog        CatalogDTO   `yaml:"catalog"`
	Channel        ChannelDTO   `yaml:"channel"`
	Packages       []string     `yaml:"packages"`
	Platforms      PlatformsDTO `yaml:"platforms"`
	Overlays       []OverlayDTO `yaml:"overlays"`
	OverlaysStrict bool         `yaml:"overlays-strict"`
	Hook           HookDTO      `yaml:"hook"`
}

// CatalogDTO locates the channel catalog.
type CatalogDTO struct {
	URL string `yaml:"url"`
}

// ChannelDTO selects the toolchain release channel.
type ChannelDTO struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
}

// PlatformsDTO lists the platform-conditional inputs.
type PlatformsDTO struct {
	Darwin []string `yaml:"darwin"`
	Linux  []string `yaml:"linux"`
}

// OverlayDTO is one declarative overlay stage.
type OverlayDTO struct {
	Name     string            `yaml:"name"`
	Add      map[string]string `yaml:"add"`
	Override map[string]string `yaml:"override"`
}

// HookDTO configures the session hook.
type HookDTO struct {
	Command string `yaml:"command"`
	EvalArg string `yaml:"evalArg"`
	Script  string `yaml:"script"`
}
