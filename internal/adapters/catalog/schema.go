package catalog

// index is the decoded catalog document. The document is versioned; this
// build understands schemaVersion 1.
type index struct {
	SchemaVersion int                     `json:"schemaVersion"`
	Revision      string                  `json:"revision"`
	Stable        string                  `json:"stable"`
	Channels      map[string]channelEntry `json:"channels"`
	Packages      map[string]packageEntry `json:"packages"`
}

// channelEntry describes one release channel: a compiler and a build tool
// published together under the channel name.
type channelEntry struct {
	Released   string     `json:"released"`
	Components components `json:"components"`
}

type components struct {
	Compiler componentEntry `json:"compiler"`
	Builder  componentEntry `json:"builder"`
}

// componentEntry names a toolchain component and its per-system artifacts.
type componentEntry struct {
	Name    string                 `json:"name"`
	Systems map[string]systemEntry `json:"systems"`
}

// systemEntry carries the artifact location for one platform.
type systemEntry struct {
	OutPath string `json:"outPath"`
}

// packageEntry lists the published versions of one package and which of
// them is current.
type packageEntry struct {
	Latest   string                  `json:"latest"`
	Versions map[string]versionEntry `json:"versions"`
}

type versionEntry struct {
	Systems map[string]systemEntry `json:"systems"`
}
