package domain

import "go.trai.ch/zerr"

// ResolutionStrategy selects how a channel spec is matched against the catalog.
type ResolutionStrategy string

const (
	// StrategyExactVersion matches the channel whose name equals the spec's
	// name exactly (e.g., "1.28.0").
	StrategyExactVersion ResolutionStrategy = "exact"

	// StrategyLatestStable follows the catalog's stable pointer and ignores
	// the spec's name.
	StrategyLatestStable ResolutionStrategy = "latest-stable"
)

// ParseResolutionStrategy parses a manifest strategy string.
// The empty string defaults to exact matching.
func ParseResolutionStrategy(s string) (ResolutionStrategy, error) {
	switch s {
	case "", string(StrategyExactVersion):
		return StrategyExactVersion, nil
	case string(StrategyLatestStable):
		return StrategyLatestStable, nil
	default:
		return "", zerr.With(ErrInvalidStrategy, "strategy", s)
	}
}

// ChannelSpec names a toolchain release channel and how to match it.
type ChannelSpec struct {
	// Name is the channel name (e.g., "1.28.0"). Required for exact matching,
	// ignored for latest-stable.
	Name string

	// Strategy selects the matching rule.
	Strategy ResolutionStrategy
}

// Validate checks the spec for internal consistency.
func (c ChannelSpec) Validate() error {
	if c.Strategy == StrategyExactVersion && c.Name == "" {
		return ErrInvalidChannelSpec
	}
	return nil
}

// ToolchainRef is the resolved pair of toolchain components for a channel.
// Both references report the channel's version.
type ToolchainRef struct {
	// Channel is the resolved channel name.
	Channel InternedString

	// Compiler is the channel's compiler component.
	Compiler PackageRef

	// Builder is the channel's build-tool component.
	Builder PackageRef
}

// IsZero reports whether the toolchain has not been resolved.
func (t ToolchainRef) IsZero() bool {
	return t.Channel.IsZero() && t.Compiler.IsZero() && t.Builder.IsZero()
}
