// Package derive assembles environment descriptors from resolved inputs.
//
// The builder is pure: it reorders and filters the refs it is given, it
// never resolves names or touches the catalog. Input order is contractual
// because PATH precedence in the realized session follows build-input
// order, so the builder appends deterministically and never deduplicates.
package derive

import (
	"go.trai.ch/zerr"

	"go.husk.sh/husk/internal/core/domain"
)

// Request carries everything the builder needs to assemble one descriptor.
type Request struct {
	// Name is the environment name from the manifest.
	Name string

	// Platform selects which conditional inputs participate.
	Platform domain.PlatformID

	// Base holds the unconditional package refs in manifest order.
	Base []domain.PackageRef

	// Toolchain supplies the compiler and builder refs. Both must be
	// bound; a partially resolved toolchain is a wiring bug upstream.
	Toolchain domain.ToolchainRef

	// Conditionals are appended in declaration order when their
	// condition matches Platform.
	Conditionals []domain.ConditionalInput

	// Hook configures the shell hook wrapper for the session.
	Hook domain.HookRule

	// HookScript is extra shell source appended to the activation
	// script, verbatim.
	HookScript string
}

// Build assembles the environment descriptor for req.
//
// Build inputs are ordered: base refs first, then the toolchain compiler,
// then the toolchain builder, then every conditional input whose condition
// matches req.Platform, in declaration order. Duplicate refs are kept as
// given; collapsing them would silently change PATH precedence.
func Build(req Request) (*domain.EnvironmentDescriptor, error) {
	if req.Toolchain.Compiler.IsZero() {
		return nil, zerr.With(
			zerr.With(domain.ErrMissingToolchainBinding, "component", "compiler"),
			"channel", req.Toolchain.Channel.String(),
		)
	}
	if req.Toolchain.Builder.IsZero() {
		return nil, zerr.With(
			zerr.With(domain.ErrMissingToolchainBinding, "component", "builder"),
			"channel", req.Toolchain.Channel.String(),
		)
	}

	inputs := make([]domain.PackageRef, 0, len(req.Base)+2+len(req.Conditionals))
	inputs = append(inputs, req.Base...)
	inputs = append(inputs, req.Toolchain.Compiler, req.Toolchain.Builder)
	for _, cond := range req.Conditionals {
		if cond.When.Matches(req.Platform) {
			inputs = append(inputs, cond.Ref)
		}
	}

	hook := req.Hook
	if hook.IsZero() {
		hook = domain.DefaultHookRule()
	}

	return &domain.EnvironmentDescriptor{
		Name:        domain.Intern(req.Name),
		Platform:    req.Platform,
		BuildInputs: inputs,
		Hook:        hook,
		HookScript:  req.HookScript,
	}, nil
}
