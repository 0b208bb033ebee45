package domain

// ConditionalInput is a package that joins the build inputs only when its
// condition matches the host platform.
type ConditionalInput struct {
	// When is the platform predicate guarding the input.
	When PlatformCondition

	// Ref is the package added when the predicate holds.
	Ref PackageRef
}

// HookRule names the one command the session hook wraps and the subcommand
// whose output is evaluated into the session environment.
type HookRule struct {
	// Command is the wrapped executable name (e.g., "op").
	Command string

	// EvalArg is the first argument that switches the wrapper into eval
	// mode (e.g., "signin"). Every other invocation passes through.
	EvalArg string
}

// DefaultHookRule returns the stock rule wrapping `op signin`.
func DefaultHookRule() HookRule {
	return HookRule{Command: "op", EvalArg: "signin"}
}

// IsZero reports whether no hook command is configured.
func (r HookRule) IsZero() bool {
	return r.Command == ""
}

// EnvironmentDescriptor is the complete, platform-specific description of a
// shell environment. BuildInputs is ordered and may contain duplicate
// identities; realization preserves both.
type EnvironmentDescriptor struct {
	// Name is the environment name from the manifest.
	Name InternedString

	// Platform is the host the descriptor was derived for.
	Platform PlatformID

	// BuildInputs are the packages whose bin directories join the session
	// PATH, in contractual order: base inputs as declared, compiler, build
	// tool, then matching conditional inputs in declaration order.
	BuildInputs []PackageRef

	// Hook is the interception rule for the session hook.
	Hook HookRule

	// HookScript is extra script text appended to the generated hook.
	HookScript string
}

// BinDirs returns the bin directory of every build input, in input order.
func (d *EnvironmentDescriptor) BinDirs() []string {
	dirs := make([]string, 0, len(d.BuildInputs))
	for _, ref := range d.BuildInputs {
		dirs = append(dirs, ref.BinDir())
	}
	return dirs
}
