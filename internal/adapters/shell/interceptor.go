package shell

import (
	"context"
	"slices"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
)

// Interceptor is the in-process twin of the shell hook function: it applies
// the session's hook rule to a single command invocation.
type Interceptor struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewInterceptor creates an Interceptor.
func NewInterceptor(executor ports.Executor, logger ports.Logger) *Interceptor {
	return &Interceptor{executor: executor, logger: logger}
}

var _ ports.Interceptor = (*Interceptor)(nil)

// Intercept runs argv inside the session. When argv names the hook command
// with its eval argument first, stdout is captured and applied to the
// session as exported variables; every other invocation runs attached to the
// caller's terminal. The command's exit code is relayed either way, and
// launch failures surface exactly as the platform reports them.
func (i *Interceptor) Intercept(ctx context.Context, session *domain.Session, rule domain.HookRule, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, nil
	}

	if !evalMode(rule, argv) {
		return i.executor.Run(ctx, argv, session.Environ())
	}

	output, code, err := i.executor.Capture(ctx, argv, session.Environ())
	if err != nil {
		return code, err
	}
	if code != 0 {
		return code, nil
	}

	exports := ParseExports(string(output))
	keys := make([]string, 0, len(exports))
	for key := range exports {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		session.Set(key, exports[key])
		i.logger.Debug("applied session export " + key)
	}
	return 0, nil
}

// evalMode reports whether argv triggers eval-mode interception: the hook
// command invoked with the eval argument as its first argument.
func evalMode(rule domain.HookRule, argv []string) bool {
	if rule.IsZero() || argv[0] != rule.Command {
		return false
	}
	return len(argv) > 1 && argv[1] == rule.EvalArg
}

// ParseExports extracts variable assignments from shell export statements,
// the format session-producing commands print for eval. Lines that are not
// export statements are ignored.
func ParseExports(output string) map[string]string {
	exports := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ";")

		assignment, ok := strings.CutPrefix(line, "export ")
		if !ok {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimSpace(assignment), "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		exports[key] = unquote(value)
	}
	return exports
}

// unquote strips one matching pair of single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
