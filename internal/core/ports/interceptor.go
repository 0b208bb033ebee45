package ports

import (
	"context"

	"go.husk.sh/husk/internal/core/domain"
)

// Interceptor routes command invocations through the session hook rule.
//
//go:generate mockgen -source=interceptor.go -destination=mocks/mock_interceptor.go -package=mocks
type Interceptor interface {
	// Intercept runs argv inside the session. When argv names the hook
	// command with its eval argument first, the command's stdout is applied
	// to the session as exported variables; every other invocation passes
	// through to the executor unchanged. Returns the command's exit code.
	Intercept(ctx context.Context, session *domain.Session, rule domain.HookRule, argv []string) (int, error)
}
