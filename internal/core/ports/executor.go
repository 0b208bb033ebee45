// Package ports defines the core interfaces for the application.
package ports

import "context"

// Executor defines the interface for running commands inside a session
// environment.
//
// The env parameter contains environment variables in "KEY=VALUE" format,
// typically produced by a Realizer.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes argv attached to the caller's terminal and returns the
	// command's exit code. Launch failures (including command-not-found)
	// are returned unwrapped so callers can surface them natively.
	Run(ctx context.Context, argv []string, env []string) (int, error)

	// Capture executes argv with stdout captured and stderr streaming
	// through to the caller's terminal. Used for eval-mode interception,
	// where stdout is consumed rather than displayed.
	Capture(ctx context.Context, argv []string, env []string) ([]byte, int, error)
}
