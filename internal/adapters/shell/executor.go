// Package shell realizes environment descriptors into live sessions and runs
// commands inside them.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"go.husk.sh/husk/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Executor implements ports.Executor using os/exec. Interactive invocations
// run under a pty so full-screen programs and prompts behave as they would
// outside the session.
type Executor struct {
	logger ports.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Executor.
type Option func(*Executor)

// WithStdio overrides the standard streams the executor attaches to
// commands. Primarily for tests.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates an Executor bound to the process standard streams.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.Executor = (*Executor)(nil)

// Run executes argv attached to the caller's terminal and returns the
// command's exit code. Launch failures are returned exactly as the platform
// reports them.
func (e *Executor) Run(ctx context.Context, argv []string, env []string) (int, error) {
	cmd, err := e.command(ctx, argv, env)
	if err != nil {
		return -1, err
	}

	e.logger.Debug("running " + strings.Join(argv, " "))

	if tty, ok := e.stdin.(*os.File); ok && term.IsTerminal(int(tty.Fd())) {
		return e.runPty(cmd, tty)
	}

	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		return -1, err
	}
	return exitStatus(cmd.Wait())
}

// Capture executes argv with stdout collected and stderr streaming through,
// so prompts stay visible while the output remains clean for evaluation.
func (e *Executor) Capture(ctx context.Context, argv []string, env []string) ([]byte, int, error) {
	cmd, err := e.command(ctx, argv, env)
	if err != nil {
		return nil, -1, err
	}

	e.logger.Debug("capturing " + strings.Join(argv, " "))

	var stdout bytes.Buffer
	cmd.Stdin = e.stdin
	cmd.Stdout = &stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		return nil, -1, err
	}
	code, err := exitStatus(cmd.Wait())
	return stdout.Bytes(), code, err
}

// command builds the exec.Cmd for argv with its executable resolved through
// the session PATH rather than the host PATH.
func (e *Executor) command(ctx context.Context, argv []string, env []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, zerr.New("no command given")
	}

	name := argv[0]
	executable := name
	if !strings.Contains(name, string(os.PathSeparator)) {
		lp, err := lookPath(name, env)
		if err != nil {
			return nil, &exec.Error{Name: name, Err: err}
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // user provided command
	// Preserve the name as invoked; CommandContext rewrites Args[0] to the
	// resolved path.
	cmd.Args[0] = name
	cmd.Env = env
	return cmd, nil
}

// runPty runs the command under a pseudo-terminal wired to the caller's tty.
func (e *Executor) runPty(cmd *exec.Cmd, tty *os.File) (int, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, err
	}
	defer func() { _ = ptmx.Close() }()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			_ = pty.InheritSize(tty, ptmx)
		}
	}()
	winch <- syscall.SIGWINCH
	defer func() {
		signal.Stop(winch)
		close(winch)
	}()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err == nil {
		defer func() { _ = term.Restore(int(tty.Fd()), oldState) }()
	}

	go func() { _, _ = io.Copy(ptmx, tty) }()
	_, _ = io.Copy(e.stdout, ptmx)

	return exitStatus(cmd.Wait())
}

// exitStatus maps a Wait error to an exit code. A non-zero exit is a normal
// outcome, not an error.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env, ignoring the host PATH entirely.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, entry := range env {
		if strings.HasPrefix(entry, "PATH=") {
			path = strings.TrimPrefix(entry, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: an empty path element means ".".
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
