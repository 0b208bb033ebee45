// Package app implements the application layer for husk: it orchestrates
// manifest loading, resolution, session realization and command execution
// behind the operations the CLI exposes.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.husk.sh/husk/internal/adapters/shell"
	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
)

// Environment output formats accepted by PrintEnv.
const (
	FormatShell = "shell"
	FormatJSON  = "json"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *Builder
	realizer     ports.Realizer
	executor     ports.Executor
	interceptor  ports.Interceptor
	vault        ports.VaultClient
	tracer       ports.Tracer
	logger       ports.Logger

	dir    string
	stdout io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder *Builder,
	realizer ports.Realizer,
	executor ports.Executor,
	interceptor ports.Interceptor,
	vault ports.VaultClient,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		realizer:     realizer,
		executor:     executor,
		interceptor:  interceptor,
		vault:        vault,
		tracer:       tracer,
		logger:       log,
		dir:          ".",
		stdout:       os.Stdout,
	}
}

// WithDirectory changes the directory manifest discovery starts from.
func (a *App) WithDirectory(dir string) *App {
	if dir != "" {
		a.dir = dir
	}
	return a
}

// WithStdout redirects operation output.
// This is primarily used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// Enter resolves the manifest, realizes the session and replaces the
// caller's prompt with an interactive shell inside it. The shell's exit
// code is returned so it can propagate to the husk process.
func (a *App) Enter(ctx context.Context) (int, error) {
	ctx, span := a.tracer.Start(ctx, "enter")
	defer span.End()

	res, session, err := a.realizeSession(ctx, BuildOptions{})
	if err != nil {
		span.RecordError(err)
		return 1, err
	}
	span.SetAttribute("environment", session.Name)

	shellPath, _ := session.Lookup("SHELL")
	if shellPath == "" {
		err := domain.ErrShellNotFound
		span.RecordError(err)
		return 1, err
	}

	rcDir := filepath.Join(res.Manifest.Root, domain.DefaultSessionPath())
	rcPath, err := shell.WriteSessionRC(rcDir, session, res.Descriptor)
	if err != nil {
		span.RecordError(err)
		return 1, err
	}

	argv, extraEnv := shell.EnterCommand(shellPath, rcPath)
	env := append(session.Environ(), extraEnv...)

	a.logger.Info("entering " + session.Name + " (channel " + res.Toolchain.Channel.String() + ")")
	code, err := a.executor.Run(ctx, argv, env)
	if err != nil {
		span.RecordError(err)
		return code, err
	}

	a.logger.Debug("left " + session.Name)
	return code, nil
}

// Exec resolves the manifest, realizes the session and runs argv inside it
// through the hook interceptor. The command's exit code is returned; launch
// failures (including command-not-found) surface unchanged.
func (a *App) Exec(ctx context.Context, argv []string) (int, error) {
	ctx, span := a.tracer.Start(ctx, "exec")
	defer span.End()

	res, session, err := a.realizeSession(ctx, BuildOptions{})
	if err != nil {
		span.RecordError(err)
		return 1, err
	}
	span.SetAttribute("environment", session.Name)
	if len(argv) > 0 {
		span.SetAttribute("command", argv[0])
	}

	code, err := a.interceptor.Intercept(ctx, session, res.Descriptor.Hook, argv)
	if err != nil {
		span.RecordError(err)
	}
	return code, err
}

// PrintEnv emits the realized session environment in the given format:
// "shell" prints eval-safe export lines, "json" a sorted object.
func (a *App) PrintEnv(ctx context.Context, format string) error {
	ctx, span := a.tracer.Start(ctx, "print-env")
	defer span.End()

	if format != FormatShell && format != FormatJSON {
		err := zerr.With(domain.ErrInvalidEnvFormat, "format", format)
		span.RecordError(err)
		return err
	}

	_, session, err := a.realizeSession(ctx, BuildOptions{})
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("environment", session.Name)
	span.SetAttribute("format", format)

	if err := writeEnv(a.stdout, session.Environ(), format); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Hook prints the session hook function for the manifest's rule. The text
// is what a shell sources to route the wrapped command through eval mode.
func (a *App) Hook(_ context.Context) error {
	m, err := a.loadManifest()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(a.stdout, shell.HookText(m.EffectiveHookRule()))
	return nil
}

// ResolveOptions configures the Resolve operation.
type ResolveOptions struct {
	// Write pins the resolution to the lockfile.
	Write bool

	// Refresh bypasses the lockfile and the catalog cache.
	Refresh bool
}

// Resolve runs the resolution pipeline and prints the report: channel,
// toolchain and the build inputs in final order. With Write the outcome is
// pinned to the lockfile.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	ctx, span := a.tracer.Start(ctx, "resolve")
	defer span.End()

	m, err := a.loadManifest()
	if err != nil {
		span.RecordError(err)
		return err
	}

	res, err := a.builder.Resolve(ctx, m, BuildOptions{Refresh: opts.Refresh})
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("environment", m.Name)
	span.SetAttribute("from_lock", res.FromLock)

	writeResolution(a.stdout, res)

	if opts.Write {
		path, err := a.builder.Pin(res)
		if err != nil {
			span.RecordError(err)
			return err
		}
		a.logger.Info("pinned resolution to " + path)
	}
	return nil
}

// VaultItem fetches a vault item and prints it, pretty by default or as
// JSON. The pretty view masks secret values; use VaultPassword or the JSON
// view to read them.
func (a *App) VaultItem(ctx context.Context, uuid string, asJSON bool) error {
	ctx, span := a.tracer.Start(ctx, "vault.item")
	defer span.End()
	span.SetAttribute("uuid", uuid)

	item, err := a.vault.Item(ctx, uuid)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if asJSON {
		if err := writeItemJSON(a.stdout, item); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}
	writeItemPretty(a.stdout, item)
	return nil
}

// VaultPassword fetches a vault item's password and prints the secret alone,
// newline-terminated and with no decoration, so it can feed a pipe.
func (a *App) VaultPassword(ctx context.Context, uuid string) error {
	ctx, span := a.tracer.Start(ctx, "vault.password")
	defer span.End()
	span.SetAttribute("uuid", uuid)

	password, err := a.vault.Password(ctx, uuid)
	if err != nil {
		span.RecordError(err)
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, password)
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Cache removes only the catalog cache.
	Cache bool

	// Sessions removes only the generated session rc files.
	Sessions bool
}

// Clean removes husk state under the manifest root. With no options the
// whole .husk directory goes; Cache and Sessions narrow the removal.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	_, span := a.tracer.Start(ctx, "clean")
	defer span.End()

	m, err := a.loadManifest()
	if err != nil {
		span.RecordError(err)
		return err
	}

	var errs error
	remove := func(rel string, name string) {
		path := filepath.Join(m.Root, rel)
		a.logger.Info("removing " + name + "...")
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, "failed to remove "+name))
			return
		}
		a.logger.Info("removed " + name)
	}

	if !opts.Cache && !opts.Sessions {
		remove(domain.DefaultHuskPath(), "husk state directory")
	} else {
		if opts.Cache {
			remove(domain.DefaultCatalogCachePath(), "catalog cache")
		}
		if opts.Sessions {
			remove(domain.DefaultSessionPath(), "session files")
		}
	}

	if errs != nil {
		span.RecordError(errs)
	}
	return errs
}

// loadManifest discovers and parses husk.yaml from the configured directory.
func (a *App) loadManifest() (*domain.Manifest, error) {
	m, err := a.configLoader.Load(a.dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return m, nil
}

// realizeSession runs the shared front half of the session operations:
// manifest, resolution, realized session.
func (a *App) realizeSession(ctx context.Context, opts BuildOptions) (*Resolution, *domain.Session, error) {
	m, err := a.loadManifest()
	if err != nil {
		return nil, nil, err
	}

	res, err := a.builder.Resolve(ctx, m, opts)
	if err != nil {
		return nil, nil, err
	}

	session, err := a.realizer.Realize(ctx, res.Descriptor)
	if err != nil {
		return nil, nil, err
	}
	return res, session, nil
}

// writeEnv renders KEY=VALUE pairs in the requested format.
func writeEnv(w io.Writer, environ []string, format string) error {
	if format == FormatJSON {
		vars := make(map[string]string, len(environ))
		for _, kv := range environ {
			k, v, _ := strings.Cut(kv, "=")
			vars[k] = v
		}
		data, err := json.MarshalIndent(vars, "", "  ")
		if err != nil {
			return zerr.Wrap(err, "failed to marshal environment")
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	}

	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		_, _ = fmt.Fprintf(w, "export %s=%s\n", k, shellQuote(v))
	}
	return nil
}

// shellQuote single-quotes a value for POSIX shells. Embedded single quotes
// close the string, emit an escaped quote and reopen it.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// writeResolution prints the resolution report.
func writeResolution(w io.Writer, res *Resolution) {
	source := "catalog"
	if res.FromLock {
		source = "lockfile"
	}

	_, _ = fmt.Fprintf(w, "environment %s (%s)\n", res.Descriptor.Name.String(), res.Platform)
	_, _ = fmt.Fprintf(w, "channel     %s [%s, via %s]\n", res.Toolchain.Channel.String(), res.Manifest.Channel.Strategy, source)
	_, _ = fmt.Fprintf(w, "toolchain\n")
	_, _ = fmt.Fprintf(w, "  compiler  %s\n", res.Toolchain.Compiler.String())
	_, _ = fmt.Fprintf(w, "  builder   %s\n", res.Toolchain.Builder.String())
	_, _ = fmt.Fprintf(w, "inputs\n")
	for _, ref := range res.Descriptor.BuildInputs {
		_, _ = fmt.Fprintf(w, "  %s\n", ref.String())
	}
}

// vaultItemView is the JSON projection of a vault item.
type vaultItemView struct {
	UUID      string           `json:"uuid"`
	VaultUUID string           `json:"vaultUuid"`
	Title     string           `json:"title"`
	Info      string           `json:"info,omitempty"`
	Password  string           `json:"password,omitempty"`
	Fields    []vaultFieldView `json:"fields,omitempty"`
}

// vaultFieldView is the JSON projection of one login field.
type vaultFieldView struct {
	Designation string `json:"designation,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Value       string `json:"value"`
}

// writeItemJSON prints the full item, secrets included.
func writeItemJSON(w io.Writer, item *domain.VaultItem) error {
	view := vaultItemView{
		UUID:      item.UUID,
		VaultUUID: item.VaultUUID,
		Title:     item.Title,
		Info:      item.Info,
		Password:  item.Details.Password,
	}
	for _, f := range item.Details.Fields {
		view.Fields = append(view.Fields, vaultFieldView{
			Designation: f.Designation,
			Name:        f.Name,
			Type:        f.Type,
			Value:       f.Value,
		})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal item")
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

// writeItemPretty prints the item with secret values masked.
func writeItemPretty(w io.Writer, item *domain.VaultItem) {
	_, _ = fmt.Fprintf(w, "uuid   %s\n", item.UUID)
	_, _ = fmt.Fprintf(w, "vault  %s\n", item.VaultUUID)
	_, _ = fmt.Fprintf(w, "title  %s\n", item.Title)
	if item.Info != "" {
		_, _ = fmt.Fprintf(w, "info   %s\n", item.Info)
	}
	if item.Details.Password != "" {
		_, _ = fmt.Fprintf(w, "password  %s\n", maskSecret)
	}
	if len(item.Details.Fields) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w, "fields")
	width := 0
	for _, f := range item.Details.Fields {
		if n := len(fieldLabel(f)); n > width {
			width = n
		}
	}
	for _, f := range item.Details.Fields {
		value := f.Value
		if f.Designation == "password" || f.Type == "P" {
			value = maskSecret
		}
		_, _ = fmt.Fprintf(w, "  %-*s  %s\n", width, fieldLabel(f), value)
	}
}

const maskSecret = "********"

// fieldLabel names a field in the pretty view, preferring its designation.
func fieldLabel(f domain.VaultField) string {
	if f.Designation != "" {
		return f.Designation
	}
	return f.Name
}
