package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.trai.ch/zerr"
)

// HookText renders the POSIX shell function that wraps the session's
// intercepted command. The function inspects only the first argument: the
// eval argument routes the command's stdout through eval so its exports land
// in the calling shell, anything else passes through to the real command.
func HookText(rule domain.HookRule) string {
	if rule.IsZero() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s() {\n", rule.Command)
	fmt.Fprintf(&b, "    if [ \"$1\" = \"%s\" ]; then\n", rule.EvalArg)
	fmt.Fprintf(&b, "        eval \"$(command %s \"$@\")\"\n", rule.Command)
	b.WriteString("    else\n")
	fmt.Fprintf(&b, "        command %s \"$@\"\n", rule.Command)
	b.WriteString("    fi\n")
	b.WriteString("}\n")
	return b.String()
}

// SessionRC renders the rc file content for an interactive session: the hook
// function followed by the manifest's hook script.
func SessionRC(desc *domain.EnvironmentDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# session rc for %s, generated by husk\n", desc.Name.String())

	if hook := HookText(desc.Hook); hook != "" {
		b.WriteString("\n")
		b.WriteString(hook)
	}

	if desc.HookScript != "" {
		b.WriteString("\n")
		b.WriteString(desc.HookScript)
		if !strings.HasSuffix(desc.HookScript, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteSessionRC writes the session rc under dir, named by the session id.
func WriteSessionRC(dir string, session *domain.Session, desc *domain.EnvironmentDescriptor) (string, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create session directory"), "dir", dir)
	}

	path := filepath.Join(dir, shortID(session.ID)+".rc")
	if err := os.WriteFile(path, []byte(SessionRC(desc)), domain.PrivateFilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write session rc"), "path", path)
	}
	return path, nil
}

// EnterCommand returns the argv and environment additions for launching an
// interactive shell that loads the session rc. bash takes the rc directly;
// other shells receive it through the POSIX ENV variable.
func EnterCommand(shellPath, rcPath string) (argv []string, extraEnv []string) {
	if filepath.Base(shellPath) == "bash" {
		return []string{shellPath, "--rcfile", rcPath, "-i"}, nil
	}
	return []string{shellPath, "-i"}, []string{"ENV=" + rcPath}
}
