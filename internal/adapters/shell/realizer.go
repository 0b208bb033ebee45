package shell

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
)

// allowedHostVars are the host variables a session inherits. Everything else
// is dropped so the session stays reproducible across machines.
var allowedHostVars = map[string]struct{}{
	"HOME":  {},
	"USER":  {},
	"TERM":  {},
	"PATH":  {},
	"SHELL": {},
}

// Realizer turns descriptors into live sessions.
type Realizer struct {
	logger ports.Logger
}

// NewRealizer creates a Realizer.
func NewRealizer(logger ports.Logger) *Realizer {
	return &Realizer{logger: logger}
}

var _ ports.Realizer = (*Realizer)(nil)

// Realize builds the session environment for the descriptor: the allowlisted
// host variables, PATH with every build input's bin directory prepended in
// descriptor order, and the session markers.
func (r *Realizer) Realize(_ context.Context, desc *domain.EnvironmentDescriptor) (*domain.Session, error) {
	vars := filterHostEnv(os.Environ())

	binDirs := desc.BinDirs()
	path := strings.Join(binDirs, string(os.PathListSeparator))
	if inherited := vars["PATH"]; inherited != "" {
		if path != "" {
			path += string(os.PathListSeparator) + inherited
		} else {
			path = inherited
		}
	}
	vars["PATH"] = path

	id := domain.GenerateSessionID(desc)
	vars["HUSK_ENV"] = desc.Name.String()
	vars["HUSK_SESSION_ID"] = id

	r.logger.Debug("realized session " + shortID(id) + " with " + strconv.Itoa(len(binDirs)) + " bin dirs")

	return domain.NewSession(id, desc.Name.String(), vars), nil
}

// filterHostEnv keeps only allowlisted and locale variables from the host
// environment.
func filterHostEnv(environ []string) map[string]string {
	vars := make(map[string]string)
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowedHostVars[k]; allowed || isLocaleVar(k) {
			vars[k] = v
		}
	}
	return vars
}

func isLocaleVar(key string) bool {
	return key == "LANG" || key == "LANGUAGE" || strings.HasPrefix(key, "LC_")
}

// shortID truncates a session id for log lines.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
