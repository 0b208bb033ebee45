package domain

import (
	"slices"
	"strings"
)

// Session is a realized environment: the concrete process variables derived
// from a descriptor, plus the identity under which the session runs.
// Unlike PackageSet it is mutable; the hook interceptor applies exported
// variables to the live session.
type Session struct {
	// ID is the descriptor fingerprint from GenerateSessionID.
	ID string

	// Name is the environment name.
	Name string

	vars map[string]string
}

// NewSession creates a session with the given variables. The map is copied.
func NewSession(id, name string, vars map[string]string) *Session {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Session{ID: id, Name: name, vars: copied}
}

// Lookup returns the value of a session variable.
func (s *Session) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Set binds a session variable, replacing any previous value.
func (s *Session) Set(key, value string) {
	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.vars[key] = value
}

// Environ renders the session variables as KEY=VALUE strings in sorted key
// order, suitable for os/exec.
func (s *Session) Environ() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+s.vars[k])
	}
	return env
}

// Path returns the session's PATH variable split into entries.
func (s *Session) Path() []string {
	v, ok := s.vars["PATH"]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ":")
}
