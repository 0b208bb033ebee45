package opvault

import (
	"slices"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.trai.ch/zerr"
)

// sessionVarPrefix marks the environment variables op signin exports, one
// per signed-in account subdomain.
const sessionVarPrefix = "OP_SESSION_"

// SessionFromEnv extracts the session token from the environment. Exactly
// one OP_SESSION_* variable must be present: none means the caller has not
// signed in, several means the account is ambiguous.
func SessionFromEnv(environ []string) (string, error) {
	var names []string
	var token string
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(k, sessionVarPrefix) {
			continue
		}
		names = append(names, k)
		token = v
	}

	switch len(names) {
	case 0:
		return "", domain.ErrVaultSessionMissing
	case 1:
		return token, nil
	default:
		slices.Sort(names)
		return "", zerr.With(domain.ErrVaultSessionAmbiguous, "variables", strings.Join(names, ", "))
	}
}
