package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateSessionID creates a deterministic fingerprint of a descriptor for
// session caching and identification. Unlike a plain set hash, input order
// is part of the identity: reordering inputs changes the realized PATH, so
// it must change the id.
func GenerateSessionID(desc *EnvironmentDescriptor) string {
	var builder strings.Builder
	builder.WriteString(desc.Name.String())
	builder.WriteString(";")
	builder.WriteString(string(desc.Platform))
	builder.WriteString(";")

	for _, ref := range desc.BuildInputs {
		builder.WriteString(ref.Name.String())
		builder.WriteString(":")
		builder.WriteString(ref.Version.String())
		builder.WriteString(":")
		builder.WriteString(ref.OutPath.String())
		builder.WriteString(";")
	}

	builder.WriteString(desc.Hook.Command)
	builder.WriteString(":")
	builder.WriteString(desc.Hook.EvalArg)
	builder.WriteString(";")
	builder.WriteString(desc.HookScript)

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
