// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.husk.sh/husk/internal/adapters/catalog"
	_ "go.husk.sh/husk/internal/adapters/config"
	_ "go.husk.sh/husk/internal/adapters/fs"
	_ "go.husk.sh/husk/internal/adapters/logger"
	_ "go.husk.sh/husk/internal/adapters/opvault"
	_ "go.husk.sh/husk/internal/adapters/shell"
	_ "go.husk.sh/husk/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.husk.sh/husk/internal/app"
)
