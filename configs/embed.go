package configs

import (
	"embed"
)

// FS provides the embedded default draw settings.
//
//go:embed *.yaml
var FS embed.FS
