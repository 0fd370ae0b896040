package data

import (
	"embed"
)

// Schemas holds the JSON schemas for request bodies, keyed by file name
//
//go:embed schemas/*.json
var Schemas embed.FS
