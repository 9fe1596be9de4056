package migrations

import "embed"

// FS contains embedded SQLite migrations for HUD storage.
//
//go:embed *.sql
var FS embed.FS
