// Package migrations embeds the tenant directory schema migrations.
package migrations

import "embed"

// FS holds the versioned up/down SQL files
//
//go:embed *.sql
var FS embed.FS
