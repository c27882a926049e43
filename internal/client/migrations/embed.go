// Package migrations embeds the forward-only SQL migration scripts
// applied by goose when the local database is opened.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
