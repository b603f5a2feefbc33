// Package migrations embeds the goose migrations for the client's local
// database. The database is opened in memory, so migrations run on every
// start.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
