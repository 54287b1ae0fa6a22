// Package migrations holds the embedded SQL schema for the plano database.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
