// Package migrations embebe los .sql que aplica goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
