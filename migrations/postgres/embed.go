// Package postgres embebe las migraciones SQL de PostgreSQL.
package postgres

import "embed"

// FS contiene las migraciones *_up.sql / *_down.sql, aplicadas en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS
