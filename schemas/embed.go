// Package schemas provides the embedded goose migrations for the MySQL dictionary source.
package schemas

import "embed"

// Migrations holds migrations/*.sql in goose format.
//
//go:embed migrations/*.sql
var Migrations embed.FS
