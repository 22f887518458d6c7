// Package schema embeds the goose migrations that define the database.
package schema

import "embed"

// MigrationsDir is the directory inside Migrations holding the .sql files
const MigrationsDir = "migrations"

// Migrations contains the versioned goose migration scripts
//
//go:embed migrations/*.sql
var Migrations embed.FS
