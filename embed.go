// Package tnguide holds assets embedded into the binaries.
package tnguide

import "embed"

//go:embed migrations/*.sql
var MigrationsFS embed.FS
