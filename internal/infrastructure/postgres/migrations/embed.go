package migrations

import "embed"

// FS esquema versionado de la base de datos.
//
//go:embed *.sql
var FS embed.FS
