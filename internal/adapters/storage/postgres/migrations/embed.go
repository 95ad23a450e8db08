// Package migrations guarda el esquema de Postgres embebido en el binario.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
