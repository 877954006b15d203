// Package docs expone el documento OpenAPI servido en /docs.
package docs

import _ "embed"

// SwaggerJSON documento OpenAPI 2.0 de la API.
//
//go:embed swagger.json
var SwaggerJSON []byte
