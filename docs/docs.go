// Package docs publica la especificación OpenAPI de la API para swag y el Swagger UI.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerJSON especificación servida en /docs.
//
//go:embed swagger.json
var SwaggerJSON []byte

// SwaggerInfo metadatos de la especificación registrada en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Hillary API",
	Description:      "Administración de empresas, roles, usuarios y tareas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(SwaggerJSON),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
