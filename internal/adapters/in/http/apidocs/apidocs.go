// Package apidocs holds the OpenAPI document of the HTTP API and serves it
// through swagger UI.
package apidocs

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

// SwaggerInfo registers the document under swag's default instance name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "parceltrack API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(document),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// Register validates the document and mounts GET /openapi.json and the
// swagger UI under /swagger/.
func Register(ctx context.Context, e *echo.Echo) error {
	if _, err := Load(ctx); err != nil {
		return err
	}

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, document)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
