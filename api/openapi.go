// Package api carries the HTTP contract of the standalone server.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	echo "github.com/labstack/echo/v4"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"go.uber.org/fx"
)

//go:generate go run github.com/deepmap/oapi-codegen/v2/cmd/oapi-codegen --config=codegen/token.yaml openapi.yaml
//go:generate go run github.com/deepmap/oapi-codegen/v2/cmd/oapi-codegen --config=codegen/roomquery.yaml openapi.yaml
//go:generate go run github.com/deepmap/oapi-codegen/v2/cmd/oapi-codegen --config=codegen/salon.yaml openapi.yaml

//go:embed openapi.yaml
var document []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

type openapiController struct {
	doc *openapi3.T
}

func (ctrl *openapiController) Document(c echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.doc)
}

func (ctrl *openapiController) Resolve(router *echo.Echo) error {
	router.GET("/api/openapi.json", ctrl.Document)
	return nil
}

var _ protocol.HttpResolvable = (*openapiController)(nil)

type NewOpenAPIControllerParams struct {
	fx.In

	Doc *openapi3.T
}

func NewOpenAPIController(params NewOpenAPIControllerParams) *openapiController {
	return &openapiController{doc: params.Doc}
}

func openapiDocument() (*openapi3.T, error) {
	return Load(context.Background())
}

var Module = fx.Module("openapi", fx.Provide(
	openapiDocument,
	protocol.AsHttpController(NewOpenAPIController),
))
