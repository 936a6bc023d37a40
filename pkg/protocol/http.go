package protocol

import (
	"fmt"

	echo "github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const httpControllerTag = `group:"http.controller"`

// HttpResolvable registers its routes on the shared router.
type HttpResolvable interface {
	Resolve(*echo.Echo) error
}

// AsHttpController annotates a controller constructor so the http module
// picks it up from the http.controller group.
func AsHttpController(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(HttpResolvable)),
		fx.ResultTags(httpControllerTag),
	)
}

// ResolveAll registers every controller and stops at the first failure.
func ResolveAll(router *echo.Echo, controllers ...HttpResolvable) error {
	for _, controller := range controllers {
		if err := controller.Resolve(router); err != nil {
			return fmt.Errorf("resolve %T: %w", controller, err)
		}
	}
	return nil
}
