package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/fx"
)

type httpServer_Params struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Controllers []protocol.HttpResolvable `group:"http.controller"`
	Config      *Config
	Logger      *slog.Logger
}

func httpErrorHandler(logger *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
			if he.Internal != nil {
				err = he.Internal
			}
		}

		attrs := []any{
			slog.Int("status", status),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
		}
		if status >= http.StatusInternalServerError {
			logger.Error(err.Error(), attrs...)
		} else {
			logger.Debug(err.Error(), attrs...)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, &protocol.ErrorResponse{Error: message})
	}
}

// NewRouter builds the echo instance shared by every controller.
func NewRouter(logger *slog.Logger) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Validator = NewRequestValidator()
	router.HTTPErrorHandler = httpErrorHandler(logger)

	router.Use(middleware.Recover())
	router.Use(middleware.CORS())

	router.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	return router
}

func httpServer(params httpServer_Params) error {
	router := NewRouter(params.Logger)
	router.Use(otelecho.Middleware(params.Config.Tracing.ServiceName))

	if err := protocol.ResolveAll(router, params.Controllers...); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", params.Config.HTTP.Port)
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				params.Logger.Info("http server started", slog.String("addr", addr))
				if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					params.Logger.Error("http server stopped", slog.String("err", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return router.Shutdown(ctx)
		},
	})
	return nil
}

var HttpModule = fx.Module("http", fx.Invoke(httpServer))
