package token

import (
	"errors"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/romashorodok/salon-platform/pkg/controller/token"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"go.uber.org/fx"
)

type tokenController struct {
	tokenService *TokenService
	logger       *slog.Logger
}

// StatusFor maps a token service error to the response status and message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		return http.StatusBadRequest, ErrMissingFields.Error()
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, "LiveKit credentials not configured"
	default:
		return http.StatusInternalServerError, "Failed to generate token"
	}
}

func (ctrl *tokenController) TokenIssue(c echo.Context) error {
	req := new(token.TokenIssueJSONRequestBody)
	if err := protocol.DecodeJSON(c.Request().Body, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrMissingFields.Error()).SetInternal(err)
	}

	jwt, err := ctrl.tokenService.Issue(req.RoomName, req.ParticipantName)
	if err != nil {
		status, msg := StatusFor(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}

	return c.JSON(http.StatusOK, &token.TokenResponse{Token: jwt})
}

func (ctrl *tokenController) Resolve(c *echo.Echo) error {
	spec, err := token.GetSwagger()
	if err != nil {
		return err
	}
	spec.Servers = nil
	token.RegisterHandlers(c, ctrl)
	return nil
}

var (
	_ token.ServerInterface   = (*tokenController)(nil)
	_ protocol.HttpResolvable = (*tokenController)(nil)
)

type NewTokenControllerParams struct {
	fx.In

	TokenService *TokenService
	Logger       *slog.Logger
}

func NewTokenController(params NewTokenControllerParams) *tokenController {
	return &tokenController{
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}
