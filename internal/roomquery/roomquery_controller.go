package roomquery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v4"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/romashorodok/salon-platform/pkg/controller/roomquery"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/service"
	"go.uber.org/fx"
)

// StatusFor maps a room query error to the response status and message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingRoomName):
		return http.StatusBadRequest, ErrMissingRoomName.Error()
	case errors.Is(err, ErrRoomNamesNotArray):
		return http.StatusBadRequest, ErrRoomNamesNotArray.Error()
	case errors.Is(err, ErrListRooms):
		return http.StatusInternalServerError, "Failed to get room participant counts"
	default:
		return http.StatusInternalServerError, "Failed to get room participants"
	}
}

type roomQueryController struct {
	roomQueryService *RoomQueryService
}

func (ctrl *roomQueryController) RoomParticipants(c echo.Context, roomName string) error {
	count, err := ctrl.roomQueryService.ParticipantCount(c.Request().Context(), roomName)
	if err != nil {
		status, msg := StatusFor(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}
	return c.JSON(http.StatusOK, &roomquery.ParticipantCountResponse{ParticipantCount: count})
}

func (ctrl *roomQueryController) RoomsParticipantCounts(c echo.Context) error {
	names, err := DecodeRoomNames(c.Request().Body)
	if err != nil {
		status, msg := StatusFor(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}

	counts, err := ctrl.roomQueryService.ParticipantCounts(c.Request().Context(), names)
	if err != nil {
		status, msg := StatusFor(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}
	return c.JSON(http.StatusOK, &roomquery.ParticipantCountsResponse{Counts: counts})
}

func (ctrl *roomQueryController) Resolve(c *echo.Echo) error {
	spec, err := roomquery.GetSwagger()
	if err != nil {
		return err
	}
	spec.Servers = nil
	roomquery.RegisterHandlers(c, ctrl)
	return nil
}

var (
	_ roomquery.ServerInterface = (*roomQueryController)(nil)
	_ protocol.HttpResolvable   = (*roomQueryController)(nil)
)

type NewRoomQueryControllerParams struct {
	fx.In

	RoomQueryService *RoomQueryService
}

func NewRoomQueryController(params NewRoomQueryControllerParams) *roomQueryController {
	return &roomQueryController{
		roomQueryService: params.RoomQueryService,
	}
}

type ProvideRoomQueryServiceParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *service.Config
	Logger    *slog.Logger
	Rooms     *lksdk.RoomServiceClient
}

func ProvideRoomQueryService(params ProvideRoomQueryServiceParams) (*RoomQueryService, error) {
	cache, err := NewCache(params.Config.Cache, params.Logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := cache.(io.Closer); ok {
		params.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return closer.Close()
			},
		})
	}
	return NewRoomQueryService(params.Rooms, params.Logger, WithCache(cache)), nil
}
