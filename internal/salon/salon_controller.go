package salon

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	echo "github.com/labstack/echo/v4"
	"github.com/romashorodok/salon-platform/pkg/controller/salon"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/wsutils"
	"go.uber.org/fx"
)

func ToProtocolSalon(s Salon) protocol.Salon {
	return protocol.Salon{
		ID:               s.ID,
		GroupID:          s.GroupID,
		Name:             s.Name,
		Type:             string(s.Type),
		CreatedAt:        s.CreatedAt.UnixMilli(),
		LastActivityAt:   s.LastActivityAt.UnixMilli(),
		IsActive:         s.IsActive,
		ParticipantCount: s.DisplayCount(),
	}
}

func ToProtocolParticipant(p Participant) protocol.Participant {
	return protocol.Participant{
		ID:           p.ID,
		SalonID:      p.SalonID,
		UserID:       p.UserID,
		UserName:     p.UserName,
		UserAvatar:   p.UserAvatar,
		JoinedAt:     p.JoinedAt.UnixMilli(),
		AudioEnabled: p.AudioEnabled,
		VideoEnabled: p.VideoEnabled,
	}
}

func toProtocolUser(u User) protocol.User {
	return protocol.User{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Email: u.Email}
}

func toProtocolGroup(g Group) protocol.Group {
	return protocol.Group{ID: g.ID, Name: g.Name, Avatar: g.Avatar, MemberCount: g.MemberCount}
}

func httpError(err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSalonNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrParticipantNotFound),
		errors.Is(err, ErrNoCurrentUser):
		status = http.StatusNotFound
	case errors.Is(err, ErrSalonExists), errors.Is(err, ErrParticipantExists):
		status = http.StatusConflict
	case errors.Is(err, ErrInvalidSalonType), errors.Is(err, ErrSalonIDIsEmpty):
		status = http.StatusBadRequest
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}

func bind(c echo.Context, req any) error {
	if err := protocol.DecodeJSON(c.Request().Body, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

type salonController struct {
	store    *Store
	notifier *SalonNotifier
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func (ctrl *salonController) SalonList(c echo.Context, params salon.SalonListParams) error {
	var salons []Salon
	switch {
	case params.GroupId != nil && *params.GroupId != "":
		salons = ctrl.store.SalonsByGroup(*params.GroupId)
	case params.Active != nil && *params.Active:
		salons = ctrl.store.ActiveSalons()
	default:
		salons = ctrl.store.Salons()
	}

	resp := &protocol.SalonListResponse{Salons: make([]protocol.Salon, 0, len(salons))}
	for _, s := range salons {
		resp.Salons = append(resp.Salons, ToProtocolSalon(s))
	}
	return c.JSON(http.StatusOK, resp)
}

func (ctrl *salonController) SalonCreate(c echo.Context) error {
	req := new(salon.SalonCreateJSONRequestBody)
	if err := bind(c, req); err != nil {
		return err
	}

	created, err := ctrl.store.CreateSalon(req.GroupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ToProtocolSalon(created))
}

func (ctrl *salonController) SalonGet(c echo.Context, id string) error {
	s, ok := ctrl.store.Salon(id)
	if !ok {
		return httpError(ErrSalonNotFound)
	}
	return c.JSON(http.StatusOK, ToProtocolSalon(s))
}

func (ctrl *salonController) SalonUpdate(c echo.Context, id string) error {
	req := new(salon.SalonUpdateJSONRequestBody)
	if err := bind(c, req); err != nil {
		return err
	}

	patch := SalonPatch{Name: req.Name, IsActive: req.IsActive}
	if req.Type != nil {
		t := SalonType(*req.Type)
		patch.Type = &t
	}

	updated, err := ctrl.store.UpdateSalon(id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ToProtocolSalon(updated))
}

func (ctrl *salonController) SalonDelete(c echo.Context, id string) error {
	if err := ctrl.store.RemoveSalon(id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (ctrl *salonController) SalonParticipants(c echo.Context, id string) error {
	if _, ok := ctrl.store.Salon(id); !ok {
		return httpError(ErrSalonNotFound)
	}

	participants := ctrl.store.SalonParticipants(id)
	resp := &protocol.ParticipantListResponse{Participants: make([]protocol.Participant, 0, len(participants))}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, ToProtocolParticipant(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (ctrl *salonController) SalonParticipantJoin(c echo.Context, id string) error {
	req := new(salon.SalonParticipantJoinJSONRequestBody)
	if err := bind(c, req); err != nil {
		return err
	}

	p := Participant{
		SalonID:      id,
		UserID:       req.UserID,
		UserName:     req.UserName,
		AudioEnabled: req.AudioEnabled,
		VideoEnabled: req.VideoEnabled,
	}
	if req.UserID != "" {
		user, ok := ctrl.store.User(req.UserID)
		if !ok {
			return httpError(ErrUserNotFound)
		}
		p.ID = "participant-" + p.SalonID + "-" + user.ID
		p.UserAvatar = user.Avatar
		if p.UserName == "" {
			p.UserName = user.Name
		}
	}

	added, err := ctrl.store.AddParticipant(p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ToProtocolParticipant(added))
}

func (ctrl *salonController) SalonParticipantLeave(c echo.Context, id string, participantId string) error {
	for _, p := range ctrl.store.SalonParticipants(id) {
		if p.ID == participantId {
			if err := ctrl.store.RemoveParticipant(participantId); err != nil {
				return httpError(err)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
	return httpError(ErrParticipantNotFound)
}

func (ctrl *salonController) GroupList(c echo.Context) error {
	groups := ctrl.store.Groups()
	resp := make([]protocol.Group, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toProtocolGroup(g))
	}
	return c.JSON(http.StatusOK, resp)
}

func (ctrl *salonController) UserList(c echo.Context) error {
	users := ctrl.store.Users()
	resp := make([]protocol.User, 0, len(users))
	for _, u := range users {
		resp = append(resp, toProtocolUser(u))
	}
	return c.JSON(http.StatusOK, resp)
}

func (ctrl *salonController) CurrentUser(c echo.Context) error {
	user, ok := ctrl.store.CurrentUser()
	if !ok {
		return httpError(ErrNoCurrentUser)
	}
	return c.JSON(http.StatusOK, toProtocolUser(user))
}

func (ctrl *salonController) CurrentUserSet(c echo.Context) error {
	req := new(salon.CurrentUserSetJSONRequestBody)
	if err := bind(c, req); err != nil {
		return err
	}
	if err := ctrl.store.SetCurrentUser(req.UserID); err != nil {
		return httpError(err)
	}
	user, _ := ctrl.store.User(req.UserID)
	return c.JSON(http.StatusOK, toProtocolUser(user))
}

func (ctrl *salonController) SalonNotifier(c echo.Context) error {
	conn, err := ctrl.upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		ctrl.logger.Error("unable upgrade request", slog.String("err", err.Error()))
		return nil
	}

	w := wsutils.NewThreadSafeWriter(conn)
	defer w.Close()

	id := uuid.NewString()
	ctrl.notifier.Listen(id, w)
	defer ctrl.notifier.Stop(id)

	if err := w.Drain(); err != nil {
		ctrl.logger.Debug("notifier listener left", slog.String("id", id), slog.String("err", err.Error()))
	}
	return nil
}

func (ctrl *salonController) Resolve(c *echo.Echo) error {
	spec, err := salon.GetSwagger()
	if err != nil {
		return err
	}
	spec.Servers = nil
	salon.RegisterHandlers(c, ctrl)
	return nil
}

var (
	_ salon.ServerInterface   = (*salonController)(nil)
	_ protocol.HttpResolvable = (*salonController)(nil)
)

type NewSalonControllerParams struct {
	fx.In

	Store    *Store
	Notifier *SalonNotifier
	Logger   *slog.Logger
}

func NewSalonController(params NewSalonControllerParams) *salonController {
	return &salonController{
		store:    params.Store,
		notifier: params.Notifier,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: params.Logger,
	}
}
