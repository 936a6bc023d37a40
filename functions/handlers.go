// Package functions serves the token and room query operations as hosted
// HTTP functions.
package functions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/romashorodok/salon-platform/internal/roomquery"
	"github.com/romashorodok/salon-platform/internal/token"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/service"
	"github.com/rs/cors"
)

const (
	GenerateTokenName        = "generateToken"
	GetRoomParticipantsName  = "getRoomParticipants"
	GetParticipantCountsName = "getParticipantCounts"
)

var ErrMethodNotAllowed = errors.New("method not allowed")

type Handlers struct {
	tokenService     *token.TokenService
	roomQueryService *roomquery.RoomQueryService
	validator        *service.RequestValidator
	cors             *cors.Cors
	logger           *slog.Logger
}

type NewHandlersParams struct {
	TokenService     *token.TokenService
	RoomQueryService *roomquery.RoomQueryService
	Logger           *slog.Logger
}

func NewHandlers(params NewHandlersParams) *Handlers {
	return &Handlers{
		tokenService:     params.TokenService,
		roomQueryService: params.RoomQueryService,
		validator:        service.NewRequestValidator(),
		cors: cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
		logger: params.Logger,
	}
}

// Handler returns the function registered under name, or nil.
func (h *Handlers) Handler(name string) http.Handler {
	switch name {
	case GenerateTokenName:
		return h.handle(name, http.MethodPost, h.generateToken)
	case GetRoomParticipantsName:
		return h.handle(name, http.MethodGet, h.getRoomParticipants)
	case GetParticipantCountsName:
		return h.handle(name, http.MethodPost, h.getParticipantCounts)
	default:
		return nil
	}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) (int, error)

func (h *Handlers) handle(name, method string, fn handlerFunc) http.Handler {
	return h.cors.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			status int
			err    error
		)
		if r.Method != method {
			status, err = fail(http.StatusMethodNotAllowed, "Method not allowed", fmt.Errorf("%w: %s", ErrMethodNotAllowed, r.Method))
		} else {
			status, err = fn(w, r)
		}
		if err == nil {
			return
		}

		msg := err.Error()
		var public *publicError
		if errors.As(err, &public) {
			msg = public.msg
			err = public.err
		}

		attrs := []any{
			slog.String("function", name),
			slog.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			h.logger.Error(err.Error(), attrs...)
		} else {
			h.logger.Debug(err.Error(), attrs...)
		}
		writeJSON(w, status, &protocol.ErrorResponse{Error: msg})
	}))
}

// publicError keeps the upstream cause out of the response body.
type publicError struct {
	msg string
	err error
}

func (e *publicError) Error() string { return e.err.Error() }
func (e *publicError) Unwrap() error { return e.err }

func fail(status int, msg string, err error) (int, error) {
	return status, &publicError{msg: msg, err: err}
}

func (h *Handlers) generateToken(w http.ResponseWriter, r *http.Request) (int, error) {
	req := new(protocol.TokenRequest)
	if err := protocol.DecodeJSON(r.Body, req); err != nil {
		return fail(http.StatusBadRequest, "invalid request body", err)
	}
	if err := h.validator.Validate(req); err != nil {
		return fail(http.StatusBadRequest, token.ErrMissingFields.Error(), err)
	}

	jwt, err := h.tokenService.Issue(req.RoomName, req.ParticipantName)
	if err != nil {
		status, msg := token.StatusFor(err)
		return fail(status, msg, err)
	}
	writeJSON(w, http.StatusOK, &protocol.TokenResponse{Token: jwt})
	return http.StatusOK, nil
}

// RoomNameFrom reads the room from the roomName query parameter, falling back
// to the last path segment.
func RoomNameFrom(r *http.Request) string {
	if name := r.URL.Query().Get("roomName"); name != "" {
		return name
	}
	last := path.Base(strings.TrimSuffix(r.URL.Path, "/"))
	switch last {
	case "", ".", "/", GetRoomParticipantsName:
		return ""
	}
	return last
}

func (h *Handlers) getRoomParticipants(w http.ResponseWriter, r *http.Request) (int, error) {
	count, err := h.roomQueryService.ParticipantCount(r.Context(), RoomNameFrom(r))
	if err != nil {
		status, msg := roomquery.StatusFor(err)
		return fail(status, msg, err)
	}
	writeJSON(w, http.StatusOK, &protocol.ParticipantCountResponse{ParticipantCount: count})
	return http.StatusOK, nil
}

func (h *Handlers) getParticipantCounts(w http.ResponseWriter, r *http.Request) (int, error) {
	names, err := roomquery.DecodeRoomNames(r.Body)
	if err != nil {
		status, msg := roomquery.StatusFor(err)
		return fail(status, msg, err)
	}

	counts, err := h.roomQueryService.ParticipantCounts(r.Context(), names)
	if err != nil {
		status, msg := roomquery.StatusFor(err)
		return fail(status, msg, err)
	}
	writeJSON(w, http.StatusOK, &protocol.ParticipantCountsResponse{Counts: counts})
	return http.StatusOK, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
