package protocol

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/romashorodok/salon-platform/pkg/controller/roomquery"
	"github.com/romashorodok/salon-platform/pkg/controller/salon"
	"github.com/romashorodok/salon-platform/pkg/controller/token"
)

// Wire types shared by the standalone server, the hosted functions and the
// client. Request and response bodies come from the generated controllers.

type ErrorResponse struct {
	Error string `json:"error"`
}

type (
	TokenRequest  = token.TokenRequest
	TokenResponse = token.TokenResponse
)

type (
	ParticipantCountResponse  = roomquery.ParticipantCountResponse
	ParticipantCountsRequest  = roomquery.ParticipantCountsRequest
	ParticipantCountsResponse = roomquery.ParticipantCountsResponse
)

type (
	Salon                   = salon.Salon
	SalonListResponse       = salon.SalonListResponse
	SalonCreateRequest      = salon.SalonCreateRequest
	SalonUpdateRequest      = salon.SalonUpdateRequest
	Participant             = salon.Participant
	ParticipantListResponse = salon.ParticipantListResponse
	ParticipantJoinRequest  = salon.ParticipantJoinRequest
	User                    = salon.User
	Group                   = salon.Group
	CurrentUserRequest      = salon.CurrentUserRequest
)

// Notifier event pushed over the websocket.
type NotifyMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

const EventUpdateSalons = "update-salons"

// DecodeJSON decodes a request body. An empty body decodes to the zero value.
func DecodeJSON(r io.Reader, v any) error {
	if r == nil {
		return nil
	}
	if err := json.NewDecoder(r).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
