package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/romashorodok/salon-platform/pkg/protocol"
)

const hostedFunctionsHost = "cloudfunctions.net"

// APIError is a non-2xx answer from the token server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("token server: %d %s", e.Status, e.Message)
}

// Endpoints are the routes of one backend variant.
type Endpoints struct {
	Token             string
	RoomParticipants  string
	ParticipantCounts string
	Notify            string
}

var (
	StandaloneEndpoints = Endpoints{
		Token:             "/api/token",
		RoomParticipants:  "/api/room/%s/participants",
		ParticipantCounts: "/api/rooms/participant-counts",
		Notify:            "/api/salons/notify",
	}
	HostedEndpoints = Endpoints{
		Token:             "/generateToken",
		RoomParticipants:  "/getRoomParticipants?roomName=%s",
		ParticipantCounts: "/getParticipantCounts",
	}
)

// EndpointsFor picks the hosted function routes when baseURL points at
// cloudfunctions.net.
func EndpointsFor(baseURL string) Endpoints {
	if strings.Contains(baseURL, hostedFunctionsHost) {
		return HostedEndpoints
	}
	return StandaloneEndpoints
}

type API struct {
	baseURL   string
	endpoints Endpoints
	client    *http.Client
}

type APIOption func(*API)

func WithHTTPClient(client *http.Client) APIOption {
	return func(a *API) {
		a.client = client
	}
}

func NewAPI(baseURL string, opts ...APIOption) *API {
	baseURL = strings.TrimSuffix(baseURL, "/")
	a := &API{
		baseURL:   baseURL,
		endpoints: EndpointsFor(baseURL),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) Endpoints() Endpoints {
	return a.endpoints
}

// Token requests a join token for participantName in roomName.
func (a *API) Token(ctx context.Context, roomName, participantName string) (string, error) {
	var resp protocol.TokenResponse
	req := &protocol.TokenRequest{RoomName: roomName, ParticipantName: participantName}
	if err := a.do(ctx, http.MethodPost, a.endpoints.Token, req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *API) ParticipantCount(ctx context.Context, roomName string) (int, error) {
	var resp protocol.ParticipantCountResponse
	escape := url.PathEscape
	if strings.Contains(a.endpoints.RoomParticipants, "?") {
		escape = url.QueryEscape
	}
	path := fmt.Sprintf(a.endpoints.RoomParticipants, escape(roomName))
	if err := a.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.ParticipantCount, nil
}

func (a *API) ParticipantCounts(ctx context.Context, roomNames []string) (map[string]int, error) {
	if roomNames == nil {
		roomNames = []string{}
	}
	var resp protocol.ParticipantCountsResponse
	req := &protocol.ParticipantCountsRequest{RoomNames: roomNames}
	if err := a.do(ctx, http.MethodPost, a.endpoints.ParticipantCounts, req, &resp); err != nil {
		return nil, err
	}
	if resp.Counts == nil {
		resp.Counts = map[string]int{}
	}
	return resp.Counts, nil
}

// NotifyURL is the websocket address of the salon change notifier. Hosted
// functions have none.
func (a *API) NotifyURL() (string, bool) {
	if a.endpoints.Notify == "" {
		return "", false
	}
	u := a.baseURL + a.endpoints.Notify
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u, true
}

func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e protocol.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
