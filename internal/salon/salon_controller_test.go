package salon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	echo "github.com/labstack/echo/v4"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*echo.Echo, *Store, *SalonNotifier) {
	t.Helper()
	s, _ := newTestStore(t)
	n := NewSalonNotifier(testLogger)
	s.OnChange(n.DispatchUpdateSalons)

	router := service.NewRouter(testLogger)
	ctrl := NewSalonController(NewSalonControllerParams{Store: s, Notifier: n, Logger: testLogger})
	require.NoError(t, ctrl.Resolve(router))
	return router, s, n
}

func do(router *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSalonController_Salons(t *testing.T) {
	router, s, _ := newTestController(t)

	rec := do(router, http.MethodGet, "/api/salons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list protocol.SalonListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Salons, 3)

	rec = do(router, http.MethodPost, "/api/salons", `{"groupId":"group2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created protocol.Salon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Weekend Hangout", created.Name)
	assert.Equal(t, "video", created.Type)

	rec = do(router, http.MethodPost, "/api/salons", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/salons", `{"groupId":"group42"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/salons?groupId=group2", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Salons, 2)

	rec = do(router, http.MethodPatch, "/api/salons/salon1", `{"name":"Algebra","isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	salon1, _ := s.Salon("salon1")
	assert.Equal(t, "Algebra", salon1.Name)
	assert.False(t, salon1.IsActive)

	rec = do(router, http.MethodPatch, "/api/salons/salon1", `{"type":"radio"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/salons?active=true", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Salons, 3)

	rec = do(router, http.MethodGet, "/api/salons?active=false", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Salons, 4)

	rec = do(router, http.MethodGet, "/api/salons?active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodDelete, "/api/salons/salon2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(router, http.MethodGet, "/api/salons/salon2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"salon not found"}`, rec.Body.String())
}

func TestSalonController_Participants(t *testing.T) {
	router, s, _ := newTestController(t)

	rec := do(router, http.MethodGet, "/api/salons/salon1/participants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list protocol.ParticipantListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Participants, 4)

	rec = do(router, http.MethodPost, "/api/salons/salon1/participants", `{"userId":"user6","isAudioEnabled":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var joined protocol.Participant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	assert.Equal(t, "Diana Prince", joined.UserName)
	assert.True(t, joined.AudioEnabled)

	salon, _ := s.Salon("salon1")
	assert.Equal(t, 5, salon.ParticipantCount)

	rec = do(router, http.MethodPost, "/api/salons/salon1/participants", `{"userId":"user6"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router, http.MethodPost, "/api/salons/salon1/participants", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/salons/salon1/participants", `{"userName":"Guest"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(router, http.MethodDelete, "/api/salons/salon2/participants/"+joined.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodDelete, "/api/salons/salon1/participants/"+joined.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	salon, _ = s.Salon("salon1")
	assert.Equal(t, 5, salon.ParticipantCount)
	assert.Len(t, s.SalonParticipants("salon1"), 5)

	rec = do(router, http.MethodGet, "/api/salons/nope/participants", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSalonController_Directory(t *testing.T) {
	router, _, _ := newTestController(t)

	rec := do(router, http.MethodGet, "/api/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []protocol.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Len(t, groups, 4)

	rec = do(router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user1"`)

	rec = do(router, http.MethodPut, "/api/me", `{"userId":"user2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Smith")

	rec = do(router, http.MethodPut, "/api/me", `{"userId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSalonController_Notify(t *testing.T) {
	router, s, n := newTestController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Run(ctx)

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/salons/notify"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return len(n.getListeners()) == 1 }, time.Second, 5*time.Millisecond)

	_, err = s.CreateSalon("group3")
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg protocol.NotifyMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, protocol.EventUpdateSalons, msg.Event)
}
