package wsutils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	N int `json:"n"`
}

func TestThreadSafeWriter_ConcurrentWrites(t *testing.T) {
	const writers = 16
	upgrader := websocket.Upgrader{}
	drained := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		tw := NewThreadSafeWriter(conn, WithWriteTimeout(time.Second))

		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, tw.WriteJSON(&event{N: i}))
			}()
		}
		wg.Wait()

		drained <- tw.Drain()
		first := tw.Close()
		assert.Equal(t, first, tw.Close())
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	seen := map[int]bool{}
	for range writers {
		var ev event
		require.NoError(t, conn.ReadJSON(&ev))
		seen[ev.N] = true
	}
	assert.Len(t, seen, writers)

	require.NoError(t, conn.Close())
	select {
	case err := <-drained:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("drain did not return after the peer left")
	}
}
