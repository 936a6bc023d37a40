package wsutils

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const DefaultWriteTimeout = 10 * time.Second

// ThreadSafeWriter serializes writes to a websocket connection so several
// goroutines can push events to one peer. Reads stay with the owner.
type ThreadSafeWriter struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
	closeOnce    sync.Once
	closeErr     error
}

type Option func(*ThreadSafeWriter)

func WithWriteTimeout(d time.Duration) Option {
	return func(t *ThreadSafeWriter) {
		t.writeTimeout = d
	}
}

func (t *ThreadSafeWriter) WriteJSON(val any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writeTimeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return err
		}
	}
	return t.conn.WriteJSON(val)
}

// Drain discards incoming frames until the peer goes away, which keeps
// control frames flowing. It returns the read error that ended it.
func (t *ThreadSafeWriter) Drain() error {
	for {
		if _, _, err := t.conn.ReadMessage(); err != nil {
			return err
		}
	}
}

// Close sends a normal closure frame, then closes the connection. Later calls
// return the first result.
func (t *ThreadSafeWriter) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		t.mu.Unlock()
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func NewThreadSafeWriter(conn *websocket.Conn, opts ...Option) *ThreadSafeWriter {
	t := &ThreadSafeWriter{
		conn:         conn,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
