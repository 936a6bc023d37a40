package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/romashorodok/salon-platform/pkg/protocol"
)

var ErrNotifyUnsupported = errors.New("backend has no salon notifier")

// Watch calls onUpdate for every update-salons event until ctx is done or the
// connection drops.
func (a *API) Watch(ctx context.Context, onUpdate func()) error {
	u, ok := a.NotifyURL()
	if !ok {
		return ErrNotifyUnsupported
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, http.Header{})
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		var msg protocol.NotifyMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if msg.Event == protocol.EventUpdateSalons {
			onUpdate()
		}
	}
}
