package call

import "errors"

var (
	ErrConnectTimeout            = errors.New("connection timeout")
	ErrDisconnectedBeforeConnect = errors.New("connection lost before establishing")
	ErrNotConnected              = errors.New("not connected")
	ErrAlreadyJoined             = errors.New("session already joined")
	ErrMissingLivekitURL         = errors.New("livekit url not configured")
	ErrUnexpectedConnectionState = errors.New("unexpected connection state")
)

var ErrSessionClosed = errors.New("session closed")
