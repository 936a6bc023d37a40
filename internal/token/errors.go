package token

import "errors"

var (
	ErrMissingFields = errors.New("roomName and participantName are required")
	ErrNotConfigured = errors.New("livekit credentials not configured")
)
