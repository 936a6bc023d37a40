package roomquery

import "errors"

var (
	ErrMissingRoomName   = errors.New("roomName is required")
	ErrRoomNamesNotArray = errors.New("roomNames must be an array")
	ErrListRooms         = errors.New("list rooms")
	ErrRoomParticipants  = errors.New("list room participants")
)
