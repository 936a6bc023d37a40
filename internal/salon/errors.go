package salon

import "errors"

var (
	ErrSalonNotFound       = errors.New("salon not found")
	ErrSalonExists         = errors.New("salon already exists")
	ErrSalonIDIsEmpty      = errors.New("salon id is empty")
	ErrInvalidSalonType    = errors.New("salon type must be audio or video")
	ErrGroupNotFound       = errors.New("group not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")
	ErrNoCurrentUser       = errors.New("no current user")
)
