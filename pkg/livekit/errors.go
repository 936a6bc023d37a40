package livekit

import (
	"errors"

	"github.com/twitchtv/twirp"
)

var (
	ErrMissingCredentials = errors.New("livekit api key and secret are required")
	ErrMissingIdentity    = errors.New("identity is required for join grants")
)

// IsNotFound reports whether the room service answered with a twirp
// not_found, which it does for rooms that closed or never existed.
func IsNotFound(err error) bool {
	var twerr twirp.Error
	return errors.As(err, &twerr) && twerr.Code() == twirp.NotFound
}
