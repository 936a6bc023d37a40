package livekit

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const DefaultTokenTTL = 6 * time.Hour

const (
	claimName  = "name"
	claimVideo = "video"
)

// AccessToken builds a provider access token signed with the API secret.
type AccessToken struct {
	apiKey    string
	apiSecret string

	identity string
	name     string
	grant    *VideoGrant
	ttl      time.Duration
	now      func() time.Time
}

func NewAccessToken(apiKey, apiSecret string) *AccessToken {
	return &AccessToken{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       DefaultTokenTTL,
		now:       time.Now,
	}
}

func (t *AccessToken) SetIdentity(identity string) *AccessToken {
	t.identity = identity
	return t
}

func (t *AccessToken) SetName(name string) *AccessToken {
	t.name = name
	return t
}

func (t *AccessToken) SetValidFor(ttl time.Duration) *AccessToken {
	if ttl > 0 {
		t.ttl = ttl
	}
	return t
}

func (t *AccessToken) SetClock(now func() time.Time) *AccessToken {
	if now != nil {
		t.now = now
	}
	return t
}

func (t *AccessToken) AddGrant(grant *VideoGrant) *AccessToken {
	t.grant = grant
	return t
}

func (t *AccessToken) ToJWT() (string, error) {
	if t.apiKey == "" || t.apiSecret == "" {
		return "", ErrMissingCredentials
	}
	if t.grant != nil && t.grant.RoomJoin && t.identity == "" {
		return "", ErrMissingIdentity
	}

	now := t.now()
	b := jwt.NewBuilder().
		Issuer(t.apiKey).
		NotBefore(now).
		Expiration(now.Add(t.ttl))

	if t.identity != "" {
		b = b.Subject(t.identity).JwtID(t.identity)
	}
	if t.name != "" {
		b = b.Claim(claimName, t.name)
	}
	if t.grant != nil {
		b = b.Claim(claimVideo, t.grant)
	}

	token, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("unable build access token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(t.apiSecret)))
	if err != nil {
		return "", fmt.Errorf("unable sign access token: %w", err)
	}
	return string(signed), nil
}
