package token

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/romashorodok/salon-platform/pkg/livekit"
	"github.com/romashorodok/salon-platform/pkg/service"
	"go.uber.org/fx"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// Identity derives a provider identity from a display name: whitespace runs
// become "-", the result is lowercased and suffixed with the unix millis.
func Identity(participantName string, now time.Time) string {
	base := strings.ToLower(whitespaceRun.ReplaceAllString(participantName, "-"))
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}

type TokenService struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// Issue mints a room join token for participantName.
func (s *TokenService) Issue(roomName, participantName string) (string, error) {
	if roomName == "" || participantName == "" {
		return "", ErrMissingFields
	}
	if s.apiKey == "" || s.apiSecret == "" {
		return "", ErrNotConfigured
	}

	now := s.now()
	identity := Identity(participantName, now)

	token, err := livekit.NewAccessToken(s.apiKey, s.apiSecret).
		SetIdentity(identity).
		SetName(participantName).
		SetValidFor(s.ttl).
		SetClock(func() time.Time { return now }).
		AddGrant(livekit.JoinGrant(roomName)).
		ToJWT()
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", identity, err)
	}

	s.logger.Debug("token issued", slog.String("room", roomName), slog.String("identity", identity))
	return token, nil
}

type TokenServiceOption func(*TokenService)

func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func WithTTL(ttl time.Duration) TokenServiceOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewTokenService(cfg service.LivekitConfig, logger *slog.Logger, opts ...TokenServiceOption) *TokenService {
	s := &TokenService{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		ttl:       livekit.DefaultTokenTTL,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type NewTokenServiceParams struct {
	fx.In

	Config *service.Config
	Logger *slog.Logger
}

func ProvideTokenService(params NewTokenServiceParams) *TokenService {
	return NewTokenService(params.Config.Livekit, params.Logger, WithTTL(params.Config.Token.TTL))
}
