package functions

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	ff "github.com/GoogleCloudPlatform/functions-framework-go/functions"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/romashorodok/salon-platform/internal/roomquery"
	"github.com/romashorodok/salon-platform/internal/token"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/service"
)

var (
	loadOnce sync.Once
	loaded   *Handlers
	loadErr  error
)

func init() {
	for _, name := range []string{GenerateTokenName, GetRoomParticipantsName, GetParticipantCountsName} {
		ff.HTTP(name, lazy(name))
	}
}

// lazy defers config loading to the first request so a cold start without
// credentials still answers with a JSON error.
func lazy(name string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		loadOnce.Do(func() {
			loaded, loadErr = load()
		})
		if loadErr != nil {
			slog.Error("functions not initialized", slog.String("err", loadErr.Error()))
			writeJSON(w, http.StatusInternalServerError, &protocol.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
			return
		}
		loaded.Handler(name).ServeHTTP(w, r)
	}
}

func load() (*Handlers, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	service.LoadDotenv(logger)
	cfg, err := service.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// New builds the handlers from a resolved configuration.
func New(cfg *service.Config, logger *slog.Logger) (*Handlers, error) {
	if !cfg.Livekit.HasCredentials() {
		logger.Warn("livekit credentials not configured, token issuance will fail")
	}

	cache, err := roomquery.NewCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	rooms := lksdk.NewRoomServiceClient(cfg.Livekit.URL, cfg.Livekit.APIKey, cfg.Livekit.APISecret)

	return NewHandlers(NewHandlersParams{
		TokenService:     token.NewTokenService(cfg.Livekit, logger, token.WithTTL(cfg.Token.TTL)),
		RoomQueryService: roomquery.NewRoomQueryService(rooms, logger, roomquery.WithCache(cache)),
		Logger:           logger,
	}), nil
}
