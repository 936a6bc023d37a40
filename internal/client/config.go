package client

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const PlaceholderLivekitURL = "wss://your-livekit-server.livekit.cloud"

type Config struct {
	LivekitURL     string        `envconfig:"VITE_LIVEKIT_URL" default:"wss://your-livekit-server.livekit.cloud"`
	TokenServerURL string        `envconfig:"VITE_TOKEN_SERVER_URL" default:"http://localhost:3001"`
	ListInterval   time.Duration `envconfig:"SALON_LIST_INTERVAL" default:"5s"`
	LobbyInterval  time.Duration `envconfig:"SALON_LOBBY_INTERVAL" default:"3s"`
}

func LoadConfig(logger *slog.Logger) (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LivekitURL == PlaceholderLivekitURL {
		logger.Warn("LiveKit URL not set, using placeholder", slog.String("url", cfg.LivekitURL))
	}
	return cfg, nil
}
