package service

import (
	"log/slog"

	lksdk "github.com/livekit/server-sdk-go/v2"
	"go.uber.org/fx"
)

type roomServiceClient_Params struct {
	fx.In

	Config *Config
	Logger *slog.Logger
}

func roomServiceClient(params roomServiceClient_Params) *lksdk.RoomServiceClient {
	lk := params.Config.Livekit
	if lk.URL == "" {
		params.Logger.Warn("livekit url not configured, room queries will fail")
	}
	return lksdk.NewRoomServiceClient(lk.URL, lk.APIKey, lk.APISecret)
}

var LivekitModule = fx.Module("livekit", fx.Provide(roomServiceClient))
