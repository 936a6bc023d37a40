package main

import (
	"context"
	"log/slog"

	"github.com/romashorodok/salon-platform/api"
	"github.com/romashorodok/salon-platform/internal/client"
	"github.com/romashorodok/salon-platform/internal/roomquery"
	"github.com/romashorodok/salon-platform/internal/salon"
	"github.com/romashorodok/salon-platform/internal/token"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"github.com/romashorodok/salon-platform/pkg/service"
	"go.uber.org/fx"
)

type SyncParticipantCounts_Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *service.Config
	Store     *salon.Store
	Rooms     *roomquery.RoomQueryService
	Logger    *slog.Logger
}

// SyncParticipantCounts keeps the store's observed counts in step with the
// provider when store.sync_interval is set.
func SyncParticipantCounts(params SyncParticipantCounts_Params) {
	interval := params.Config.Store.SyncInterval
	if interval <= 0 {
		return
	}
	poller := client.NewListPoller(params.Store, params.Rooms, interval, params.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			params.Logger.Info("participant count sync started", slog.Duration("interval", interval))
			go func() {
				defer close(done)
				poller.Run(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}

func options() fx.Option {
	return fx.Options(
		service.LoggerModule,
		service.ConfigModule,
		service.TracingModule,
		service.LivekitModule,
		salon.StoreModule,
		api.Module,

		fx.Provide(
			token.ProvideTokenService,
			roomquery.ProvideRoomQueryService,

			protocol.AsHttpController(token.NewTokenController),
			protocol.AsHttpController(roomquery.NewRoomQueryController),
			protocol.AsHttpController(salon.NewSalonController),
		),

		fx.Module("sync",
			fx.Invoke(SyncParticipantCounts),
		),

		service.HttpModule,
	)
}

func main() {
	fx.New(options()).Run()
}
