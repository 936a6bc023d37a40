package salon

import (
	"context"
	"log/slog"

	"github.com/romashorodok/salon-platform/pkg/service"
	"go.uber.org/fx"
)

type store_Params struct {
	fx.In

	Config *service.Config
	Logger *slog.Logger
}

func store(params store_Params) *Store {
	s := NewStore(params.Logger)
	if params.Config.Store.Seed {
		s.Seed()
		params.Logger.Info("store seeded", slog.Int("salons", len(s.Salons())))
	}
	return s
}

type notifier_Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Store     *Store
	Logger    *slog.Logger
}

func notifier(params notifier_Params) *SalonNotifier {
	n := NewSalonNotifier(params.Logger)
	params.Store.OnChange(n.DispatchUpdateSalons)

	ctx, cancel := context.WithCancel(context.Background())
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go n.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return n
}

type reaper_Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *service.Config
	Store     *Store
	Logger    *slog.Logger
}

func reaper(params reaper_Params) *Reaper {
	cfg := params.Config.Store
	r := NewReaper(NewReaperParams{
		Store:     params.Store,
		Interval:  cfg.ReapInterval,
		Threshold: cfg.IdleThreshold,
		Mode:      ParseReapMode(cfg.ReapMode),
		Logger:    params.Logger,
	})

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			r.Start(context.Background())
			return nil
		},
		OnStop: func(context.Context) error {
			r.Stop()
			return nil
		},
	})
	return r
}

var StoreModule = fx.Module("store",
	fx.Provide(
		store,
		notifier,
		reaper,
	),
	fx.Invoke(func(*Reaper, *SalonNotifier) {}),
)
