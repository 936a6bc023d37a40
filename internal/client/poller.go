package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/romashorodok/salon-platform/internal/salon"
)

const (
	DefaultListInterval  = 5 * time.Second
	DefaultLobbyInterval = 3 * time.Second
)

// CountsSource resolves participant counts for many rooms at once.
type CountsSource interface {
	ParticipantCounts(ctx context.Context, roomNames []string) (map[string]int, error)
}

// CountSource resolves the participant count of one room.
type CountSource interface {
	ParticipantCount(ctx context.Context, roomName string) (int, error)
}

// every runs fn now and then on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// ListPoller keeps the displayed counts of every active salon in sync with
// the provider.
type ListPoller struct {
	store    *salon.Store
	source   CountsSource
	interval time.Duration
	logger   *slog.Logger
}

func NewListPoller(store *salon.Store, source CountsSource, interval time.Duration, logger *slog.Logger) *ListPoller {
	if interval <= 0 {
		interval = DefaultListInterval
	}
	return &ListPoller{store: store, source: source, interval: interval, logger: logger}
}

// Poll runs one refresh and returns how many salons changed.
func (p *ListPoller) Poll(ctx context.Context) (int, error) {
	active := p.store.ActiveSalons()
	if len(active) == 0 {
		return 0, nil
	}

	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.RoomName())
	}

	counts, err := p.source.ParticipantCounts(ctx, names)
	if err != nil {
		return 0, err
	}

	var applied int
	for _, s := range active {
		count := counts[s.RoomName()]
		if s.DisplayCount() == count {
			continue
		}
		changed, err := p.store.ObserveParticipantCount(s.ID, count)
		if err != nil {
			// Reaped or removed since the snapshot.
			continue
		}
		if changed {
			applied++
		}
	}
	return applied, nil
}

func (p *ListPoller) Run(ctx context.Context) {
	every(ctx, p.interval, func(ctx context.Context) {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("failed to fetch participant counts", slog.String("err", err.Error()))
		}
	})
}

// LobbyPoller follows the count of the salon a user is about to enter.
type LobbyPoller struct {
	store    *salon.Store
	source   CountSource
	salonID  string
	interval time.Duration
	onCount  func(int)
	logger   *slog.Logger
}

type NewLobbyPollerParams struct {
	Store    *salon.Store
	Source   CountSource
	SalonID  string
	Interval time.Duration
	OnCount  func(int)
	Logger   *slog.Logger
}

func NewLobbyPoller(params NewLobbyPollerParams) *LobbyPoller {
	p := &LobbyPoller{
		store:    params.Store,
		source:   params.Source,
		salonID:  params.SalonID,
		interval: params.Interval,
		onCount:  params.OnCount,
		logger:   params.Logger,
	}
	if p.interval <= 0 {
		p.interval = DefaultLobbyInterval
	}
	if p.onCount == nil {
		p.onCount = func(int) {}
	}
	return p
}

func (p *LobbyPoller) Poll(ctx context.Context) (int, error) {
	count, err := p.source.ParticipantCount(ctx, salon.RoomName(p.salonID))
	if err != nil {
		return 0, err
	}
	p.onCount(count)

	if s, ok := p.store.Salon(p.salonID); ok && s.DisplayCount() != count {
		_, _ = p.store.ObserveParticipantCount(p.salonID, count)
	}
	return count, nil
}

func (p *LobbyPoller) Run(ctx context.Context) {
	every(ctx, p.interval, func(ctx context.Context) {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("failed to fetch participant count",
				slog.String("salon", p.salonID),
				slog.String("err", err.Error()),
			)
		}
	})
}
