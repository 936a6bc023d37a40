package salon

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultReapInterval  = time.Minute
	DefaultIdleThreshold = 60 * time.Minute
)

// Reaper periodically closes salons nobody has been active in.
type Reaper struct {
	store     *Store
	interval  time.Duration
	threshold time.Duration
	mode      ReapMode
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type NewReaperParams struct {
	Store     *Store
	Interval  time.Duration
	Threshold time.Duration
	Mode      ReapMode
	Logger    *slog.Logger
}

func NewReaper(params NewReaperParams) *Reaper {
	r := &Reaper{
		store:     params.Store,
		interval:  params.Interval,
		threshold: params.Threshold,
		mode:      params.Mode,
		logger:    params.Logger,
	}
	if r.interval <= 0 {
		r.interval = DefaultReapInterval
	}
	if r.threshold <= 0 {
		r.threshold = DefaultIdleThreshold
	}
	if r.mode == "" {
		r.mode = ReapDeactivate
	}
	return r
}

// Sweep runs one reaping pass as of now.
func (r *Reaper) Sweep(now time.Time) []string {
	reaped := r.store.ReapIdle(now, r.threshold, r.mode)
	for _, id := range reaped {
		r.logger.Info("salon reaped", slog.String("salon", id), slog.String("mode", string(r.mode)))
	}
	return reaped
}

func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.run(ctx, r.done)
}

func (r *Reaper) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (r *Reaper) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
