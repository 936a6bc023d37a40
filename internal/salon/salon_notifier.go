package salon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/romashorodok/salon-platform/pkg/executils"
	"github.com/romashorodok/salon-platform/pkg/protocol"
)

// Listener receives notifier events. *wsutils.ThreadSafeWriter satisfies it.
type Listener interface {
	WriteJSON(any) error
}

type SalonNotifier struct {
	listeners     map[string]Listener
	updateSalonCh chan struct{}
	listenersMu   sync.Mutex
	logger        *slog.Logger
}

func (n *SalonNotifier) Listen(id string, w Listener) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	n.listeners[id] = w
}

func (n *SalonNotifier) Stop(id string) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	delete(n.listeners, id)
}

// DispatchUpdateSalons never blocks; pending updates coalesce into one.
func (n *SalonNotifier) DispatchUpdateSalons() {
	n.listenersMu.Lock()
	empty := len(n.listeners) == 0
	n.listenersMu.Unlock()
	if empty {
		return
	}

	select {
	case n.updateSalonCh <- struct{}{}:
	default:
	}
}

func (n *SalonNotifier) getListeners() (result []Listener) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	for _, listener := range n.listeners {
		result = append(result, listener)
	}
	return
}

// Listener counts at which fan-out goes parallel, and the chunk per worker.
const (
	parallelListeners uint64 = 64
	listenerStep      uint64 = 8
)

func (n *SalonNotifier) OnUpdateSalons(ctx context.Context, fn func(Listener)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.updateSalonCh:
			if err := executils.ParallelExec(ctx, n.getListeners(), parallelListeners, listenerStep, fn); err != nil {
				return
			}
		}
	}
}

// Run pushes an update-salons event to every listener until ctx is done.
func (n *SalonNotifier) Run(ctx context.Context) {
	msg := &protocol.NotifyMessage{Event: protocol.EventUpdateSalons}
	n.OnUpdateSalons(ctx, func(l Listener) {
		if err := l.WriteJSON(msg); err != nil {
			n.logger.Debug("notify listener", slog.String("err", err.Error()))
		}
	})
}

func NewSalonNotifier(logger *slog.Logger) *SalonNotifier {
	return &SalonNotifier{
		listeners:     make(map[string]Listener),
		updateSalonCh: make(chan struct{}, 1),
		logger:        logger,
	}
}
