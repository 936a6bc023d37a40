package call

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/romashorodok/salon-platform/internal/salon"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// PollPolicy bounds a track state poll: wait Delay, then check up to
// MaxChecks times, Interval apart.
type PollPolicy struct {
	Delay     time.Duration
	Interval  time.Duration
	MaxChecks int
}

const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultSettleDelay    = 100 * time.Millisecond
	localPublishDelay     = 100 * time.Millisecond
)

var (
	DefaultMicPoll    = PollPolicy{Delay: 300 * time.Millisecond, Interval: 100 * time.Millisecond, MaxChecks: 30}
	DefaultTogglePoll = PollPolicy{Delay: 200 * time.Millisecond, Interval: 100 * time.Millisecond, MaxChecks: 10}
)

type Options struct {
	URL            string
	ConnectTimeout time.Duration
	SettleDelay    time.Duration
	MicPoll        PollPolicy
	TogglePoll     PollPolicy
	VideoRequested bool
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.MicPoll.MaxChecks <= 0 {
		o.MicPoll = DefaultMicPoll
	}
	if o.TogglePoll.MaxChecks <= 0 {
		o.TogglePoll = DefaultTogglePoll
	}
	return o
}

// Snapshot is what a call view renders.
type Snapshot struct {
	State        State
	Err          error
	Reconnecting bool
	Tiles        []Tile
	Controls     Controls
	Columns      int
}

// Session drives one user's presence in a salon call.
type Session struct {
	room     MediaRoom
	tokens   TokenSource
	store    *salon.Store
	salonID  string
	userName string
	opts     Options
	logger   *slog.Logger
	onChange func(Snapshot)

	mu           sync.Mutex
	state        State
	err          error
	reconnecting bool
	tiles        []Tile
	audio        bool
	video        bool
	wantVideo    bool
	cancel       context.CancelFunc
	loopDone     chan struct{}
}

type NewSessionParams struct {
	Room     MediaRoom
	Tokens   TokenSource
	Store    *salon.Store
	SalonID  string
	UserName string
	Options  Options
	Logger   *slog.Logger
	OnChange func(Snapshot)
}

func NewSession(params NewSessionParams) *Session {
	s := &Session{
		room:     params.Room,
		tokens:   params.Tokens,
		store:    params.Store,
		salonID:  params.SalonID,
		userName: params.UserName,
		opts:     params.Options.withDefaults(),
		logger:   params.Logger.With(slog.String("salon", params.SalonID)),
		onChange: params.OnChange,
	}
	s.wantVideo = s.opts.VideoRequested
	return s
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	tiles := make([]Tile, len(s.tiles))
	copy(tiles, s.tiles)
	return Snapshot{
		State:        s.state,
		Err:          s.err,
		Reconnecting: s.reconnecting,
		Tiles:        tiles,
		Controls: Controls{
			AudioEnabled: s.audio,
			VideoEnabled: s.video,
			CanToggle:    s.state == StateConnected,
		},
		Columns: GridColumns(len(tiles)),
	}
}

func (s *Session) emit() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}

// Join fetches a token, connects and enables the microphone. It returns once
// the session is connected or failed.
func (s *Session) Join(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateConnecting || s.state == StateConnected {
		s.mu.Unlock()
		return ErrAlreadyJoined
	}
	live, cancel := context.WithCancel(context.Background())
	s.state = StateConnecting
	s.err = nil
	s.cancel = cancel
	s.mu.Unlock()
	s.emit()

	joinCtx, cancelJoin := context.WithCancel(ctx)
	defer cancelJoin()
	stop := context.AfterFunc(live, cancelJoin)
	defer stop()

	if s.opts.URL == "" {
		return s.fail(live, ErrMissingLivekitURL)
	}

	token, err := s.tokens.Token(joinCtx, salon.RoomName(s.salonID), s.userName)
	if err != nil {
		return s.fail(live, fmt.Errorf("fetch token: %w", err))
	}
	if live.Err() != nil {
		return ErrSessionClosed
	}

	if err := s.connect(joinCtx, token); err != nil {
		return s.fail(live, err)
	}
	if live.Err() != nil {
		_ = s.room.Disconnect()
		return ErrSessionClosed
	}

	done := make(chan struct{})
	s.mu.Lock()
	// Leave cancels live while holding mu, so this check cannot be overtaken.
	if live.Err() != nil {
		s.mu.Unlock()
		_ = s.room.Disconnect()
		return ErrSessionClosed
	}
	s.state = StateConnected
	s.loopDone = done
	s.mu.Unlock()

	go s.run(live, s.room.Events(), done)

	s.refresh()
	s.enableMedia(live)
	s.refresh()
	return nil
}

func (s *Session) fail(live context.Context, err error) error {
	if live.Err() != nil {
		return ErrSessionClosed
	}
	s.logger.Error("failed to connect to room", slog.String("err", err.Error()))

	s.mu.Lock()
	if live.Err() != nil {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.state = StateError
	s.err = err
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.emit()
	return err
}

func (s *Session) connect(ctx context.Context, token string) error {
	events := s.room.Events()
	if err := s.room.Connect(ctx, s.opts.URL, token); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	timeout := time.NewTimer(s.opts.ConnectTimeout)
	defer timeout.Stop()

wait:
	for {
		select {
		case <-ctx.Done():
			_ = s.room.Disconnect()
			return ctx.Err()
		case <-timeout.C:
			_ = s.room.Disconnect()
			return ErrConnectTimeout
		case ev, ok := <-events:
			if !ok {
				return ErrDisconnectedBeforeConnect
			}
			switch ev.Type {
			case EventConnected:
				break wait
			case EventDisconnected:
				return ErrDisconnectedBeforeConnect
			case EventReconnecting:
				s.logger.Info("room reconnecting")
			}
		}
	}

	if !sleep(ctx, s.opts.SettleDelay) {
		_ = s.room.Disconnect()
		return ctx.Err()
	}
	if state := s.room.State(); state != ConnectionConnected {
		return fmt.Errorf("%w: %s", ErrUnexpectedConnectionState, state)
	}
	return nil
}

func (s *Session) enableMedia(live context.Context) {
	local := s.room.LocalParticipant()

	if err := local.SetMicrophoneEnabled(live, true); err != nil {
		s.logger.Warn("microphone not enabled", slog.String("err", err.Error()))
		s.setFlags(false, s.Snapshot().Controls.VideoEnabled)
	} else {
		enabled := s.pollAudio(live, s.opts.MicPoll)
		s.setFlags(enabled, s.Snapshot().Controls.VideoEnabled)
	}
	if live.Err() != nil {
		return
	}

	s.mu.Lock()
	wantVideo := s.wantVideo
	s.mu.Unlock()
	if !wantVideo {
		return
	}
	if err := local.SetCameraEnabled(live, true); err != nil {
		s.logger.Warn("camera not enabled", slog.String("err", err.Error()))
		s.setFlags(s.Snapshot().Controls.AudioEnabled, false)
		return
	}
	s.setFlags(s.Snapshot().Controls.AudioEnabled, LocalVideoEnabled(local))
}

// pollAudio waits for the local microphone publication to come up unmuted,
// forcing an unmute while it stays muted.
func (s *Session) pollAudio(ctx context.Context, policy PollPolicy) bool {
	if !sleep(ctx, policy.Delay) {
		return false
	}

	local := s.room.LocalParticipant()
	for check := 1; ; check++ {
		if pub := firstWithTrack(local.TrackPublications(TrackAudio)); pub != nil {
			if pub.IsMuted() {
				pub.SetMuted(false)
				if err := local.SetMicrophoneEnabled(ctx, true); err != nil {
					s.logger.Debug("re-enable microphone", slog.String("err", err.Error()))
				}
			}
			if isLive(pub) {
				return true
			}
		}
		if check >= policy.MaxChecks {
			s.logger.Warn("microphone not enabled after max checks", slog.Int("checks", check))
			return false
		}
		if !sleep(ctx, policy.Interval) {
			return false
		}
	}
}

func (s *Session) run(live context.Context, events <-chan Event, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-live.Done():
			return
		case ev, ok := <-events:
			if !ok {
				s.dropped()
				return
			}
			if live.Err() != nil {
				return
			}
			if ev.Type == EventDisconnected {
				s.dropped()
				return
			}
			s.handle(live, ev)
		}
	}
}

func (s *Session) handle(live context.Context, ev Event) {
	s.logger.Debug("room event", slog.String("event", ev.Type.String()), slog.String("participant", ev.Participant))

	switch ev.Type {
	case EventReconnecting:
		s.mu.Lock()
		s.reconnecting = true
		s.mu.Unlock()
		s.emit()
	case EventReconnected:
		s.mu.Lock()
		s.reconnecting = false
		s.mu.Unlock()
		s.refresh()
	case EventLocalTrackPublished:
		if ev.Kind == TrackAudio {
			s.ensureAudioUnmuted(live)
		}
		s.refresh()
	default:
		s.refresh()
	}
}

// ensureAudioUnmuted fixes a microphone that got published muted.
func (s *Session) ensureAudioUnmuted(live context.Context) {
	if !sleep(live, localPublishDelay) {
		return
	}
	local := s.room.LocalParticipant()
	pub := firstWithTrack(local.TrackPublications(TrackAudio))
	if pub == nil || !pub.IsMuted() {
		return
	}
	if err := local.SetMicrophoneEnabled(live, true); err != nil {
		s.logger.Warn("fix muted microphone", slog.String("err", err.Error()))
		return
	}
	if !sleep(live, localPublishDelay) {
		return
	}
	if pub := firstWithTrack(local.TrackPublications(TrackAudio)); pub != nil && pub.IsMuted() {
		pub.SetMuted(false)
	}
}

// dropped handles a disconnect the user did not ask for.
func (s *Session) dropped() {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return
	}
	s.logger.Info("room disconnected")
	s.state = StateIdle
	s.tiles = nil
	s.audio, s.video = false, false
	s.reconnecting = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.emit()
}

// refresh re-derives the view from the provider graph and publishes the
// observed salon count.
func (s *Session) refresh() {
	r := Reconcile(s.room.LocalParticipant(), s.room.RemoteParticipants())

	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return
	}
	s.tiles = r.Tiles
	s.audio = r.LocalAudio
	s.video = r.LocalVideo
	s.mu.Unlock()

	s.observe(1 + r.RemoteCount)
	s.emit()
}

func (s *Session) observe(count int) {
	if s.store == nil {
		return
	}
	if _, err := s.store.ObserveParticipantCount(s.salonID, count); err != nil {
		s.logger.Debug("observe participant count", slog.String("err", err.Error()))
	}
}

func (s *Session) setFlags(audio, video bool) {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return
	}
	s.audio, s.video = audio, video
	s.mu.Unlock()
	s.emit()
}

func (s *Session) connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateConnected
}

// ToggleAudio flips the microphone. Device failures are logged and the flags
// re-derived from the graph.
func (s *Session) ToggleAudio(ctx context.Context) error {
	if !s.connected() {
		return ErrNotConnected
	}
	local := s.room.LocalParticipant()
	snap := s.Snapshot()

	if snap.Controls.AudioEnabled {
		if err := local.SetMicrophoneEnabled(ctx, false); err != nil {
			s.logger.Error("error toggling audio", slog.String("err", err.Error()))
			s.setFlags(LocalAudioEnabled(local), snap.Controls.VideoEnabled)
			return nil
		}
		s.setFlags(false, snap.Controls.VideoEnabled)
		return nil
	}

	if err := local.SetMicrophoneEnabled(ctx, true); err != nil {
		s.logger.Warn("error toggling audio", slog.String("err", err.Error()))
		s.setFlags(LocalAudioEnabled(local), snap.Controls.VideoEnabled)
		return nil
	}
	s.setFlags(s.pollAudio(ctx, s.opts.TogglePoll), s.Snapshot().Controls.VideoEnabled)
	return nil
}

func (s *Session) ToggleVideo(ctx context.Context) error {
	if !s.connected() {
		return ErrNotConnected
	}
	local := s.room.LocalParticipant()
	snap := s.Snapshot()
	want := !snap.Controls.VideoEnabled

	s.mu.Lock()
	s.wantVideo = want
	s.mu.Unlock()

	if err := local.SetCameraEnabled(ctx, want); err != nil {
		s.logger.Error("error toggling video", slog.String("err", err.Error()))
		s.setFlags(snap.Controls.AudioEnabled, LocalVideoEnabled(local))
		return nil
	}
	s.setFlags(snap.Controls.AudioEnabled, want)
	return nil
}

// Leave disconnects and leaves the observed count at the remaining remote
// participants. It is safe to call more than once.
func (s *Session) Leave() error {
	s.mu.Lock()
	cancel := s.cancel
	done := s.loopDone
	wasConnected := s.state == StateConnected
	s.cancel = nil
	s.loopDone = nil
	s.state = StateIdle
	s.err = nil
	s.tiles = nil
	s.audio, s.video = false, false
	s.reconnecting = false
	if cancel != nil {
		cancel()
	}
	s.mu.Unlock()

	if cancel == nil && !wasConnected {
		return nil
	}
	if done != nil {
		<-done
	}

	var err error
	if wasConnected {
		if s.room.State() == ConnectionConnected {
			s.observe(len(s.room.RemoteParticipants()))
		}
		err = s.room.Disconnect()
	}
	s.emit()
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
