package call

import (
	"context"
	"sync"
)

type fakePub struct {
	mu       sync.Mutex
	kind     TrackKind
	hasTrack bool
	muted    bool
	// SetMuted(false) calls ignored before the unmute sticks; -1 never sticks.
	sticky  int
	unmutes int
}

func (p *fakePub) Kind() TrackKind { return p.kind }

func (p *fakePub) HasTrack() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasTrack
}

func (p *fakePub) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *fakePub) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if muted {
		p.muted = true
		return
	}
	p.unmutes++
	if p.sticky < 0 {
		return
	}
	if p.sticky > 0 {
		p.sticky--
		return
	}
	p.muted = false
}

type fakeParticipant struct {
	mu       sync.Mutex
	identity string
	name     string
	pubs     []*fakePub
}

func newFakeParticipant(identity, name string, pubs ...*fakePub) *fakeParticipant {
	return &fakeParticipant{identity: identity, name: name, pubs: pubs}
}

func (p *fakeParticipant) Identity() string { return p.identity }
func (p *fakeParticipant) Name() string     { return p.name }

func (p *fakeParticipant) TrackPublications(kind TrackKind) []TrackPublication {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []TrackPublication
	for _, pub := range p.pubs {
		if pub.kind == kind {
			out = append(out, pub)
		}
	}
	return out
}

func (p *fakeParticipant) pub(kind TrackKind) *fakePub {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pub := range p.pubs {
		if pub.kind == kind {
			return pub
		}
	}
	return nil
}

type fakeLocal struct {
	*fakeParticipant
	micErr error
	camErr error
	// Stickiness of a freshly published microphone; zero publishes unmuted.
	micSticky int
	micCalls  int
}

func (l *fakeLocal) SetMicrophoneEnabled(_ context.Context, enabled bool) error {
	l.mu.Lock()
	l.micCalls++
	l.mu.Unlock()
	if l.micErr != nil {
		return l.micErr
	}
	return l.setEnabled(TrackAudio, enabled, l.micSticky)
}

func (l *fakeLocal) SetCameraEnabled(_ context.Context, enabled bool) error {
	if l.camErr != nil {
		return l.camErr
	}
	return l.setEnabled(TrackVideo, enabled, 0)
}

func (l *fakeLocal) setEnabled(kind TrackKind, enabled bool, sticky int) error {
	pub := l.pub(kind)
	if pub == nil {
		if !enabled {
			return nil
		}
		l.mu.Lock()
		l.pubs = append(l.pubs, &fakePub{kind: kind, hasTrack: true, muted: sticky != 0, sticky: sticky})
		l.mu.Unlock()
		return nil
	}
	pub.mu.Lock()
	if !enabled {
		pub.muted = true
	} else if pub.sticky == 0 {
		pub.muted = false
	}
	pub.mu.Unlock()
	return nil
}

type fakeRoom struct {
	mu          sync.Mutex
	events      chan Event
	state       ConnectionState
	local       *fakeLocal
	remotes     []*fakeParticipant
	connectErr  error
	onConnect   func(r *fakeRoom)
	disconnects int
	url, token  string
}

func newFakeRoom(remotes ...*fakeParticipant) *fakeRoom {
	r := &fakeRoom{
		events:  make(chan Event, 64),
		state:   ConnectionDisconnected,
		local:   &fakeLocal{fakeParticipant: newFakeParticipant("me-1", "Me")},
		remotes: remotes,
	}
	r.onConnect = func(r *fakeRoom) {
		r.setState(ConnectionConnected)
		r.events <- Event{Type: EventConnected}
	}
	return r
}

func (r *fakeRoom) setState(state ConnectionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

func (r *fakeRoom) Connect(_ context.Context, url, token string) error {
	r.mu.Lock()
	r.url, r.token = url, token
	err := r.connectErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.setState(ConnectionConnecting)
	if r.onConnect != nil {
		r.onConnect(r)
	}
	return nil
}

func (r *fakeRoom) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnects++
	r.state = ConnectionDisconnected
	return nil
}

func (r *fakeRoom) State() ConnectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *fakeRoom) Events() <-chan Event { return r.events }

func (r *fakeRoom) LocalParticipant() LocalParticipant { return r.local }

func (r *fakeRoom) RemoteParticipants() []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Participant, 0, len(r.remotes))
	for _, p := range r.remotes {
		out = append(out, p)
	}
	return out
}

func (r *fakeRoom) join(p *fakeParticipant) {
	r.mu.Lock()
	r.remotes = append(r.remotes, p)
	r.mu.Unlock()
	r.events <- Event{Type: EventParticipantConnected, Participant: p.identity}
}

func (r *fakeRoom) leave(identity string) {
	r.mu.Lock()
	for i, p := range r.remotes {
		if p.identity == identity {
			r.remotes = append(r.remotes[:i], r.remotes[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	r.events <- Event{Type: EventParticipantDisconnected, Participant: identity}
}

func (r *fakeRoom) disconnectCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disconnects
}

type fakeTokens struct {
	mu       sync.Mutex
	err      error
	room     string
	userName string
}

func (f *fakeTokens) Token(_ context.Context, roomName, participantName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.room, f.userName = roomName, participantName
	if f.err != nil {
		return "", f.err
	}
	return "token-" + roomName, nil
}
