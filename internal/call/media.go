package call

import "context"

type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// TrackPublication is a track a participant announced to the room. HasTrack
// reports whether the media is attached locally.
type TrackPublication interface {
	Kind() TrackKind
	HasTrack() bool
	IsMuted() bool
	SetMuted(muted bool)
}

type Participant interface {
	Identity() string
	Name() string
	TrackPublications(kind TrackKind) []TrackPublication
}

type LocalParticipant interface {
	Participant
	SetMicrophoneEnabled(ctx context.Context, enabled bool) error
	SetCameraEnabled(ctx context.Context, enabled bool) error
}

type ConnectionState string

const (
	ConnectionDisconnected ConnectionState = "disconnected"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionConnected    ConnectionState = "connected"
	ConnectionReconnecting ConnectionState = "reconnecting"
)

type EventType int

const (
	EventConnected EventType = iota
	EventDisconnected
	EventReconnecting
	EventReconnected
	EventParticipantConnected
	EventParticipantDisconnected
	EventTrackSubscribed
	EventTrackUnsubscribed
	EventTrackMuted
	EventTrackUnmuted
	EventLocalTrackPublished
	EventLocalTrackUnpublished
)

func (t EventType) String() string {
	switch t {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventReconnecting:
		return "reconnecting"
	case EventReconnected:
		return "reconnected"
	case EventParticipantConnected:
		return "participant_connected"
	case EventParticipantDisconnected:
		return "participant_disconnected"
	case EventTrackSubscribed:
		return "track_subscribed"
	case EventTrackUnsubscribed:
		return "track_unsubscribed"
	case EventTrackMuted:
		return "track_muted"
	case EventTrackUnmuted:
		return "track_unmuted"
	case EventLocalTrackPublished:
		return "local_track_published"
	case EventLocalTrackUnpublished:
		return "local_track_unpublished"
	default:
		return "unknown"
	}
}

type Event struct {
	Type        EventType
	Participant string
	Kind        TrackKind
}

// MediaRoom is the media client SDK surface a call session drives. Connect
// starts connecting; completion is signalled with EventConnected.
type MediaRoom interface {
	Connect(ctx context.Context, url, token string) error
	Disconnect() error
	State() ConnectionState
	Events() <-chan Event
	LocalParticipant() LocalParticipant
	RemoteParticipants() []Participant
}

// TokenSource issues join tokens. *client.API satisfies it.
type TokenSource interface {
	Token(ctx context.Context, roomName, participantName string) (string, error)
}
