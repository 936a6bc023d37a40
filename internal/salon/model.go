package salon

import "time"

type SalonType string

const (
	SalonTypeAudio SalonType = "audio"
	SalonTypeVideo SalonType = "video"
)

func (t SalonType) Valid() bool {
	return t == SalonTypeAudio || t == SalonTypeVideo
}

type User struct {
	ID     string
	Name   string
	Avatar string
	Email  string
}

type Group struct {
	ID          string
	Name        string
	Avatar      string
	MemberCount int
}

type Salon struct {
	ID             string
	GroupID        string
	Name           string
	Type           SalonType
	CreatedAt      time.Time
	LastActivityAt time.Time
	IsActive       bool

	// Bound to the Participant records of this salon.
	ParticipantCount int

	// Last count reported by the media provider.
	ObservedCount int
	ObservedAt    time.Time
}

// DisplayCount prefers the provider count once one has been observed.
func (s Salon) DisplayCount() int {
	if s.ObservedAt.IsZero() {
		return s.ParticipantCount
	}
	return s.ObservedCount
}

// RoomName is the provider room backing the salon.
func (s Salon) RoomName() string {
	return RoomName(s.ID)
}

func RoomName(salonID string) string {
	return "salon-" + salonID
}

type Participant struct {
	ID           string
	SalonID      string
	UserID       string
	UserName     string
	UserAvatar   string
	JoinedAt     time.Time
	AudioEnabled bool
	VideoEnabled bool
}

// SalonPatch carries a partial salon update. The participant counter is not
// patchable.
type SalonPatch struct {
	Name           *string
	Type           *SalonType
	IsActive       *bool
	LastActivityAt *time.Time
}

type ParticipantPatch struct {
	UserName     *string
	UserAvatar   *string
	AudioEnabled *bool
	VideoEnabled *bool
}

type ReapMode string

const (
	ReapDeactivate ReapMode = "deactivate"
	ReapRemove     ReapMode = "remove"
)

func ParseReapMode(s string) ReapMode {
	if ReapMode(s) == ReapRemove {
		return ReapRemove
	}
	return ReapDeactivate
}
