package salon

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns every salon, group, user and participant of the process. Each
// mutation runs under the write lock; queries return copies.
type Store struct {
	mu sync.RWMutex

	users         []User
	groups        []Group
	salons        []*Salon
	participants  []*Participant
	currentUserID string

	now      func() time.Time
	logger   *slog.Logger
	onChange []func()
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithDirectory(users []User, groups []Group) StoreOption {
	return func(s *Store) {
		s.users = slices.Clone(users)
		s.groups = slices.Clone(groups)
	}
}

func NewStore(logger *slog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run after every committed mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Store) changed() {
	s.mu.RLock()
	hooks := slices.Clone(s.onChange)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn()
	}
}

func (s *Store) SetCurrentUser(userID string) error {
	s.mu.Lock()
	if s.userLocked(userID) == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	s.currentUserID = userID
	s.mu.Unlock()

	s.changed()
	return nil
}

func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.userLocked(s.currentUserID); u != nil {
		return *u, true
	}
	return User{}, false
}

func (s *Store) AddSalon(salon Salon) error {
	if salon.ID == "" {
		return ErrSalonIDIsEmpty
	}
	if salon.Type == "" {
		salon.Type = SalonTypeVideo
	}
	if !salon.Type.Valid() {
		return ErrInvalidSalonType
	}

	s.mu.Lock()
	if s.salonLocked(salon.ID) != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSalonExists, salon.ID)
	}
	now := s.now()
	if salon.CreatedAt.IsZero() {
		salon.CreatedAt = now
	}
	if salon.LastActivityAt.IsZero() {
		salon.LastActivityAt = salon.CreatedAt
	}
	salon.ParticipantCount = 0
	s.salons = append(s.salons, &salon)
	s.mu.Unlock()

	s.changed()
	return nil
}

// CreateSalon opens a new active video salon named after its group.
func (s *Store) CreateSalon(groupID string) (Salon, error) {
	s.mu.Lock()
	group := s.groupLocked(groupID)
	if group == nil {
		s.mu.Unlock()
		return Salon{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	now := s.now()
	ms := now.UnixMilli()
	id := fmt.Sprintf("salon-%d", ms)
	for s.salonLocked(id) != nil {
		ms++
		id = fmt.Sprintf("salon-%d", ms)
	}

	created := &Salon{
		ID:             id,
		GroupID:        group.ID,
		Name:           group.Name,
		Type:           SalonTypeVideo,
		CreatedAt:      now,
		LastActivityAt: now,
		IsActive:       true,
	}
	s.salons = append(s.salons, created)
	out := *created
	s.mu.Unlock()

	s.logger.Info("salon created", slog.String("salon", id), slog.String("group", groupID))
	s.changed()
	return out, nil
}

func (s *Store) UpdateSalon(id string, patch SalonPatch) (Salon, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return Salon{}, ErrInvalidSalonType
	}

	s.mu.Lock()
	salon := s.salonLocked(id)
	if salon == nil {
		s.mu.Unlock()
		return Salon{}, fmt.Errorf("%w: %s", ErrSalonNotFound, id)
	}
	if patch.Name != nil {
		salon.Name = *patch.Name
	}
	if patch.Type != nil {
		salon.Type = *patch.Type
	}
	if patch.IsActive != nil {
		salon.IsActive = *patch.IsActive
	}
	if patch.LastActivityAt != nil {
		salon.LastActivityAt = *patch.LastActivityAt
	}
	out := *salon
	s.mu.Unlock()

	s.changed()
	return out, nil
}

// RemoveSalon drops the salon together with its participants.
func (s *Store) RemoveSalon(id string) error {
	s.mu.Lock()
	if !s.removeSalonLocked(id) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSalonNotFound, id)
	}
	s.mu.Unlock()

	s.changed()
	return nil
}

func (s *Store) removeSalonLocked(id string) bool {
	before := len(s.salons)
	s.salons = slices.DeleteFunc(s.salons, func(salon *Salon) bool { return salon.ID == id })
	if len(s.salons) == before {
		return false
	}
	s.participants = slices.DeleteFunc(s.participants, func(p *Participant) bool { return p.SalonID == id })
	return true
}

// AddParticipant records a member of a salon and bumps its counter.
func (s *Store) AddParticipant(p Participant) (Participant, error) {
	s.mu.Lock()
	salon := s.salonLocked(p.SalonID)
	if salon == nil {
		s.mu.Unlock()
		return Participant{}, fmt.Errorf("%w: %s", ErrSalonNotFound, p.SalonID)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if s.participantLocked(p.ID) != nil {
		s.mu.Unlock()
		return Participant{}, fmt.Errorf("%w: %s", ErrParticipantExists, p.ID)
	}

	now := s.now()
	if p.JoinedAt.IsZero() {
		p.JoinedAt = now
	}
	s.participants = append(s.participants, &p)
	salon.ParticipantCount++
	salon.LastActivityAt = now
	s.mu.Unlock()

	s.changed()
	return p, nil
}

func (s *Store) UpdateParticipant(id string, patch ParticipantPatch) (Participant, error) {
	s.mu.Lock()
	p := s.participantLocked(id)
	if p == nil {
		s.mu.Unlock()
		return Participant{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	if patch.UserName != nil {
		p.UserName = *patch.UserName
	}
	if patch.UserAvatar != nil {
		p.UserAvatar = *patch.UserAvatar
	}
	if patch.AudioEnabled != nil {
		p.AudioEnabled = *patch.AudioEnabled
	}
	if patch.VideoEnabled != nil {
		p.VideoEnabled = *patch.VideoEnabled
	}
	out := *p
	s.mu.Unlock()

	s.changed()
	return out, nil
}

func (s *Store) RemoveParticipant(id string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.participants, func(p *Participant) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	p := s.participants[idx]
	s.participants = slices.Delete(s.participants, idx, idx+1)

	if salon := s.salonLocked(p.SalonID); salon != nil {
		salon.ParticipantCount = max(0, salon.ParticipantCount-1)
		salon.LastActivityAt = s.now()
	}
	s.mu.Unlock()

	s.changed()
	return nil
}

// ObserveParticipantCount records a provider-reported count. Activity is only
// refreshed when the count actually changed.
func (s *Store) ObserveParticipantCount(salonID string, count int) (bool, error) {
	count = max(0, count)

	s.mu.Lock()
	salon := s.salonLocked(salonID)
	if salon == nil {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrSalonNotFound, salonID)
	}
	if !salon.ObservedAt.IsZero() && salon.ObservedCount == count {
		s.mu.Unlock()
		return false, nil
	}
	now := s.now()
	salon.ObservedCount = count
	salon.ObservedAt = now
	salon.LastActivityAt = now
	s.mu.Unlock()

	s.changed()
	return true, nil
}

// ReapIdle applies mode to every active salon idle for longer than threshold
// and returns the affected ids.
func (s *Store) ReapIdle(now time.Time, threshold time.Duration, mode ReapMode) []string {
	s.mu.Lock()
	var reaped []string
	for _, salon := range s.salons {
		if salon.IsActive && now.Sub(salon.LastActivityAt) > threshold {
			reaped = append(reaped, salon.ID)
		}
	}
	for _, id := range reaped {
		switch mode {
		case ReapRemove:
			s.removeSalonLocked(id)
		default:
			s.salonLocked(id).IsActive = false
		}
	}
	s.mu.Unlock()

	if len(reaped) > 0 {
		s.changed()
	}
	return reaped
}

func (s *Store) Salon(id string) (Salon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if salon := s.salonLocked(id); salon != nil {
		return *salon, true
	}
	return Salon{}, false
}

func (s *Store) Group(id string) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g := s.groupLocked(id); g != nil {
		return *g, true
	}
	return Group{}, false
}

func (s *Store) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.userLocked(id); u != nil {
		return *u, true
	}
	return User{}, false
}

func (s *Store) SalonParticipants(salonID string) []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Participant, 0)
	for _, p := range s.participants {
		if p.SalonID == salonID {
			result = append(result, *p)
		}
	}
	return result
}

func (s *Store) Salons() []Salon {
	return s.filterSalons(func(*Salon) bool { return true })
}

func (s *Store) ActiveSalons() []Salon {
	return s.filterSalons(func(salon *Salon) bool { return salon.IsActive })
}

func (s *Store) SalonsByGroup(groupID string) []Salon {
	return s.filterSalons(func(salon *Salon) bool { return salon.GroupID == groupID })
}

func (s *Store) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.groups)
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) filterSalons(keep func(*Salon) bool) []Salon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Salon, 0, len(s.salons))
	for _, salon := range s.salons {
		if keep(salon) {
			result = append(result, *salon)
		}
	}
	return result
}

func (s *Store) salonLocked(id string) *Salon {
	for _, salon := range s.salons {
		if salon.ID == id {
			return salon
		}
	}
	return nil
}

func (s *Store) participantLocked(id string) *Participant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) groupLocked(id string) *Group {
	for i := range s.groups {
		if s.groups[i].ID == id {
			return &s.groups[i]
		}
	}
	return nil
}

func (s *Store) userLocked(id string) *User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}
