package salon

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{now: time.UnixMilli(1700000000000)}
	s := NewStore(testLogger, WithClock(clock.Now))
	s.Seed()
	return s, clock
}

func assertCountInvariant(t *testing.T, s *Store) {
	t.Helper()
	for _, salon := range s.Salons() {
		assert.Equal(t, len(s.SalonParticipants(salon.ID)), salon.ParticipantCount, salon.ID)
		assert.GreaterOrEqual(t, salon.ParticipantCount, 0)
	}
}

func TestSeed(t *testing.T) {
	s, clock := newTestStore(t)

	assert.Len(t, s.Users(), 6)
	assert.Len(t, s.Groups(), 4)
	require.Len(t, s.Salons(), 3)

	user, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "user1", user.ID)

	salon1, ok := s.Salon("salon1")
	require.True(t, ok)
	assert.Equal(t, 4, salon1.ParticipantCount)
	assert.Equal(t, clock.Now().Add(-5*time.Minute), salon1.LastActivityAt)

	salon2, _ := s.Salon("salon2")
	for _, p := range s.SalonParticipants(salon2.ID) {
		assert.False(t, p.VideoEnabled, "audio salon participant %s has video", p.ID)
	}
	assertCountInvariant(t, s)

	again, _ := newTestStore(t)
	assert.Equal(t, s.SalonParticipants("salon3"), again.SalonParticipants("salon3"))
}

func TestStore_ParticipantCountInvariant(t *testing.T) {
	s, clock := newTestStore(t)

	clock.Advance(time.Minute)
	added, err := s.AddParticipant(Participant{SalonID: "salon1", UserID: "user6", UserName: "Diana Prince"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, clock.Now(), added.JoinedAt)

	salon, _ := s.Salon("salon1")
	assert.Equal(t, 5, salon.ParticipantCount)
	assert.Equal(t, clock.Now(), salon.LastActivityAt)
	assertCountInvariant(t, s)

	clock.Advance(time.Minute)
	require.NoError(t, s.RemoveParticipant(added.ID))
	salon, _ = s.Salon("salon1")
	assert.Equal(t, 4, salon.ParticipantCount)
	assert.Equal(t, clock.Now(), salon.LastActivityAt)

	for _, p := range s.SalonParticipants("salon1") {
		require.NoError(t, s.RemoveParticipant(p.ID))
	}
	salon, _ = s.Salon("salon1")
	assert.Zero(t, salon.ParticipantCount)
	assertCountInvariant(t, s)

	assert.ErrorIs(t, s.RemoveParticipant(added.ID), ErrParticipantNotFound)
	salon, _ = s.Salon("salon1")
	assert.Zero(t, salon.ParticipantCount)
}

func TestStore_AddParticipantErrors(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddParticipant(Participant{SalonID: "nope"})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = s.AddParticipant(Participant{ID: "participant-salon1-user1", SalonID: "salon1"})
	assert.ErrorIs(t, err, ErrParticipantExists)
	assertCountInvariant(t, s)
}

func TestStore_CreateSalon(t *testing.T) {
	s, clock := newTestStore(t)

	created, err := s.CreateSalon("group4")
	require.NoError(t, err)
	assert.Equal(t, "salon-1700000000000", created.ID)
	assert.Equal(t, "Study Session", created.Name)
	assert.Equal(t, SalonTypeVideo, created.Type)
	assert.True(t, created.IsActive)
	assert.Zero(t, created.ParticipantCount)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Equal(t, "salon-salon-1700000000000", created.RoomName())

	second, err := s.CreateSalon("group4")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)

	assert.Len(t, s.SalonsByGroup("group4"), 2)

	_, err = s.CreateSalon("group9")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestStore_AddSalon(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.AddSalon(Salon{ID: "x", GroupID: "group1", Name: "X", ParticipantCount: 9}))
	x, ok := s.Salon("x")
	require.True(t, ok)
	assert.Zero(t, x.ParticipantCount)
	assert.Equal(t, SalonTypeVideo, x.Type)

	assert.ErrorIs(t, s.AddSalon(Salon{ID: "x"}), ErrSalonExists)
	assert.ErrorIs(t, s.AddSalon(Salon{}), ErrSalonIDIsEmpty)
	assert.ErrorIs(t, s.AddSalon(Salon{ID: "y", Type: "radio"}), ErrInvalidSalonType)
}

func TestStore_UpdateSalon(t *testing.T) {
	s, _ := newTestStore(t)

	name := "Algebra"
	audio := SalonTypeAudio
	updated, err := s.UpdateSalon("salon1", SalonPatch{Name: &name, Type: &audio})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", updated.Name)
	assert.Equal(t, SalonTypeAudio, updated.Type)
	assert.Equal(t, 4, updated.ParticipantCount)

	bad := SalonType("radio")
	_, err = s.UpdateSalon("salon1", SalonPatch{Type: &bad})
	assert.ErrorIs(t, err, ErrInvalidSalonType)

	_, err = s.UpdateSalon("nope", SalonPatch{Name: &name})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestStore_RemoveSalonCascades(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.RemoveSalon("salon2"))
	_, ok := s.Salon("salon2")
	assert.False(t, ok)
	assert.Empty(t, s.SalonParticipants("salon2"))
	assert.ErrorIs(t, s.RemoveSalon("salon2"), ErrSalonNotFound)
	assertCountInvariant(t, s)
}

func TestStore_UpdateParticipant(t *testing.T) {
	s, _ := newTestStore(t)

	off := false
	p, err := s.UpdateParticipant("participant-salon1-user1", ParticipantPatch{AudioEnabled: &off, VideoEnabled: &off})
	require.NoError(t, err)
	assert.False(t, p.AudioEnabled)
	assert.False(t, p.VideoEnabled)

	_, err = s.UpdateParticipant("nope", ParticipantPatch{AudioEnabled: &off})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestStore_ObserveParticipantCount(t *testing.T) {
	s, clock := newTestStore(t)

	var changes int
	s.OnChange(func() { changes++ })

	clock.Advance(time.Minute)
	changed, err := s.ObserveParticipantCount("salon1", 2)
	require.NoError(t, err)
	assert.True(t, changed)

	salon, _ := s.Salon("salon1")
	assert.Equal(t, 2, salon.DisplayCount())
	assert.Equal(t, 4, salon.ParticipantCount)
	assert.Equal(t, clock.Now(), salon.LastActivityAt)

	clock.Advance(time.Minute)
	changed, err = s.ObserveParticipantCount("salon1", 2)
	require.NoError(t, err)
	assert.False(t, changed)
	salon, _ = s.Salon("salon1")
	assert.Equal(t, clock.Now().Add(-time.Minute), salon.LastActivityAt)
	assert.Equal(t, 1, changes)

	changed, err = s.ObserveParticipantCount("salon1", -3)
	require.NoError(t, err)
	assert.True(t, changed)
	salon, _ = s.Salon("salon1")
	assert.Zero(t, salon.DisplayCount())

	_, err = s.ObserveParticipantCount("nope", 1)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestStore_CurrentUser(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SetCurrentUser("user3"))
	user, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Bob Johnson", user.Name)

	assert.ErrorIs(t, s.SetCurrentUser("ghost"), ErrUserNotFound)

	empty := NewStore(testLogger)
	_, ok = empty.CurrentUser()
	assert.False(t, ok)
}

func TestStore_ActiveSalons(t *testing.T) {
	s, _ := newTestStore(t)

	inactive := false
	_, err := s.UpdateSalon("salon3", SalonPatch{IsActive: &inactive})
	require.NoError(t, err)

	var ids []string
	for _, salon := range s.ActiveSalons() {
		ids = append(ids, salon.ID)
	}
	assert.Equal(t, []string{"salon1", "salon2"}, ids)
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.AddParticipant(Participant{SalonID: "salon1"})
			if err == nil {
				_ = s.RemoveParticipant(p.ID)
			}
		}()
	}
	wg.Wait()

	salon, _ := s.Salon("salon1")
	assert.Equal(t, 4, salon.ParticipantCount)
	assertCountInvariant(t, s)
}
