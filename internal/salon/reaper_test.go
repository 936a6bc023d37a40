package salon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaper_Sweep(t *testing.T) {
	s, clock := newTestStore(t)
	now := clock.Now()

	idle61 := now.Add(-61 * time.Minute)
	idle59 := now.Add(-59 * time.Minute)
	_, err := s.UpdateSalon("salon1", SalonPatch{LastActivityAt: &idle61})
	require.NoError(t, err)
	_, err = s.UpdateSalon("salon2", SalonPatch{LastActivityAt: &idle59})
	require.NoError(t, err)

	r := NewReaper(NewReaperParams{Store: s, Logger: testLogger})
	assert.Equal(t, []string{"salon1"}, r.Sweep(now))

	salon1, ok := s.Salon("salon1")
	require.True(t, ok)
	assert.False(t, salon1.IsActive)
	salon2, _ := s.Salon("salon2")
	assert.True(t, salon2.IsActive)

	assert.Empty(t, r.Sweep(now), "inactive salons are not reaped twice")
}

func TestReaper_RemoveMode(t *testing.T) {
	s, clock := newTestStore(t)
	now := clock.Now()

	idle := now.Add(-2 * time.Hour)
	_, err := s.UpdateSalon("salon3", SalonPatch{LastActivityAt: &idle})
	require.NoError(t, err)

	r := NewReaper(NewReaperParams{Store: s, Mode: ReapRemove, Logger: testLogger})
	assert.Equal(t, []string{"salon3"}, r.Sweep(now))

	_, ok := s.Salon("salon3")
	assert.False(t, ok)
	assert.Empty(t, s.SalonParticipants("salon3"))
}

func TestReaper_StartStop(t *testing.T) {
	s, clock := newTestStore(t)

	idle := clock.Now().Add(-2 * time.Hour)
	_, err := s.UpdateSalon("salon1", SalonPatch{LastActivityAt: &idle})
	require.NoError(t, err)

	r := NewReaper(NewReaperParams{
		Store:     s,
		Interval:  10 * time.Millisecond,
		Threshold: time.Hour,
		Logger:    testLogger,
	})
	r.Start(context.Background())
	defer r.Stop()

	assert.Eventually(t, func() bool {
		salon, _ := s.Salon("salon1")
		return !salon.IsActive
	}, time.Second, 10*time.Millisecond)

	r.Stop()
	r.Stop()
}

func TestParseReapMode(t *testing.T) {
	assert.Equal(t, ReapRemove, ParseReapMode("remove"))
	assert.Equal(t, ReapDeactivate, ParseReapMode("deactivate"))
	assert.Equal(t, ReapDeactivate, ParseReapMode(""))
}
