package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", Initials("jane doe"))
	assert.Equal(t, "AB", Initials("Ann Bell Carter"))
	assert.Equal(t, "Ö", Initials("ödön"))
	assert.Equal(t, "", Initials("   "))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Bob", DisplayName(newFakeParticipant("bob-1", "Bob")))
	assert.Equal(t, "bob-1", DisplayName(newFakeParticipant("bob-1", " ")))
	assert.Equal(t, "Unknown", DisplayName(newFakeParticipant("", "")))
}

func TestTileFor(t *testing.T) {
	t.Run("local camera counts once the track exists", func(t *testing.T) {
		local := newFakeParticipant("me", "Me",
			&fakePub{kind: TrackVideo, hasTrack: true, muted: true},
			&fakePub{kind: TrackAudio, hasTrack: true},
		)
		tile := TileFor(local, true)
		assert.True(t, tile.VideoEnabled)
		assert.True(t, tile.ShowVideo)
		assert.True(t, tile.AudioEnabled)
	})

	t.Run("remote uses the first live track", func(t *testing.T) {
		p := newFakeParticipant("bob", "Bob",
			&fakePub{kind: TrackVideo, hasTrack: true, muted: true},
			&fakePub{kind: TrackVideo, hasTrack: true},
			&fakePub{kind: TrackAudio, hasTrack: false},
		)
		tile := TileFor(p, false)
		assert.True(t, tile.VideoEnabled)
		assert.False(t, tile.AudioEnabled)
		assert.False(t, tile.IsLocal)
	})

	t.Run("muted remote", func(t *testing.T) {
		p := newFakeParticipant("bob", "Bob", &fakePub{kind: TrackAudio, hasTrack: true, muted: true})
		assert.False(t, TileFor(p, false).AudioEnabled)
	})
}

func TestReconcile(t *testing.T) {
	local := newFakeParticipant("me", "Me", &fakePub{kind: TrackAudio, hasTrack: true})
	remotes := []Participant{
		newFakeParticipant("bob", "Bob"),
		newFakeParticipant("eve", "Eve", &fakePub{kind: TrackVideo, hasTrack: true}),
	}

	first := Reconcile(local, remotes)
	second := Reconcile(local, remotes)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.RemoteCount)
	assert.Equal(t, 3, first.Participants)
	assert.True(t, first.LocalAudio)
	assert.False(t, first.LocalVideo)
	assert.True(t, first.Tiles[0].IsLocal)

	empty := Reconcile(nil, nil)
	assert.Empty(t, empty.Tiles)
	assert.Zero(t, empty.Participants)
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, GridColumns(0))
	assert.Equal(t, 1, GridColumns(1))
	assert.Equal(t, 2, GridColumns(2))
	assert.Equal(t, 2, GridColumns(7))
}
