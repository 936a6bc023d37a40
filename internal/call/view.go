package call

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tile is one participant cell of the call grid.
type Tile struct {
	Identity     string
	Name         string
	Initials     string
	IsLocal      bool
	AudioEnabled bool
	VideoEnabled bool
	ShowVideo    bool
}

type Controls struct {
	AudioEnabled bool
	VideoEnabled bool
	CanToggle    bool
}

// Reconciled is the view state derived from the provider graph.
type Reconciled struct {
	Tiles        []Tile
	LocalAudio   bool
	LocalVideo   bool
	RemoteCount  int
	Participants int
}

// Initials takes the first letter of up to two words, uppercased.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// DisplayName falls back to the identity, then to "Unknown".
func DisplayName(p Participant) string {
	if name := strings.TrimSpace(p.Name()); name != "" {
		return name
	}
	if p.Identity() != "" {
		return p.Identity()
	}
	return "Unknown"
}

func firstWithTrack(pubs []TrackPublication) TrackPublication {
	for _, pub := range pubs {
		if pub.HasTrack() {
			return pub
		}
	}
	return nil
}

func firstLive(pubs []TrackPublication) TrackPublication {
	for _, pub := range pubs {
		if pub.HasTrack() && !pub.IsMuted() {
			return pub
		}
	}
	return firstWithTrack(pubs)
}

func isLive(pub TrackPublication) bool {
	return pub != nil && pub.HasTrack() && !pub.IsMuted()
}

// TileFor derives a tile from the current publications of p. A local camera
// counts as on as soon as its track exists.
func TileFor(p Participant, isLocal bool) Tile {
	name := DisplayName(p)
	tile := Tile{
		Identity: p.Identity(),
		Name:     name,
		Initials: Initials(name),
		IsLocal:  isLocal,
	}

	videoPubs := p.TrackPublications(TrackVideo)
	audioPubs := p.TrackPublications(TrackAudio)

	if isLocal {
		tile.VideoEnabled = firstWithTrack(videoPubs) != nil
		audio := firstWithTrack(audioPubs)
		if audio == nil && len(audioPubs) > 0 {
			audio = audioPubs[0]
		}
		tile.AudioEnabled = isLive(audio)
	} else {
		tile.VideoEnabled = isLive(firstLive(videoPubs))
		tile.AudioEnabled = isLive(firstLive(audioPubs))
	}
	tile.ShowVideo = tile.VideoEnabled
	return tile
}

// LocalAudioEnabled reports whether the local microphone is published and
// unmuted.
func LocalAudioEnabled(local Participant) bool {
	return isLive(firstWithTrack(local.TrackPublications(TrackAudio)))
}

func LocalVideoEnabled(local Participant) bool {
	for _, pub := range local.TrackPublications(TrackVideo) {
		if isLive(pub) {
			return true
		}
	}
	return false
}

// Reconcile rebuilds the view from the provider graph. It holds no state and
// calling it twice on the same graph yields the same result.
func Reconcile(local Participant, remotes []Participant) Reconciled {
	r := Reconciled{
		Tiles:       make([]Tile, 0, len(remotes)+1),
		RemoteCount: len(remotes),
	}
	if local != nil {
		r.Tiles = append(r.Tiles, TileFor(local, true))
		r.LocalAudio = LocalAudioEnabled(local)
		r.LocalVideo = LocalVideoEnabled(local)
	}
	for _, p := range remotes {
		r.Tiles = append(r.Tiles, TileFor(p, false))
	}
	r.Participants = len(r.Tiles)
	return r
}

// GridColumns is the column count of the call grid for n tiles.
func GridColumns(n int) int {
	if n <= 1 {
		return 1
	}
	return 2
}
