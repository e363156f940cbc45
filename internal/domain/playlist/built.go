package playlist

import (
	"math/rand/v2"
	"time"

	"github.com/osa030/spotifum/internal/domain/track"
)

// Built is a user-assembled playlist with a playback cursor.
//
// The cursor runs over order, a snapshot of the members taken by the last
// ActivateShuffle or DeactivateShuffle call. A nil order means no snapshot was
// taken yet and every cursor operation fails with ErrEmptyPlaylist.
type Built struct {
	Base
	index    int
	shuffled bool
	order    []track.Track
}

// NewBuilt creates a built playlist in sequential mode with no playback order.
func NewBuilt(name, owner string, createdAt time.Time, public bool, tracks []track.Track) *Built {
	return &Built{Base: newBase(name, owner, createdAt, public, tracks)}
}

// Kind implements Playlist.
func (p *Built) Kind() Kind { return KindBuilt }

// Shuffled reports whether the playlist is in shuffled mode.
func (p *Built) Shuffled() bool { return p.shuffled }

// Index returns the cursor position in the playback order.
func (p *Built) Index() int { return p.index }

// PlaybackOrder returns a copy of the playback order, nil when unset.
func (p *Built) PlaybackOrder() []track.Track {
	return track.CloneAll(p.order)
}

// ActivateShuffle snapshots the members in a random permutation and rewinds the cursor.
func (p *Built) ActivateShuffle() {
	order := track.CloneAll(p.tracks)
	if order == nil {
		order = []track.Track{}
	}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	p.order = order
	p.index = 0
	p.shuffled = true
}

// DeactivateShuffle snapshots the members in insertion order and rewinds the cursor.
func (p *Built) DeactivateShuffle() {
	order := track.CloneAll(p.tracks)
	if order == nil {
		order = []track.Track{}
	}
	p.order = order
	p.index = 0
	p.shuffled = false
}

// Current returns a copy of the track under the cursor.
func (p *Built) Current() (track.Track, error) {
	if len(p.order) == 0 {
		return track.Track{}, ErrEmptyPlaylist
	}
	return p.order[p.index].Clone(), nil
}

// PlayCurrent plays the track under the cursor.
func (p *Built) PlayCurrent() (string, error) {
	if len(p.order) == 0 {
		return "", ErrEmptyPlaylist
	}
	return p.order[p.index].Play(), nil
}

// Seek puts the cursor at index of the playback order. It reports false and
// leaves the cursor alone when index is out of range.
func (p *Built) Seek(index int) bool {
	if index < 0 || index >= len(p.order) {
		return false
	}
	p.index = index
	return true
}

// Advance moves the cursor forward, wrapping to the start, and plays the new current track.
func (p *Built) Advance() (string, error) {
	if len(p.order) == 0 {
		return "", ErrEmptyPlaylist
	}
	p.index = (p.index + 1) % len(p.order)
	return p.PlayCurrent()
}

// Retreat moves the cursor backward, wrapping to the end, and plays the new current track.
func (p *Built) Retreat() (string, error) {
	if len(p.order) == 0 {
		return "", ErrEmptyPlaylist
	}
	p.index = (p.index - 1 + len(p.order)) % len(p.order)
	return p.PlayCurrent()
}

// Clone implements Playlist. The cursor and playback order are copied too.
func (p *Built) Clone() Playlist {
	return &Built{
		Base:     p.clone(),
		index:    p.index,
		shuffled: p.shuffled,
		order:    track.CloneAll(p.order),
	}
}

// Equal implements Playlist. Cursor state takes part in the comparison.
func (p *Built) Equal(other Playlist) bool {
	o, ok := other.(*Built)
	if !ok || p.index != o.index || p.shuffled != o.shuffled || (p.order == nil) != (o.order == nil) {
		return false
	}
	return tracksEqual(p.order, o.order) && p.equal(&o.Base)
}
