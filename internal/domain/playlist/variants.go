package playlist

import (
	"math/rand/v2"
	"time"

	"github.com/osa030/spotifum/internal/domain/track"
)

// Random is a playlist replayed in a fresh random order on every Play.
type Random struct {
	Base
}

// NewRandom creates a random playlist.
func NewRandom(name, owner string, createdAt time.Time, public bool, tracks []track.Track) *Random {
	return &Random{Base: newBase(name, owner, createdAt, public, tracks)}
}

// Kind implements Playlist.
func (p *Random) Kind() Kind { return KindRandom }

// Play plays every member once in a newly drawn permutation.
// No order is kept between calls.
func (p *Random) Play() []string {
	out := make([]string, 0, len(p.tracks))
	for _, i := range rand.Perm(len(p.tracks)) {
		out = append(out, p.tracks[i].Play())
	}
	return out
}

// Order returns a copy of the members in a newly drawn permutation without playing them.
func (p *Random) Order() []track.Track {
	order := track.CloneAll(p.tracks)
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// Clone implements Playlist.
func (p *Random) Clone() Playlist {
	return &Random{Base: p.clone()}
}

// Equal implements Playlist.
func (p *Random) Equal(other Playlist) bool {
	o, ok := other.(*Random)
	return ok && p.equal(&o.Base)
}

// Genre is a generated playlist of one genre bounded by a duration budget.
type Genre struct {
	Base
	genre          track.Genre
	maxDurationSec int
}

// NewGenre creates a genre playlist. maxDurationSec records the achieved duration.
func NewGenre(name, owner string, createdAt time.Time, public bool, tracks []track.Track, genre track.Genre, maxDurationSec int) *Genre {
	return &Genre{
		Base:           newBase(name, owner, createdAt, public, tracks),
		genre:          genre,
		maxDurationSec: maxDurationSec,
	}
}

// Kind implements Playlist.
func (p *Genre) Kind() Kind { return KindGenre }

// Genre returns the genre the playlist was generated from.
func (p *Genre) Genre() track.Genre { return p.genre }

// MaxDuration returns the recorded duration in seconds.
func (p *Genre) MaxDuration() int { return p.maxDurationSec }

// Clone implements Playlist.
func (p *Genre) Clone() Playlist {
	return &Genre{Base: p.clone(), genre: p.genre, maxDurationSec: p.maxDurationSec}
}

// Equal implements Playlist.
func (p *Genre) Equal(other Playlist) bool {
	o, ok := other.(*Genre)
	return ok && p.genre == o.genre && p.maxDurationSec == o.maxDurationSec && p.equal(&o.Base)
}

// Favorites is a generated playlist gathering the favorite genre's tracks.
type Favorites struct {
	Base
}

// NewFavorites creates a favorites playlist.
func NewFavorites(name, owner string, createdAt time.Time, public bool, tracks []track.Track) *Favorites {
	return &Favorites{Base: newBase(name, owner, createdAt, public, tracks)}
}

// Kind implements Playlist.
func (p *Favorites) Kind() Kind { return KindFavorites }

// Clone implements Playlist.
func (p *Favorites) Clone() Playlist {
	return &Favorites{Base: p.clone()}
}

// Equal implements Playlist.
func (p *Favorites) Equal(other Playlist) bool {
	o, ok := other.(*Favorites)
	return ok && p.equal(&o.Base)
}
