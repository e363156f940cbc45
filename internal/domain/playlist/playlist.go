// Package playlist provides the Playlist domain entity and its variants.
package playlist

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/domain/track"
)

var (
	// ErrEmptyPlaylist is returned when a cursor operation runs without a playback order.
	ErrEmptyPlaylist = errors.New("empty playlist playback")
	// ErrUnknownKind is returned when a playlist kind cannot be parsed.
	ErrUnknownKind = errors.New("unknown playlist kind")
)

// Kind identifies the playlist variant.
type Kind int

const (
	KindRandom    Kind = iota // Fresh permutation on every play
	KindBuilt                 // User-assembled, navigable with a cursor
	KindGenre                 // Generated from a genre within a duration budget
	KindFavorites             // Generated from the favorite genre
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindBuilt:
		return "built"
	case KindGenre:
		return "genre"
	case KindFavorites:
		return "favorites"
	default:
		return "unknown"
	}
}

// ParseKind parses a playlist kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return KindRandom, nil
	case "built":
		return KindBuilt, nil
	case "genre":
		return KindGenre, nil
	case "favorites":
		return KindFavorites, nil
	default:
		return KindRandom, errors.Mark(errors.Newf("unknown playlist kind %q", s), ErrUnknownKind)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Playlist is the common behavior of every playlist variant.
// The set of variants is closed: Random, Built, Genre and Favorites.
type Playlist interface {
	Name() string
	// Owner returns the email of the owning user.
	Owner() string
	CreatedAt() time.Time
	IsPublic() bool
	SetPublic(public bool)
	Kind() Kind
	// Tracks returns a copy of the member tracks in insertion order.
	Tracks() []track.Track
	Len() int
	AddTrack(t track.Track)
	// RemoveTrack removes every member track with the given name.
	RemoveTrack(name string) bool
	// TotalDuration returns the summed member length in seconds.
	TotalDuration() int
	// Play plays every member track in presentation order and returns
	// one presentation per track.
	Play() []string
	Clone() Playlist
	Equal(other Playlist) bool

	base() *Base
}

// Base holds the fields shared by every variant.
type Base struct {
	name      string
	owner     string
	createdAt time.Time
	public    bool
	tracks    []track.Track
}

func newBase(name, owner string, createdAt time.Time, public bool, tracks []track.Track) Base {
	return Base{
		name:      name,
		owner:     owner,
		createdAt: createdAt,
		public:    public,
		tracks:    track.CloneAll(tracks),
	}
}

func (b *Base) Name() string          { return b.name }
func (b *Base) Owner() string         { return b.owner }
func (b *Base) CreatedAt() time.Time  { return b.createdAt }
func (b *Base) IsPublic() bool        { return b.public }
func (b *Base) SetPublic(public bool) { b.public = public }
func (b *Base) Len() int              { return len(b.tracks) }
func (b *Base) base() *Base           { return b }

// Tracks returns a copy of the member tracks.
func (b *Base) Tracks() []track.Track {
	return track.CloneAll(b.tracks)
}

// AddTrack appends a copy of t.
func (b *Base) AddTrack(t track.Track) {
	b.tracks = append(b.tracks, t.Clone())
}

// RemoveTrack removes every member track named name.
func (b *Base) RemoveTrack(name string) bool {
	kept := make([]track.Track, 0, len(b.tracks))
	for _, t := range b.tracks {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(b.tracks)
	b.tracks = kept
	return removed
}

// TotalDuration returns the summed member length in seconds.
func (b *Base) TotalDuration() int {
	return track.TotalDuration(b.tracks)
}

// Play plays the members sequentially.
func (b *Base) Play() []string {
	out := make([]string, 0, len(b.tracks))
	for i := range b.tracks {
		out = append(out, b.tracks[i].Play())
	}
	return out
}

func (b *Base) clone() Base {
	c := *b
	c.tracks = track.CloneAll(b.tracks)
	return c
}

func (b *Base) equal(o *Base) bool {
	if b.name != o.name || b.owner != o.owner || b.public != o.public || !b.createdAt.Equal(o.createdAt) {
		return false
	}
	return tracksEqual(b.tracks, o.tracks)
}

func tracksEqual(a, b []track.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
