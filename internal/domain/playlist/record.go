package playlist

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/domain/track"
)

// Record is the plain data form of a playlist used for snapshots.
type Record struct {
	Kind           Kind          `json:"kind"`
	Name           string        `json:"name"`
	Owner          string        `json:"owner"`
	CreatedAt      time.Time     `json:"created_at"`
	Public         bool          `json:"public"`
	Tracks         []track.Track `json:"tracks"`
	Genre          track.Genre   `json:"genre,omitempty"`
	MaxDurationSec int           `json:"max_duration_sec,omitempty"`
	CurrentIndex   int           `json:"current_index,omitempty"`
	Shuffled       bool          `json:"shuffled,omitempty"`
	Order          []track.Track `json:"order"`
}

// ToRecord converts a playlist into its record form.
func ToRecord(p Playlist) Record {
	b := p.base()
	r := Record{
		Kind:      p.Kind(),
		Name:      b.name,
		Owner:     b.owner,
		CreatedAt: b.createdAt,
		Public:    b.public,
		Tracks:    track.CloneAll(b.tracks),
	}
	switch v := p.(type) {
	case *Genre:
		r.Genre = v.genre
		r.MaxDurationSec = v.maxDurationSec
	case *Built:
		r.CurrentIndex = v.index
		r.Shuffled = v.shuffled
		r.Order = track.CloneAll(v.order)
	}
	return r
}

// FromRecord rebuilds a playlist from its record form.
func FromRecord(r Record) (Playlist, error) {
	switch r.Kind {
	case KindRandom:
		return NewRandom(r.Name, r.Owner, r.CreatedAt, r.Public, r.Tracks), nil
	case KindGenre:
		return NewGenre(r.Name, r.Owner, r.CreatedAt, r.Public, r.Tracks, r.Genre, r.MaxDurationSec), nil
	case KindFavorites:
		return NewFavorites(r.Name, r.Owner, r.CreatedAt, r.Public, r.Tracks), nil
	case KindBuilt:
		p := NewBuilt(r.Name, r.Owner, r.CreatedAt, r.Public, r.Tracks)
		if r.Order != nil {
			if r.CurrentIndex < 0 || (len(r.Order) > 0 && r.CurrentIndex >= len(r.Order)) {
				return nil, errors.Newf("playlist %q: cursor %d out of range", r.Name, r.CurrentIndex)
			}
			p.order = track.CloneAll(r.Order)
			p.index = r.CurrentIndex
			p.shuffled = r.Shuffled
		}
		return p, nil
	default:
		return nil, errors.Mark(errors.Newf("playlist %q: unknown kind %d", r.Name, int(r.Kind)), ErrUnknownKind)
	}
}
