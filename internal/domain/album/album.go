// Package album provides the Album domain entity.
package album

import (
	"time"

	"github.com/osa030/spotifum/internal/domain/track"
)

// Album is a named, dated collection of tracks by one artist.
type Album struct {
	Name        string        `json:"name"`
	ReleaseDate time.Time     `json:"release_date"`
	Artist      track.Artist  `json:"artist"`
	Tracks      []track.Track `json:"tracks"`
}

// New creates an album with a copy of the given tracks.
func New(name string, releaseDate time.Time, artist track.Artist, tracks []track.Track) Album {
	return Album{
		Name:        name,
		ReleaseDate: releaseDate,
		Artist:      artist,
		Tracks:      track.CloneAll(tracks),
	}
}

// TotalDuration returns the summed track length in seconds.
func (a *Album) TotalDuration() int {
	return track.TotalDuration(a.Tracks)
}

// AddTrack appends a copy of t.
func (a *Album) AddTrack(t track.Track) {
	a.Tracks = append(a.Tracks, t.Clone())
}

// RemoveTrack removes every track named name and reports whether any was removed.
func (a *Album) RemoveTrack(name string) bool {
	kept := a.Tracks[:0]
	removed := false
	for _, t := range a.Tracks {
		if t.Name == name {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	a.Tracks = kept
	return removed
}

// Clone returns a deep copy of the album.
func (a Album) Clone() Album {
	c := a
	c.Tracks = track.CloneAll(a.Tracks)
	return c
}

// Equal reports structural equality.
func (a Album) Equal(o Album) bool {
	if a.Name != o.Name || !a.ReleaseDate.Equal(o.ReleaseDate) || a.Artist != o.Artist {
		return false
	}
	if len(a.Tracks) != len(o.Tracks) {
		return false
	}
	for i := range a.Tracks {
		if !a.Tracks[i].Equal(o.Tracks[i]) {
			return false
		}
	}
	return true
}
