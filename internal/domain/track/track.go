// Package track provides the Track domain entity and its variants.
package track

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind identifies the track variant.
type Kind int

const (
	KindStandard   Kind = iota // Plain audio track
	KindExplicit               // Track with explicit content
	KindMultimedia             // Track with an attached video
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindExplicit:
		return "explicit"
	case KindMultimedia:
		return "multimedia"
	default:
		return "unknown"
	}
}

// ExplicitContent holds the extra fields of an explicit track.
type ExplicitContent struct {
	WarningReason string `json:"warning_reason"`
	MinimumAge    int    `json:"minimum_age"`
}

// MultimediaContent holds the extra fields of a multimedia track.
type MultimediaContent struct {
	VideoName   string `json:"video_name"`
	VideoFormat string `json:"video_format"`
}

// Track represents a playable catalog item.
// At most one of Explicit and Multimedia is set; that payload decides the variant.
type Track struct {
	Name        string             `json:"name"`
	Artist      Artist             `json:"artist"`
	Publisher   string             `json:"publisher"`
	Lyrics      []string           `json:"lyrics"`
	Composition []string           `json:"composition"`
	Genre       Genre              `json:"genre"`
	DurationSec int                `json:"duration_sec"`
	PlayCount   int                `json:"play_count"`
	Explicit    *ExplicitContent   `json:"explicit,omitempty"`
	Multimedia  *MultimediaContent `json:"multimedia,omitempty"`
}

// New creates a standard track with a zero play count.
func New(name string, artist Artist, publisher string, lyrics, composition []string, genre Genre, durationSec int) Track {
	return Track{
		Name:        name,
		Artist:      artist,
		Publisher:   publisher,
		Lyrics:      slices.Clone(lyrics),
		Composition: slices.Clone(composition),
		Genre:       genre,
		DurationSec: durationSec,
	}
}

// NewExplicit creates an explicit track.
func NewExplicit(name string, artist Artist, publisher string, lyrics, composition []string, genre Genre, durationSec int, warningReason string, minimumAge int) Track {
	t := New(name, artist, publisher, lyrics, composition, genre, durationSec)
	t.Explicit = &ExplicitContent{WarningReason: warningReason, MinimumAge: minimumAge}
	return t
}

// NewMultimedia creates a multimedia track.
func NewMultimedia(name string, artist Artist, publisher string, lyrics, composition []string, genre Genre, durationSec int, videoName, videoFormat string) Track {
	t := New(name, artist, publisher, lyrics, composition, genre, durationSec)
	t.Multimedia = &MultimediaContent{VideoName: videoName, VideoFormat: videoFormat}
	return t
}

// Kind returns the variant of the track.
func (t *Track) Kind() Kind {
	switch {
	case t.Explicit != nil:
		return KindExplicit
	case t.Multimedia != nil:
		return KindMultimedia
	default:
		return KindStandard
	}
}

// IsExplicit reports whether the track is the explicit variant.
func (t *Track) IsExplicit() bool {
	return t.Kind() == KindExplicit
}

// Duration returns the track length as a time.Duration.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationSec) * time.Second
}

// Play increments the play counter and returns the presentation text.
func (t *Track) Play() string {
	t.PlayCount++

	var sb strings.Builder
	switch t.Kind() {
	case KindExplicit:
		fmt.Fprintf(&sb, "Explicit track - Warning: %s - Minimum age: %d\n", t.Explicit.WarningReason, t.Explicit.MinimumAge)
	case KindMultimedia:
		fmt.Fprintf(&sb, "Multimedia track - Video: %s (%s)\n", t.Multimedia.VideoName, t.Multimedia.VideoFormat)
	case KindStandard:
	}
	fmt.Fprintf(&sb, "Now playing: %s - %s\n", t.Name, t.Artist.Name)
	sb.WriteString("Lyrics:\n")
	for _, line := range t.Lyrics {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	c := t
	c.Lyrics = slices.Clone(t.Lyrics)
	c.Composition = slices.Clone(t.Composition)
	if t.Explicit != nil {
		e := *t.Explicit
		c.Explicit = &e
	}
	if t.Multimedia != nil {
		m := *t.Multimedia
		c.Multimedia = &m
	}
	return c
}

// Equal reports structural equality, play count included.
// A track observed before and after a play is therefore not equal to itself.
func (t Track) Equal(o Track) bool {
	if t.Name != o.Name ||
		t.Artist != o.Artist ||
		t.Publisher != o.Publisher ||
		t.Genre != o.Genre ||
		t.DurationSec != o.DurationSec ||
		t.PlayCount != o.PlayCount {
		return false
	}
	if !slices.Equal(t.Lyrics, o.Lyrics) || !slices.Equal(t.Composition, o.Composition) {
		return false
	}
	if t.Kind() != o.Kind() {
		return false
	}
	switch t.Kind() {
	case KindExplicit:
		return *t.Explicit == *o.Explicit
	case KindMultimedia:
		return *t.Multimedia == *o.Multimedia
	default:
		return true
	}
}

// CloneAll deep-copies a slice of tracks.
func CloneAll(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

// TotalDuration sums the durations of the given tracks in seconds.
func TotalDuration(tracks []Track) int {
	var total int
	for _, t := range tracks {
		total += t.DurationSec
	}
	return total
}
