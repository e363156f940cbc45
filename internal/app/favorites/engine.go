// Package favorites generates playlists from a user's listening history.
package favorites

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
)

// ErrNoPlaysYet is returned when the user has no plays to infer a favorite genre from.
var ErrNoPlaysYet = errors.New("no plays yet to infer a favorite genre")

// Engine generates favorite playlists. It keeps no state between calls.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for playlist creation dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FavoriteGenre returns the genre the user played most. Ties go to the genre
// first played in history order. ok is false when the user has no plays.
func (e *Engine) FavoriteGenre(email string, events []history.Event) (genre track.Genre, ok bool) {
	counts := make(map[track.Genre]int)
	var seen []track.Genre
	for _, ev := range events {
		if ev.UserEmail != email {
			continue
		}
		g := ev.Track.Genre
		if _, found := counts[g]; !found {
			seen = append(seen, g)
		}
		counts[g]++
	}
	best := 0
	for _, g := range seen {
		if counts[g] > best {
			genre, best = g, counts[g]
		}
	}
	return genre, best > 0
}

func (e *Engine) favorite(email string, events []history.Event) (track.Genre, error) {
	g, ok := e.FavoriteGenre(email, events)
	if !ok {
		return "", errors.Mark(errors.Newf("user %q has no plays yet", email), ErrNoPlaysYet)
	}
	return g, nil
}

// GenerateFavorites collects every catalog track of the favorite genre, in
// catalog order, into a public playlist owned by the user.
func (e *Engine) GenerateFavorites(name, email string, events []history.Event, catalog []track.Track) (*playlist.Favorites, error) {
	g, err := e.favorite(email, events)
	if err != nil {
		return nil, err
	}
	var selected []track.Track
	for _, t := range catalog {
		if t.Genre == g {
			selected = append(selected, t)
		}
	}
	return playlist.NewFavorites(name, email, e.now(), true, selected), nil
}

// GenerateByGenreAndDuration scans the catalog in order and keeps each favorite
// genre track that still fits in maxSeconds. A track that does not fit is
// skipped and the scan goes on. The playlist records the achieved duration.
func (e *Engine) GenerateByGenreAndDuration(name, email string, events []history.Event, catalog []track.Track, maxSeconds int) (*playlist.Genre, error) {
	g, err := e.favorite(email, events)
	if err != nil {
		return nil, err
	}
	var (
		selected []track.Track
		running  int
	)
	for _, t := range catalog {
		if t.Genre != g {
			continue
		}
		if running+t.DurationSec <= maxSeconds {
			selected = append(selected, t)
			running += t.DurationSec
		}
	}
	return playlist.NewGenre(name, email, e.now(), true, selected, g, running), nil
}

// GenerateExplicitFavorites is GenerateFavorites restricted to explicit tracks.
func (e *Engine) GenerateExplicitFavorites(name, email string, events []history.Event, catalog []track.Track) (*playlist.Favorites, error) {
	g, err := e.favorite(email, events)
	if err != nil {
		return nil, err
	}
	var selected []track.Track
	for _, t := range catalog {
		if t.Genre == g && t.IsExplicit() {
			selected = append(selected, t)
		}
	}
	return playlist.NewFavorites(name, email, e.now(), true, selected), nil
}
