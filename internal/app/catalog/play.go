package catalog

import (
	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/track"
)

// PlayResult is the outcome of one recorded play.
type PlayResult struct {
	Track         string `json:"track"`
	Presentation  string `json:"presentation"`
	PointsAwarded int    `json:"points_awarded"`
	Points        int    `json:"points"`
}

// RecordPlay plays a track for a user. The user's plan awards points based on
// whether the user heard the track before, a play event is appended, and the
// track's play counter is incremented.
func (c *Catalog) RecordPlay(email, trackName string) (PlayResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recordPlayLocked(email, trackName)
}

func (c *Catalog) recordPlayLocked(email, trackName string) (PlayResult, error) {
	u, err := c.userLocked(email)
	if err != nil {
		return PlayResult{}, err
	}
	i, err := c.trackIndexLocked(trackName)
	if err != nil {
		return PlayResult{}, err
	}

	heard := c.history.HeardBefore(email, trackName)
	awarded := u.AwardPoints(heard)
	c.history.Append(history.NewEvent(email, c.tracks[i], c.now()))
	presentation := c.tracks[i].Play()

	return PlayResult{
		Track:         trackName,
		Presentation:  presentation,
		PointsAwarded: awarded,
		Points:        u.Points,
	}, nil
}

// History returns every play event in insertion order.
func (c *Catalog) History() []history.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.history.Events()
}

// FavoriteGenre returns the user's most played genre. ok is false without plays.
func (c *Catalog) FavoriteGenre(email string) (genre track.Genre, ok bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.userLocked(email); err != nil {
		return "", false, err
	}
	genre, ok = c.engine.FavoriteGenre(email, c.history.ForUser(email))
	return genre, ok, nil
}
