// Package stats computes catalog-wide statistics from a catalog snapshot.
package stats

import (
	"time"

	"github.com/samber/lo"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

// Entry is a ranked key with its score.
type Entry struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Window bounds play events, both ends inclusive. A zero bound is open.
type Window struct {
	From time.Time
	To   time.Time
}

// Report gathers every statistic. A nil entry means there was nothing to rank.
type Report struct {
	MostPlayedTrack    *Entry `json:"most_played_track"`
	TopListener        *Entry `json:"top_listener"`
	MostListenedArtist *Entry `json:"most_listened_artist"`
	TopPointsUser      *Entry `json:"top_points_user"`
	MostPlayedGenre    *Entry `json:"most_played_genre"`
	PublicPlaylists    int    `json:"public_playlists"`
	TopPlaylistOwner   *Entry `json:"top_playlist_owner"`
}

// Compute builds a full report. The window only applies to TopListener.
func Compute(s catalog.State, w Window) Report {
	return Report{
		MostPlayedTrack:    MostPlayedTrack(s.Tracks),
		TopListener:        TopListener(s.History, w),
		MostListenedArtist: MostListenedArtist(s.Tracks),
		TopPointsUser:      TopPointsUser(s.Users),
		MostPlayedGenre:    MostPlayedGenre(s.Tracks),
		PublicPlaylists:    PublicPlaylists(s.Playlists),
		TopPlaylistOwner:   TopPlaylistOwner(s.Playlists),
	}
}

// MostPlayedTrack returns the track with the highest play counter.
func MostPlayedTrack(tracks []track.Track) *Entry {
	if len(tracks) == 0 {
		return nil
	}
	best := lo.MaxBy(tracks, func(a, b track.Track) bool { return a.PlayCount > b.PlayCount })
	return &Entry{Key: best.Name, Value: best.PlayCount}
}

// TopListener returns the user with the most play events inside the window.
func TopListener(events []history.Event, w Window) *Entry {
	inside := history.NewLog(events).Between(w.From, w.To)
	keys := lo.Map(inside, func(e history.Event, _ int) string { return e.UserEmail })
	return rank(keys, lo.CountValues(keys))
}

// MostListenedArtist returns the artist whose tracks add up to the most plays.
func MostListenedArtist(tracks []track.Track) *Entry {
	keys := lo.Map(tracks, func(t track.Track, _ int) string { return t.Artist.Name })
	sums := sumBy(tracks, func(t track.Track) string { return t.Artist.Name })
	return rank(keys, sums)
}

// MostPlayedGenre returns the genre whose tracks add up to the most plays.
func MostPlayedGenre(tracks []track.Track) *Entry {
	keys := lo.Map(tracks, func(t track.Track, _ int) string { return t.Genre.String() })
	sums := sumBy(tracks, func(t track.Track) string { return t.Genre.String() })
	return rank(keys, sums)
}

// TopPointsUser returns the user with the highest balance.
func TopPointsUser(users []user.Record) *Entry {
	if len(users) == 0 {
		return nil
	}
	best := lo.MaxBy(users, func(a, b user.Record) bool { return a.Points > b.Points })
	return &Entry{Key: best.Email, Value: best.Points}
}

// PublicPlaylists counts the public playlists.
func PublicPlaylists(playlists []playlist.Record) int {
	return lo.CountBy(playlists, func(p playlist.Record) bool { return p.Public })
}

// TopPlaylistOwner returns the user owning the most playlists.
func TopPlaylistOwner(playlists []playlist.Record) *Entry {
	keys := lo.Map(playlists, func(p playlist.Record, _ int) string { return p.Owner })
	return rank(keys, lo.CountValues(keys))
}

func sumBy(tracks []track.Track, key func(track.Track) string) map[string]int {
	groups := lo.GroupBy(tracks, key)
	return lo.MapValues(groups, func(ts []track.Track, _ string) int {
		return lo.SumBy(ts, func(t track.Track) int { return t.PlayCount })
	})
}

// rank picks the highest scored key. Ties go to the key seen first in keys.
func rank(keys []string, scores map[string]int) *Entry {
	ordered := lo.Uniq(keys)
	if len(ordered) == 0 {
		return nil
	}
	best := lo.MaxBy(ordered, func(a, b string) bool { return scores[a] > scores[b] })
	return &Entry{Key: best, Value: scores[best]}
}
