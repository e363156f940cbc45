package catalog

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
)

// GenerateFavoritesPlaylist builds a public playlist of every track of the
// user's favorite genre, stores it and adds it to the user's library.
func (c *Catalog) GenerateFavoritesPlaylist(email, name string) (playlist.Playlist, error) {
	return c.generate(email, name, func(events []history.Event, tracks []track.Track) (playlist.Playlist, error) {
		return c.engine.GenerateFavorites(name, email, events, tracks)
	})
}

// GenerateGenrePlaylist builds a public playlist of favorite genre tracks fitting
// in maxSeconds, stores it and adds it to the user's library.
func (c *Catalog) GenerateGenrePlaylist(email, name string, maxSeconds int) (playlist.Playlist, error) {
	if maxSeconds < 0 {
		return nil, errors.Mark(errors.Newf("playlist %q: negative duration %d", name, maxSeconds), ErrInvalidArgument)
	}
	return c.generate(email, name, func(events []history.Event, tracks []track.Track) (playlist.Playlist, error) {
		return c.engine.GenerateByGenreAndDuration(name, email, events, tracks, maxSeconds)
	})
}

// GenerateExplicitPlaylist builds a public playlist of the favorite genre's
// explicit tracks, stores it and adds it to the user's library.
func (c *Catalog) GenerateExplicitPlaylist(email, name string) (playlist.Playlist, error) {
	return c.generate(email, name, func(events []history.Event, tracks []track.Track) (playlist.Playlist, error) {
		return c.engine.GenerateExplicitFavorites(name, email, events, tracks)
	})
}

func (c *Catalog) generate(email, name string, build func([]history.Event, []track.Track) (playlist.Playlist, error)) (playlist.Playlist, error) {
	if name == "" {
		return nil, errors.Mark(errors.New("playlist name is required"), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	if !u.Plan.CanAccessFavorites() {
		return nil, denied("plan %s of %q does not allow favorite playlists", u.Plan, email)
	}
	if c.playlistNameTakenLocked(name) {
		return nil, exists(ErrPlaylistExists, "playlist", name)
	}

	p, err := build(c.history.ForUser(email), c.tracks)
	if err != nil {
		return nil, err
	}
	c.playlists = append(c.playlists, p)
	u.Library.AddPlaylist(p)

	zlog.Debug().Msgf("playlist generated: name=%s owner=%s kind=%s tracks=%d", name, email, p.Kind(), p.Len())
	return p.Clone(), nil
}
