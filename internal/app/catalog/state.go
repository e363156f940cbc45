package catalog

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

// StateVersion is the current snapshot layout version.
const StateVersion = 1

// State is the plain data form of the whole catalog.
type State struct {
	Version   int               `json:"version"`
	Users     []user.Record     `json:"users"`
	Artists   []track.Artist    `json:"artists"`
	Tracks    []track.Track     `json:"tracks"`
	Albums    []album.Album     `json:"albums"`
	Playlists []playlist.Record `json:"playlists"`
	History   []history.Event   `json:"history"`
}

// State returns a snapshot of the catalog.
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := State{
		Version: StateVersion,
		Tracks:  track.CloneAll(c.tracks),
		History: c.history.Events(),
	}
	for _, email := range c.userOrder {
		s.Users = append(s.Users, user.ToRecord(c.users[email]))
	}
	for _, name := range c.artistOrder {
		s.Artists = append(s.Artists, c.artists[name])
	}
	for _, a := range c.albums {
		s.Albums = append(s.Albums, a.Clone())
	}
	for _, p := range c.playlists {
		s.Playlists = append(s.Playlists, playlist.ToRecord(p))
	}
	return s
}

// Restore replaces the whole catalog content with the snapshot.
// The catalog is left untouched when the snapshot is invalid.
func (c *Catalog) Restore(s State) error {
	if s.Version != StateVersion {
		return errors.Newf("unsupported snapshot version %d", s.Version)
	}

	users := make(map[string]*user.User, len(s.Users))
	userOrder := make([]string, 0, len(s.Users))
	for _, r := range s.Users {
		if _, dup := users[r.Email]; dup {
			return errors.Mark(errors.Newf("email %q already registered", r.Email), ErrEmailAlreadyRegistered)
		}
		u, err := user.FromRecord(r)
		if err != nil {
			return errors.Wrap(err, "failed to restore user")
		}
		users[r.Email] = u
		userOrder = append(userOrder, r.Email)
	}

	artists := make(map[string]track.Artist, len(s.Artists))
	artistOrder := make([]string, 0, len(s.Artists))
	for _, a := range s.Artists {
		if _, dup := artists[a.Name]; dup {
			return exists(ErrArtistExists, "artist", a.Name)
		}
		artists[a.Name] = a
		artistOrder = append(artistOrder, a.Name)
	}

	playlists := make([]playlist.Playlist, 0, len(s.Playlists))
	for _, r := range s.Playlists {
		p, err := playlist.FromRecord(r)
		if err != nil {
			return errors.Wrap(err, "failed to restore playlist")
		}
		playlists = append(playlists, p)
	}

	albums := make([]album.Album, 0, len(s.Albums))
	for _, a := range s.Albums {
		albums = append(albums, a.Clone())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.users = users
	c.userOrder = userOrder
	c.artists = artists
	c.artistOrder = artistOrder
	c.tracks = track.CloneAll(s.Tracks)
	c.albums = albums
	c.playlists = playlists
	c.history = history.NewLog(s.History)

	zlog.Debug().Msgf("catalog restored: users=%d tracks=%d playlists=%d events=%d",
		len(users), len(s.Tracks), len(playlists), len(s.History))
	return nil
}

// NewFromState creates a catalog holding the snapshot content.
func NewFromState(s State, opts ...Option) (*Catalog, error) {
	c := New(opts...)
	if err := c.Restore(s); err != nil {
		return nil, err
	}
	return c, nil
}
