// Package catalog provides the music service aggregate: users, artists, tracks,
// albums, playlists and the play history, behind a single lock.
package catalog

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/app/favorites"
	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered   = errors.New("email already registered")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidCredentials       = user.ErrInvalidCredentials
	ErrArtistNotFound           = errors.New("artist not found")
	ErrArtistExists             = errors.New("artist already exists")
	ErrTrackNotFound            = errors.New("track not found")
	ErrTrackExists              = errors.New("track already exists")
	ErrAlbumNotFound            = errors.New("album not found")
	ErrAlbumExists              = errors.New("album already exists")
	ErrPlaylistNotFound         = errors.New("playlist not found")
	ErrPlaylistExists           = errors.New("playlist already exists")
	ErrPlaylistNotShuffleable   = errors.New("only random playlists can be played on this plan")
	ErrPlaylistNotNavigable     = errors.New("playlist has no playback cursor")
	ErrPlaylistAlreadyInLibrary = errors.New("playlist already in library")
	ErrAlbumAlreadyInLibrary    = errors.New("album already in library")
	ErrEmptyPlaylistPlayback    = playlist.ErrEmptyPlaylist
	ErrNoPlaysYet               = favorites.ErrNoPlaysYet
	ErrInsufficientPoints       = errors.New("insufficient points for upgrade")
	ErrPlanDoesNotAllowLibrary  = user.ErrPlanDoesNotAllowLibrary
	ErrPermissionDenied         = errors.New("permission denied")
	ErrInvalidArgument          = errors.New("invalid argument")
)

// UpgradeThreshold is the balance required to upgrade a plan.
const UpgradeThreshold = 100

// Catalog is the aggregate root. Every method is safe for concurrent use and
// every returned value is an independent copy.
type Catalog struct {
	mu sync.RWMutex

	users     map[string]*user.User
	userOrder []string

	artists     map[string]track.Artist
	artistOrder []string

	tracks    []track.Track
	albums    []album.Album
	playlists []playlist.Playlist
	history   *history.Log

	engine       *favorites.Engine
	now          func() time.Time
	passwordCost int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the clock used for play events and creation dates.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithPasswordCost sets the bcrypt cost used when registering users.
func WithPasswordCost(cost int) Option {
	return func(c *Catalog) {
		c.passwordCost = cost
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		users:   make(map[string]*user.User),
		artists: make(map[string]track.Artist),
		history: history.NewLog(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = favorites.NewEngine(favorites.WithClock(c.now))
	return c
}

func notFound(sentinel error, kind, key string) error {
	return errors.Mark(errors.Newf("%s %q not found", kind, key), sentinel)
}

func exists(sentinel error, kind, key string) error {
	return errors.Mark(errors.Newf("%s %q already exists", kind, key), sentinel)
}

func denied(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrPermissionDenied)
}

// userLocked returns the stored user. Callers hold the lock.
func (c *Catalog) userLocked(email string) (*user.User, error) {
	u, ok := c.users[email]
	if !ok {
		return nil, notFound(ErrUserNotFound, "user", email)
	}
	return u, nil
}

// trackIndexLocked returns the index of the named track. Callers hold the lock.
func (c *Catalog) trackIndexLocked(name string) (int, error) {
	for i := range c.tracks {
		if c.tracks[i].Name == name {
			return i, nil
		}
	}
	return -1, notFound(ErrTrackNotFound, "track", name)
}

func (c *Catalog) albumIndexLocked(name string) (int, error) {
	for i := range c.albums {
		if c.albums[i].Name == name {
			return i, nil
		}
	}
	return -1, notFound(ErrAlbumNotFound, "album", name)
}

// playlistLocked returns the stored playlist named name if viewer may see it.
// A playlist is visible to its owner and, when public, to everyone.
func (c *Catalog) playlistLocked(name, viewer string) (playlist.Playlist, error) {
	for _, p := range c.playlists {
		if p.Name() == name && (p.IsPublic() || p.Owner() == viewer) {
			return p, nil
		}
	}
	return nil, notFound(ErrPlaylistNotFound, "playlist", name)
}

func (c *Catalog) playlistNameTakenLocked(name string) bool {
	for _, p := range c.playlists {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// ownedPlaylistLocked returns the stored playlist only when email owns it.
func (c *Catalog) ownedPlaylistLocked(name, email string) (playlist.Playlist, error) {
	p, err := c.playlistLocked(name, email)
	if err != nil {
		return nil, err
	}
	if p.Owner() != email {
		return nil, denied("playlist %q is not owned by %q", name, email)
	}
	return p, nil
}
