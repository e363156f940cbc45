package catalog

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/track"
)

// TrackSpec describes a track to create. Artist refers to an existing artist by name.
// Setting Explicit or Multimedia selects the variant; setting both is invalid.
type TrackSpec struct {
	Name        string
	Artist      string
	Publisher   string
	Lyrics      []string
	Composition []string
	Genre       track.Genre
	DurationSec int
	Explicit    *track.ExplicitContent
	Multimedia  *track.MultimediaContent
}

// CreateArtist adds an artist. Artist names are unique.
func (c *Catalog) CreateArtist(name, country string) (track.Artist, error) {
	if name == "" {
		return track.Artist{}, errors.Mark(errors.New("artist name is required"), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.artists[name]; ok {
		return track.Artist{}, exists(ErrArtistExists, "artist", name)
	}
	a := track.Artist{Name: name, Country: country}
	c.artists[name] = a
	c.artistOrder = append(c.artistOrder, name)

	zlog.Debug().Msgf("artist created: name=%s country=%s", name, country)
	return a, nil
}

// Artist returns the artist with the given name.
func (c *Catalog) Artist(name string) (track.Artist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.artists[name]
	if !ok {
		return track.Artist{}, notFound(ErrArtistNotFound, "artist", name)
	}
	return a, nil
}

// Artists returns every artist in creation order.
func (c *Catalog) Artists() []track.Artist {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]track.Artist, 0, len(c.artistOrder))
	for _, name := range c.artistOrder {
		out = append(out, c.artists[name])
	}
	return out
}

// CreateTrack adds a track by an existing artist. Track names are unique.
func (c *Catalog) CreateTrack(spec TrackSpec) (track.Track, error) {
	if spec.Name == "" {
		return track.Track{}, errors.Mark(errors.New("track name is required"), ErrInvalidArgument)
	}
	if spec.DurationSec < 0 {
		return track.Track{}, errors.Mark(errors.Newf("track %q: negative duration %d", spec.Name, spec.DurationSec), ErrInvalidArgument)
	}
	if spec.Explicit != nil && spec.Multimedia != nil {
		return track.Track{}, errors.Mark(errors.Newf("track %q: explicit and multimedia are exclusive", spec.Name), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	artist, ok := c.artists[spec.Artist]
	if !ok {
		return track.Track{}, notFound(ErrArtistNotFound, "artist", spec.Artist)
	}
	if _, err := c.trackIndexLocked(spec.Name); err == nil {
		return track.Track{}, exists(ErrTrackExists, "track", spec.Name)
	}

	var t track.Track
	switch {
	case spec.Explicit != nil:
		t = track.NewExplicit(spec.Name, artist, spec.Publisher, spec.Lyrics, spec.Composition, spec.Genre, spec.DurationSec,
			spec.Explicit.WarningReason, spec.Explicit.MinimumAge)
	case spec.Multimedia != nil:
		t = track.NewMultimedia(spec.Name, artist, spec.Publisher, spec.Lyrics, spec.Composition, spec.Genre, spec.DurationSec,
			spec.Multimedia.VideoName, spec.Multimedia.VideoFormat)
	default:
		t = track.New(spec.Name, artist, spec.Publisher, spec.Lyrics, spec.Composition, spec.Genre, spec.DurationSec)
	}
	c.tracks = append(c.tracks, t)

	zlog.Debug().Msgf("track created: name=%s artist=%s kind=%s genre=%s", t.Name, artist.Name, t.Kind(), t.Genre)
	return t.Clone(), nil
}

// HasTrack reports whether a track with the given name exists.
func (c *Catalog) HasTrack(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, err := c.trackIndexLocked(name)
	return err == nil
}

// Track returns the track with the given name.
func (c *Catalog) Track(name string) (track.Track, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, err := c.trackIndexLocked(name)
	if err != nil {
		return track.Track{}, err
	}
	return c.tracks[i].Clone(), nil
}

// Tracks returns every track in catalog order.
func (c *Catalog) Tracks() []track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return track.CloneAll(c.tracks)
}

// CreateAlbum adds an album of existing tracks by an existing artist. Album names are unique.
func (c *Catalog) CreateAlbum(name string, releaseDate time.Time, artistName string, trackNames []string) (album.Album, error) {
	if name == "" {
		return album.Album{}, errors.Mark(errors.New("album name is required"), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	artist, ok := c.artists[artistName]
	if !ok {
		return album.Album{}, notFound(ErrArtistNotFound, "artist", artistName)
	}
	if _, err := c.albumIndexLocked(name); err == nil {
		return album.Album{}, exists(ErrAlbumExists, "album", name)
	}
	tracks, err := c.resolveTracksLocked(trackNames)
	if err != nil {
		return album.Album{}, err
	}
	a := album.New(name, releaseDate, artist, tracks)
	c.albums = append(c.albums, a)

	zlog.Debug().Msgf("album created: name=%s artist=%s tracks=%d", name, artistName, len(tracks))
	return a.Clone(), nil
}

// Album returns the album with the given name.
func (c *Catalog) Album(name string) (album.Album, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, err := c.albumIndexLocked(name)
	if err != nil {
		return album.Album{}, err
	}
	return c.albums[i].Clone(), nil
}

// Albums returns every album in creation order.
func (c *Catalog) Albums() []album.Album {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]album.Album, len(c.albums))
	for i, a := range c.albums {
		out[i] = a.Clone()
	}
	return out
}

func (c *Catalog) resolveTracksLocked(names []string) ([]track.Track, error) {
	tracks := make([]track.Track, 0, len(names))
	for _, n := range names {
		i, err := c.trackIndexLocked(n)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, c.tracks[i])
	}
	return tracks, nil
}
