package catalog

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
)

// CreateBuiltPlaylist creates a navigable playlist from existing tracks.
// The owner's plan must allow playlist creation.
func (c *Catalog) CreateBuiltPlaylist(email, name string, public bool, trackNames []string) (playlist.Playlist, error) {
	if name == "" {
		return nil, errors.Mark(errors.New("playlist name is required"), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	if !u.Plan.CanCreatePlaylists() {
		return nil, denied("plan %s of %q does not allow creating playlists", u.Plan, email)
	}
	if c.playlistNameTakenLocked(name) {
		return nil, exists(ErrPlaylistExists, "playlist", name)
	}
	tracks, err := c.resolveTracksLocked(trackNames)
	if err != nil {
		return nil, err
	}
	p := playlist.NewBuilt(name, email, c.now(), public, tracks)
	c.playlists = append(c.playlists, p)

	zlog.Debug().Msgf("playlist created: name=%s owner=%s kind=%s tracks=%d", name, email, p.Kind(), p.Len())
	return p.Clone(), nil
}

// CreateRandomPlaylist creates a public random playlist of up to n distinct
// catalog tracks picked at random.
func (c *Catalog) CreateRandomPlaylist(email, name string, n int) (playlist.Playlist, error) {
	if name == "" {
		return nil, errors.Mark(errors.New("playlist name is required"), ErrInvalidArgument)
	}
	if n < 0 {
		return nil, errors.Mark(errors.Newf("playlist %q: negative size %d", name, n), ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.userLocked(email); err != nil {
		return nil, err
	}
	if c.playlistNameTakenLocked(name) {
		return nil, exists(ErrPlaylistExists, "playlist", name)
	}
	n = min(n, len(c.tracks))
	picked := make([]track.Track, 0, n)
	for _, i := range rand.Perm(len(c.tracks))[:n] {
		picked = append(picked, c.tracks[i])
	}
	p := playlist.NewRandom(name, email, c.now(), true, picked)
	c.playlists = append(c.playlists, p)

	zlog.Debug().Msgf("playlist created: name=%s owner=%s kind=%s tracks=%d", name, email, p.Kind(), p.Len())
	return p.Clone(), nil
}

// Playlist returns the named playlist if viewer may see it.
func (c *Catalog) Playlist(name, viewer string) (playlist.Playlist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, err := c.playlistLocked(name, viewer)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// VisiblePlaylists returns the playlists viewer may see, in creation order.
func (c *Catalog) VisiblePlaylists(viewer string) []playlist.Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()

	visible := lo.Filter(c.playlists, func(p playlist.Playlist, _ int) bool {
		return p.IsPublic() || p.Owner() == viewer
	})
	return lo.Map(visible, func(p playlist.Playlist, _ int) playlist.Playlist { return p.Clone() })
}

// Playlists returns every playlist regardless of visibility.
func (c *Catalog) Playlists() []playlist.Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Map(c.playlists, func(p playlist.Playlist, _ int) playlist.Playlist { return p.Clone() })
}

// TogglePlaylistVisibility flips the visibility of an owned playlist and returns the new value.
func (c *Catalog) TogglePlaylistVisibility(email, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.ownedPlaylistLocked(name, email)
	if err != nil {
		return false, err
	}
	p.SetPublic(!p.IsPublic())

	zlog.Debug().Msgf("playlist visibility changed: name=%s public=%t", name, p.IsPublic())
	return p.IsPublic(), nil
}

// AddTrackToPlaylist appends a catalog track to an owned playlist.
func (c *Catalog) AddTrackToPlaylist(email, playlistName, trackName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.ownedPlaylistLocked(playlistName, email)
	if err != nil {
		return err
	}
	i, err := c.trackIndexLocked(trackName)
	if err != nil {
		return err
	}
	p.AddTrack(c.tracks[i])
	return nil
}

// RemoveTrackFromPlaylist removes a track from an owned playlist.
func (c *Catalog) RemoveTrackFromPlaylist(email, playlistName, trackName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.ownedPlaylistLocked(playlistName, email)
	if err != nil {
		return err
	}
	if !p.RemoveTrack(trackName) {
		return errors.Mark(errors.Newf("track %q not in playlist %q", trackName, playlistName), ErrTrackNotFound)
	}
	return nil
}

// PlaybackQueue returns the track names of a visible playlist in the order they
// would be played. Users on Free can only play random playlists, which are always
// drawn in a fresh random order. Premium users get insertion order, or a fresh
// shuffle when shuffle is set.
func (c *Catalog) PlaybackQueue(email, name string, shuffle bool) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.playbackQueueLocked(email, name, shuffle)
}

func (c *Catalog) playbackQueueLocked(email, name string, shuffle bool) ([]string, error) {
	u, err := c.userLocked(email)
	if err != nil {
		return nil, err
	}
	p, err := c.playlistLocked(name, email)
	if err != nil {
		return nil, err
	}

	var order []track.Track
	switch {
	case !u.IsPremium():
		r, ok := p.(*playlist.Random)
		if !ok {
			return nil, errors.Mark(errors.Newf("playlist %q is %s, plan %s plays random playlists only", name, p.Kind(), u.Plan), ErrPlaylistNotShuffleable)
		}
		order = r.Order()
	case shuffle:
		order = p.Tracks()
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	default:
		order = p.Tracks()
	}
	return lo.Map(order, func(t track.Track, _ int) string { return t.Name }), nil
}

// PlayPlaylist plays every track of the playback queue, recording one play each.
func (c *Catalog) PlayPlaylist(email, name string, shuffle bool) ([]PlayResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue, err := c.playbackQueueLocked(email, name, shuffle)
	if err != nil {
		return nil, err
	}
	results := make([]PlayResult, 0, len(queue))
	for _, trackName := range queue {
		res, err := c.recordPlayLocked(email, trackName)
		if err != nil {
			return results, errors.Wrapf(err, "playlist %q", name)
		}
		results = append(results, res)
	}
	return results, nil
}

// SetShuffle switches an owned built playlist between shuffled and sequential
// mode. Either way the playback order is snapshotted and the cursor rewinds.
func (c *Catalog) SetShuffle(email, name string, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.builtLocked(email, name)
	if err != nil {
		return err
	}
	if on {
		b.ActivateShuffle()
	} else {
		b.DeactivateShuffle()
	}

	zlog.Debug().Msgf("playlist mode changed: name=%s shuffled=%t", name, on)
	return nil
}

// PlayCurrent plays the track under the cursor of an owned built playlist.
func (c *Catalog) PlayCurrent(email, name string) (PlayResult, error) {
	return c.navigate(email, name, (*playlist.Built).PlayCurrent)
}

// Next advances the cursor of an owned built playlist and plays the new track.
func (c *Catalog) Next(email, name string) (PlayResult, error) {
	return c.navigate(email, name, (*playlist.Built).Advance)
}

// Previous moves the cursor of an owned built playlist back and plays the new track.
func (c *Catalog) Previous(email, name string) (PlayResult, error) {
	return c.navigate(email, name, (*playlist.Built).Retreat)
}

func (c *Catalog) navigate(email, name string, step func(*playlist.Built) (string, error)) (PlayResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.builtLocked(email, name)
	if err != nil {
		return PlayResult{}, err
	}
	prev := b.Index()
	if _, err := step(b); err != nil {
		return PlayResult{}, errors.Wrapf(err, "playlist %q", name)
	}
	cur, err := b.Current()
	if err != nil {
		return PlayResult{}, errors.Wrapf(err, "playlist %q", name)
	}
	res, err := c.recordPlayLocked(email, cur.Name)
	if err != nil {
		// the step only counts once its play is recorded
		b.Seek(prev)
		return PlayResult{}, errors.Wrapf(err, "playlist %q", name)
	}
	return res, nil
}

func (c *Catalog) builtLocked(email, name string) (*playlist.Built, error) {
	p, err := c.ownedPlaylistLocked(name, email)
	if err != nil {
		return nil, err
	}
	b, ok := p.(*playlist.Built)
	if !ok {
		return nil, errors.Mark(errors.Newf("playlist %q is %s", name, p.Kind()), ErrPlaylistNotNavigable)
	}
	return b, nil
}
