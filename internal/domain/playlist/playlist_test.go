package playlist

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/spotifum/internal/domain/track"
)

var (
	testArtist = track.Artist{Name: "Artist", Country: "PT"}
	testTime   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func mkTrack(name string, duration int) track.Track {
	return track.New(name, testArtist, "Label", nil, nil, track.GenrePop, duration)
}

func testTracks(names ...string) []track.Track {
	out := make([]track.Track, len(names))
	for i, n := range names {
		out[i] = mkTrack(n, 100*(i+1))
	}
	return out
}

func names(tracks []track.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Name
	}
	return out
}

func TestPlaylist_Properties(t *testing.T) {
	tests := []struct {
		name     string
		playlist Playlist
		kind     Kind
	}{
		{name: "random", playlist: NewRandom("r", "a@x", testTime, true, testTracks("a", "b")), kind: KindRandom},
		{name: "built", playlist: NewBuilt("b", "a@x", testTime, false, testTracks("a", "b")), kind: KindBuilt},
		{name: "genre", playlist: NewGenre("g", "a@x", testTime, true, testTracks("a", "b"), track.GenrePop, 300), kind: KindGenre},
		{name: "favorites", playlist: NewFavorites("f", "a@x", testTime, true, testTracks("a", "b")), kind: KindFavorites},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.playlist
			assert.Equal(t, tt.kind, p.Kind())
			assert.Equal(t, "a@x", p.Owner())
			assert.Equal(t, testTime, p.CreatedAt())
			assert.Equal(t, 2, p.Len())
			assert.Equal(t, 300, p.TotalDuration())

			p.AddTrack(mkTrack("c", 50))
			assert.Equal(t, 350, p.TotalDuration())
			assert.True(t, p.RemoveTrack("a"))
			assert.False(t, p.RemoveTrack("missing"))
			assert.Equal(t, []string{"b", "c"}, names(p.Tracks()))

			vis := p.IsPublic()
			p.SetPublic(!vis)
			assert.Equal(t, !vis, p.IsPublic())
		})
	}
}

func TestPlaylist_PlayIncrementsCounters(t *testing.T) {
	tests := []struct {
		name       string
		playlist   Playlist
		sequential bool
	}{
		{name: "built plays in insertion order", playlist: NewBuilt("b", "o", testTime, true, testTracks("a", "b", "c")), sequential: true},
		{name: "genre plays in insertion order", playlist: NewGenre("g", "o", testTime, true, testTracks("a", "b", "c"), track.GenrePop, 600), sequential: true},
		{name: "favorites plays in insertion order", playlist: NewFavorites("f", "o", testTime, true, testTracks("a", "b", "c")), sequential: true},
		{name: "random plays every member once", playlist: NewRandom("r", "o", testTime, true, testTracks("a", "b", "c"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.playlist.Play()
			require.Len(t, out, 3)
			if tt.sequential {
				assert.Contains(t, out[0], "Now playing: a - Artist")
				assert.Contains(t, out[1], "Now playing: b - Artist")
				assert.Contains(t, out[2], "Now playing: c - Artist")
			} else {
				for _, n := range []string{"a", "b", "c"} {
					found := 0
					for _, s := range out {
						if s == "Now playing: "+n+" - Artist\nLyrics:\n" {
							found++
						}
					}
					assert.Equal(t, 1, found, "track %s", n)
				}
			}
			for _, tr := range tt.playlist.Tracks() {
				assert.Equal(t, 1, tr.PlayCount)
			}
		})
	}
}

func TestRandom_PlayKeepsNoOrder(t *testing.T) {
	p := NewRandom("r", "o", testTime, true, testTracks("a", "b", "c", "d", "e", "f"))
	before := names(p.Tracks())
	p.Play()
	p.Play()
	assert.Equal(t, before, names(p.Tracks()))
	assert.ElementsMatch(t, before, names(p.Order()))
}

func TestBuilt_FreshHasNoOrder(t *testing.T) {
	p := NewBuilt("b", "o", testTime, true, testTracks("a", "b"))

	assert.Nil(t, p.PlaybackOrder())
	assert.False(t, p.Shuffled())

	_, err := p.PlayCurrent()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	_, err = p.Advance()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	_, err = p.Retreat()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	_, err = p.Current()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	assert.Equal(t, 0, p.Index())
}

func TestBuilt_EmptyOrderAfterDeactivate(t *testing.T) {
	p := NewBuilt("b", "o", testTime, true, nil)
	p.DeactivateShuffle()
	assert.NotNil(t, p.PlaybackOrder())

	_, err := p.PlayCurrent()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	_, err = p.Advance()
	assert.True(t, errors.Is(err, ErrEmptyPlaylist))
	assert.Equal(t, 0, p.Index())
}

func TestBuilt_Seek(t *testing.T) {
	p := NewBuilt("b", "o", testTime, true, testTracks("a", "b", "c"))
	assert.False(t, p.Seek(0), "no playback order yet")

	p.DeactivateShuffle()
	tests := []struct {
		name     string
		index    int
		ok       bool
		expected int
	}{
		{name: "last", index: 2, ok: true, expected: 2},
		{name: "past the end", index: 3, expected: 2},
		{name: "negative", index: -1, expected: 2},
		{name: "first", index: 0, ok: true, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, p.Seek(tt.index))
			assert.Equal(t, tt.expected, p.Index())
		})
	}
}

func TestBuilt_CircularCursor(t *testing.T) {
	tests := []struct {
		name     string
		steps    []string
		expected []int
	}{
		{name: "advance then wrap", steps: []string{"advance", "advance"}, expected: []int{1, 0}},
		{name: "retreat wraps to last", steps: []string{"retreat"}, expected: []int{1}},
		{name: "retreat then advance", steps: []string{"retreat", "advance", "advance"}, expected: []int{1, 0, 1}},
		{name: "play current stays", steps: []string{"current", "current"}, expected: []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBuilt("b", "o", testTime, true, testTracks("a", "b"))
			p.DeactivateShuffle()

			for i, step := range tt.steps {
				var (
					out string
					err error
				)
				switch step {
				case "advance":
					out, err = p.Advance()
				case "retreat":
					out, err = p.Retreat()
				case "current":
					out, err = p.PlayCurrent()
				}
				require.NoError(t, err)
				assert.Equal(t, tt.expected[i], p.Index())
				want := []string{"a", "b"}[tt.expected[i]]
				assert.Contains(t, out, "Now playing: "+want+" - Artist")
			}
		})
	}
}

func TestBuilt_ShuffleSnapshotsMembers(t *testing.T) {
	p := NewBuilt("b", "o", testTime, true, testTracks("a", "b", "c", "d"))
	p.DeactivateShuffle()
	_, err := p.Advance()
	require.NoError(t, err)

	p.ActivateShuffle()
	assert.True(t, p.Shuffled())
	assert.Equal(t, 0, p.Index())
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, names(p.PlaybackOrder()))

	p.AddTrack(mkTrack("e", 10))
	assert.Len(t, p.PlaybackOrder(), 4, "order is a snapshot")

	p.DeactivateShuffle()
	assert.False(t, p.Shuffled())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(p.PlaybackOrder()))
}

func TestPlaylist_CloneAndEqual(t *testing.T) {
	built := NewBuilt("b", "o", testTime, true, testTracks("a", "b"))
	built.DeactivateShuffle()

	tests := []struct {
		name     string
		playlist Playlist
	}{
		{name: "random", playlist: NewRandom("r", "o", testTime, true, testTracks("a"))},
		{name: "built", playlist: built},
		{name: "genre", playlist: NewGenre("g", "o", testTime, true, testTracks("a"), track.GenreRock, 100)},
		{name: "favorites", playlist: NewFavorites("f", "o", testTime, true, testTracks("a"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.playlist.Clone()
			assert.True(t, tt.playlist.Equal(c))

			c.Play()
			assert.False(t, tt.playlist.Equal(c))
			for _, tr := range tt.playlist.Tracks() {
				assert.Equal(t, 0, tr.PlayCount)
			}
		})
	}

	assert.False(t, NewFavorites("x", "o", testTime, true, nil).Equal(NewRandom("x", "o", testTime, true, nil)))
}

func TestBuilt_EqualIncludesCursor(t *testing.T) {
	a := NewBuilt("b", "o", testTime, true, testTracks("a", "b"))
	a.DeactivateShuffle()
	c := a.Clone().(*Built)
	assert.True(t, a.Equal(c))

	_, err := c.Advance()
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	fresh := NewBuilt("b", "o", testTime, true, testTracks("a", "b"))
	assert.False(t, fresh.Equal(a))
}

func TestRecord_RoundTrip(t *testing.T) {
	built := NewBuilt("b", "o", testTime, false, testTracks("a", "b", "c"))
	built.DeactivateShuffle()
	_, err := built.Advance()
	require.NoError(t, err)

	tests := []struct {
		name     string
		playlist Playlist
	}{
		{name: "random", playlist: NewRandom("r", "o", testTime, true, testTracks("a"))},
		{name: "fresh built", playlist: NewBuilt("fb", "o", testTime, true, testTracks("a"))},
		{name: "built with cursor", playlist: built},
		{name: "genre", playlist: NewGenre("g", "o", testTime, true, testTracks("a"), track.GenreJazz, 100)},
		{name: "favorites", playlist: NewFavorites("f", "o", testTime, true, testTracks("a"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(ToRecord(tt.playlist))
			require.NoError(t, err)

			var r Record
			require.NoError(t, json.Unmarshal(data, &r))

			restored, err := FromRecord(r)
			require.NoError(t, err)
			assert.True(t, tt.playlist.Equal(restored))
		})
	}
}

func TestFromRecord_Invalid(t *testing.T) {
	_, err := FromRecord(Record{Kind: Kind(42), Name: "x"})
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = FromRecord(Record{Kind: KindBuilt, Name: "x", Order: testTracks("a"), CurrentIndex: 3})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindRandom, KindBuilt, KindGenre, KindFavorites} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("smart")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
