package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/history"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

var t0 = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func played(name, artist string, genre track.Genre, count int) track.Track {
	t := track.New(name, track.Artist{Name: artist}, "L", nil, nil, genre, 100)
	t.PlayCount = count
	return t
}

func event(email string, at time.Time) history.Event {
	return history.NewEvent(email, track.Track{Name: "x"}, at)
}

func testState() catalog.State {
	return catalog.State{
		Version: catalog.StateVersion,
		Tracks: []track.Track{
			played("a", "Queen", track.GenreRock, 3),
			played("b", "Queen", track.GenreRock, 2),
			played("c", "Miles", track.GenreJazz, 4),
			played("d", "Daft", track.GenreElectronic, 0),
		},
		Users: []user.Record{
			{Email: "ana@x", Points: 40},
			{Email: "rui@x", Points: 120},
		},
		Playlists: []playlist.Record{
			{Name: "p1", Owner: "ana@x", Public: true},
			{Name: "p2", Owner: "rui@x", Public: false},
			{Name: "p3", Owner: "rui@x", Public: true},
		},
		History: []history.Event{
			event("ana@x", t0),
			event("rui@x", t0.Add(time.Hour)),
			event("rui@x", t0.Add(2*time.Hour)),
			event("ana@x", t0.Add(3*time.Hour)),
			event("ana@x", t0.Add(4*time.Hour)),
		},
	}
}

func TestCompute(t *testing.T) {
	r := Compute(testState(), Window{})

	require.NotNil(t, r.MostPlayedTrack)
	assert.Equal(t, Entry{Key: "c", Value: 4}, *r.MostPlayedTrack)
	assert.Equal(t, Entry{Key: "ana@x", Value: 3}, *r.TopListener)
	assert.Equal(t, Entry{Key: "Queen", Value: 5}, *r.MostListenedArtist)
	assert.Equal(t, Entry{Key: "rui@x", Value: 120}, *r.TopPointsUser)
	assert.Equal(t, Entry{Key: "ROCK", Value: 5}, *r.MostPlayedGenre)
	assert.Equal(t, 2, r.PublicPlaylists)
	assert.Equal(t, Entry{Key: "rui@x", Value: 2}, *r.TopPlaylistOwner)
}

func TestCompute_Empty(t *testing.T) {
	r := Compute(catalog.State{}, Window{})
	assert.Nil(t, r.MostPlayedTrack)
	assert.Nil(t, r.TopListener)
	assert.Nil(t, r.MostListenedArtist)
	assert.Nil(t, r.TopPointsUser)
	assert.Nil(t, r.MostPlayedGenre)
	assert.Nil(t, r.TopPlaylistOwner)
	assert.Zero(t, r.PublicPlaylists)
}

func TestTopListener_Window(t *testing.T) {
	events := testState().History

	tests := []struct {
		name     string
		window   Window
		expected *Entry
	}{
		{name: "open window", window: Window{}, expected: &Entry{Key: "ana@x", Value: 3}},
		{name: "inclusive bounds", window: Window{From: t0.Add(time.Hour), To: t0.Add(2 * time.Hour)}, expected: &Entry{Key: "rui@x", Value: 2}},
		{name: "upper bound only", window: Window{To: t0.Add(2 * time.Hour)}, expected: &Entry{Key: "rui@x", Value: 2}},
		{name: "nothing inside", window: Window{From: t0.Add(10 * time.Hour)}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TopListener(events, tt.window))
		})
	}
}

func TestRank_TieBreak(t *testing.T) {
	got := rank([]string{"b", "a", "b", "a"}, map[string]int{"a": 2, "b": 2})
	assert.Equal(t, &Entry{Key: "b", Value: 2}, got)
}
