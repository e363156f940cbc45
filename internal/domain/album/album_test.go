package album

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/spotifum/internal/domain/track"
)

func testAlbum() Album {
	artist := track.Artist{Name: "Daft Punk", Country: "FR"}
	return New("Discovery", time.Date(2001, 3, 12, 0, 0, 0, 0, time.UTC), artist, []track.Track{
		track.New("One More Time", artist, "Virgin", nil, nil, track.GenreElectronic, 320),
		track.New("Aerodynamic", artist, "Virgin", nil, nil, track.GenreElectronic, 212),
	})
}

func TestAlbum_TotalDuration(t *testing.T) {
	a := testAlbum()
	assert.Equal(t, 532, a.TotalDuration())

	empty := New("Empty", time.Time{}, track.Artist{}, nil)
	assert.Equal(t, 0, empty.TotalDuration())
}

func TestAlbum_AddRemoveTrack(t *testing.T) {
	tests := []struct {
		name          string
		remove        string
		expectRemoved bool
		expectLen     int
	}{
		{name: "remove existing", remove: "Aerodynamic", expectRemoved: true, expectLen: 1},
		{name: "remove missing", remove: "Digital Love", expectRemoved: false, expectLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAlbum()
			assert.Equal(t, tt.expectRemoved, a.RemoveTrack(tt.remove))
			assert.Len(t, a.Tracks, tt.expectLen)
		})
	}

	a := testAlbum()
	a.AddTrack(track.New("Digital Love", a.Artist, "Virgin", nil, nil, track.GenreElectronic, 301))
	assert.Len(t, a.Tracks, 3)
	assert.Equal(t, 833, a.TotalDuration())
}

func TestAlbum_CloneAndEqual(t *testing.T) {
	a := testAlbum()
	c := a.Clone()
	assert.True(t, a.Equal(c))

	c.Tracks[0].Play()
	assert.False(t, a.Equal(c))
	assert.Equal(t, 0, a.Tracks[0].PlayCount)

	later := a.Clone()
	later.ReleaseDate = later.ReleaseDate.AddDate(1, 0, 0)
	assert.False(t, a.Equal(later))
}
