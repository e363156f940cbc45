package importer

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

type MockTarget struct {
	mock.Mock
}

func (m *MockTarget) CreateArtist(name, country string) (track.Artist, error) {
	args := m.Called(name, country)
	return track.Artist{Name: name, Country: country}, args.Error(0)
}

func (m *MockTarget) CreateTrack(spec catalog.TrackSpec) (track.Track, error) {
	args := m.Called(spec)
	return track.Track{Name: spec.Name}, args.Error(0)
}

func (m *MockTarget) CreateAlbum(name string, releaseDate time.Time, artistName string, trackNames []string) (album.Album, error) {
	args := m.Called(name, releaseDate, artistName, trackNames)
	return album.Album{Name: name}, args.Error(0)
}

func (m *MockTarget) RegisterUser(r catalog.Registration) (*user.User, error) {
	args := m.Called(r)
	return &user.User{Email: r.Email}, args.Error(0)
}

func (m *MockTarget) CreateRandomPlaylist(email, name string, n int) (playlist.Playlist, error) {
	args := m.Called(email, name, n)
	return nil, args.Error(0)
}
