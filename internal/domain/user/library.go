package user

import (
	"slices"

	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/playlist"
)

// Library is a user's saved playlists and albums.
// Adding an element structurally equal to one already held is a no-op.
type Library struct {
	playlists []playlist.Playlist
	albums    []album.Album
}

// AddPlaylist stores a copy of p and reports whether it was added.
func (l *Library) AddPlaylist(p playlist.Playlist) bool {
	if l.ContainsPlaylist(p) {
		return false
	}
	l.playlists = append(l.playlists, p.Clone())
	return true
}

// AddAlbum stores a copy of a and reports whether it was added.
func (l *Library) AddAlbum(a album.Album) bool {
	if l.ContainsAlbum(a) {
		return false
	}
	l.albums = append(l.albums, a.Clone())
	return true
}

// ContainsPlaylist reports whether an equal playlist is held.
func (l *Library) ContainsPlaylist(p playlist.Playlist) bool {
	return slices.ContainsFunc(l.playlists, func(x playlist.Playlist) bool { return x.Equal(p) })
}

// ContainsAlbum reports whether an equal album is held.
func (l *Library) ContainsAlbum(a album.Album) bool {
	return slices.ContainsFunc(l.albums, func(x album.Album) bool { return x.Equal(a) })
}

// HasPlaylistNamed reports whether a playlist with the given name is held.
func (l *Library) HasPlaylistNamed(name string) bool {
	return slices.ContainsFunc(l.playlists, func(x playlist.Playlist) bool { return x.Name() == name })
}

// HasAlbumNamed reports whether an album with the given name is held.
func (l *Library) HasAlbumNamed(name string) bool {
	return slices.ContainsFunc(l.albums, func(x album.Album) bool { return x.Name == name })
}

// RemovePlaylist removes the playlists named name.
func (l *Library) RemovePlaylist(name string) bool {
	n := len(l.playlists)
	l.playlists = slices.DeleteFunc(l.playlists, func(x playlist.Playlist) bool { return x.Name() == name })
	return len(l.playlists) != n
}

// RemoveAlbum removes the albums named name.
func (l *Library) RemoveAlbum(name string) bool {
	n := len(l.albums)
	l.albums = slices.DeleteFunc(l.albums, func(x album.Album) bool { return x.Name == name })
	return len(l.albums) != n
}

// Playlists returns copies of the held playlists.
func (l *Library) Playlists() []playlist.Playlist {
	out := make([]playlist.Playlist, len(l.playlists))
	for i, p := range l.playlists {
		out[i] = p.Clone()
	}
	return out
}

// Albums returns copies of the held albums.
func (l *Library) Albums() []album.Album {
	out := make([]album.Album, len(l.albums))
	for i, a := range l.albums {
		out[i] = a.Clone()
	}
	return out
}

// Clone returns a deep copy of the library.
func (l Library) Clone() Library {
	return Library{playlists: l.Playlists(), albums: l.Albums()}
}

// Equal reports whether both libraries hold equal elements in the same order.
func (l Library) Equal(o Library) bool {
	return slices.EqualFunc(l.playlists, o.playlists, func(a, b playlist.Playlist) bool { return a.Equal(b) }) &&
		slices.EqualFunc(l.albums, o.albums, func(a, b album.Album) bool { return a.Equal(b) })
}
