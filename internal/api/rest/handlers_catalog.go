package rest

import (
	"net/http"
	"strconv"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/playlist"
)

// GET /tracks
func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Tracks())
}

// GET /tracks/{track}
func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	t, err := s.catalog.Track(pathParam(r, "track"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handlePlayTrack records a play of one track by the caller.
// POST /tracks/{track}/play
func (s *Server) handlePlayTrack(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.RecordPlay(userEmail(r.Context()), pathParam(r, "track"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /albums
func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Albums())
}

// GET /albums/{album}
func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	a, err := s.catalog.Album(pathParam(r, "album"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleListPlaylists lists the public playlists and the caller's own.
// GET /playlists
func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	visible := s.catalog.VisiblePlaylists(userEmail(r.Context()))
	records := make([]playlist.Record, 0, len(visible))
	for _, p := range visible {
		records = append(records, playlist.ToRecord(p))
	}
	writeJSON(w, http.StatusOK, records)
}

// handleCreatePlaylist builds a playlist from named tracks.
// POST /playlists
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.catalog.CreateBuiltPlaylist(userEmail(r.Context()), req.Name, req.Public, req.Tracks)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist.ToRecord(p))
}

// POST /playlists/random
func (s *Server) handleCreateRandomPlaylist(w http.ResponseWriter, r *http.Request) {
	var req randomPlaylistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.catalog.CreateRandomPlaylist(userEmail(r.Context()), req.Name, req.Size)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist.ToRecord(p))
}

// GET /playlists/{playlist}
func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Playlist(pathParam(r, "playlist"), userEmail(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist.ToRecord(p))
}

// POST /playlists/{playlist}/tracks
func (s *Server) handleAddPlaylistTrack(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.catalog.AddTrackToPlaylist(userEmail(r.Context()), pathParam(r, "playlist"), req.Track); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /playlists/{playlist}/tracks/{track}
func (s *Server) handleRemovePlaylistTrack(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.RemoveTrackFromPlaylist(userEmail(r.Context()), pathParam(r, "playlist"), pathParam(r, "track"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /playlists/{playlist}/visibility
func (s *Server) handleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	public, err := s.catalog.TogglePlaylistVisibility(userEmail(r.Context()), pathParam(r, "playlist"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"public": public})
}

// handlePlaybackQueue returns the play order without recording plays.
// GET /playlists/{playlist}/queue?shuffle=true
func (s *Server) handlePlaybackQueue(w http.ResponseWriter, r *http.Request) {
	shuffle, ok := shuffleParam(w, r)
	if !ok {
		return
	}
	queue, err := s.catalog.PlaybackQueue(userEmail(r.Context()), pathParam(r, "playlist"), shuffle)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"queue": queue})
}

// handlePlayPlaylist plays every track of the playlist in queue order.
// POST /playlists/{playlist}/play?shuffle=true
func (s *Server) handlePlayPlaylist(w http.ResponseWriter, r *http.Request) {
	shuffle, ok := shuffleParam(w, r)
	if !ok {
		return
	}
	results, err := s.catalog.PlayPlaylist(userEmail(r.Context()), pathParam(r, "playlist"), shuffle)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// PUT /playlists/{playlist}/shuffle
func (s *Server) handleSetShuffle(w http.ResponseWriter, r *http.Request) {
	var req shuffleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.catalog.SetShuffle(userEmail(r.Context()), pathParam(r, "playlist"), req.On); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNavigate moves a built playlist cursor with step and plays the track under it.
// POST /playlists/{playlist}/{current,next,previous}
func (s *Server) handleNavigate(step func(email, name string) (catalog.PlayResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := step(userEmail(r.Context()), pathParam(r, "playlist"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func shuffleParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	v := r.URL.Query().Get("shuffle")
	if v == "" {
		return false, true
	}
	shuffle, err := strconv.ParseBool(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shuffle parameter")
		return false, false
	}
	return shuffle, true
}
