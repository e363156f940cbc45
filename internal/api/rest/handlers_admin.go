package rest

import (
	"net/http"
	"time"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/stats"
	"github.com/osa030/spotifum/internal/domain/track"
)

// GET /admin/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := s.catalog.Users()
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /admin/artists
func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := s.catalog.CreateArtist(req.Name, req.Country)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// POST /admin/tracks
func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var req createTrackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	genre, err := track.ParseGenre(req.Genre)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	t, err := s.catalog.CreateTrack(catalog.TrackSpec{
		Name:        req.Name,
		Artist:      req.Artist,
		Publisher:   req.Publisher,
		Lyrics:      req.Lyrics,
		Composition: req.Composition,
		Genre:       genre,
		DurationSec: req.DurationSec,
		Explicit:    req.Explicit,
		Multimedia:  req.Multimedia,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// POST /admin/albums
func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var released time.Time
	if req.ReleaseDate != "" {
		d, err := time.Parse(time.DateOnly, req.ReleaseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "release_date must be YYYY-MM-DD")
			return
		}
		released = d
	}
	a, err := s.catalog.CreateAlbum(req.Name, released, req.Artist, req.Tracks)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// handleStats reports catalog statistics. from and to (RFC 3339 or
// YYYY-MM-DD) bound the top listener window.
// GET /admin/stats?from=&to=
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var window stats.Window
	for _, b := range []struct {
		param string
		dst   *time.Time
	}{
		{"from", &window.From},
		{"to", &window.To},
	} {
		v := r.URL.Query().Get(b.param)
		if v == "" {
			continue
		}
		t, err := parseTime(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+b.param+" parameter")
			return
		}
		*b.dst = t
	}
	writeJSON(w, http.StatusOK, stats.Compute(s.catalog.State(), window))
}

// POST /admin/snapshot
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshots are not configured")
		return
	}
	if err := s.snapshots.Save(r.Context(), s.catalog.State()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"location": s.snapshots.Location()})
}

// handleIngest imports a Spotify playlist into the catalog.
// POST /admin/ingest
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, "spotify ingest is not configured")
		return
	}
	var req ingestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	report, err := s.importer.ImportPlaylist(r.Context(), req.URL)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := ingestResponse{
		Imported: append([]string{}, report.Imported...),
		Skipped:  append([]string{}, report.Skipped...),
		Filtered: []ingestFilter{},
		Failures: []ingestFailure{},
	}
	for _, r := range report.Filtered {
		resp.Filtered = append(resp.Filtered, ingestFilter{Track: r.Track, Code: r.Code})
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, ingestFailure{Track: f.Track, Error: f.Err.Error()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}
