package rest

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/plan"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

var errorStatuses = []struct {
	sentinels []error
	status    int
}{
	{
		sentinels: []error{
			catalog.ErrUserNotFound, catalog.ErrArtistNotFound, catalog.ErrTrackNotFound,
			catalog.ErrAlbumNotFound, catalog.ErrPlaylistNotFound,
		},
		status: http.StatusNotFound,
	},
	{
		sentinels: []error{
			catalog.ErrEmailAlreadyRegistered, catalog.ErrArtistExists, catalog.ErrTrackExists,
			catalog.ErrAlbumExists, catalog.ErrPlaylistExists,
			catalog.ErrPlaylistAlreadyInLibrary, catalog.ErrAlbumAlreadyInLibrary,
		},
		status: http.StatusConflict,
	},
	{
		sentinels: []error{
			catalog.ErrPermissionDenied, catalog.ErrPlanDoesNotAllowLibrary, catalog.ErrPlaylistNotShuffleable,
		},
		status: http.StatusForbidden,
	},
	{
		sentinels: []error{catalog.ErrInvalidCredentials},
		status:    http.StatusUnauthorized,
	},
	{
		sentinels: []error{
			catalog.ErrInvalidArgument, track.ErrUnknownGenre, plan.ErrUnknownPlan, user.ErrUnknownRole,
			spotify.ErrInvalidPlaylistURL,
		},
		status: http.StatusBadRequest,
	},
	{
		sentinels: []error{
			catalog.ErrInsufficientPoints, catalog.ErrNoPlaysYet, catalog.ErrEmptyPlaylistPlayback,
			catalog.ErrPlaylistNotNavigable,
		},
		status: http.StatusUnprocessableEntity,
	},
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	for _, es := range errorStatuses {
		for _, sentinel := range es.sentinels {
			if errors.Is(err, sentinel) {
				return es.status
			}
		}
	}
	return http.StatusInternalServerError
}

// writeDomainError writes err with its mapped status. Unmapped errors are
// logged and hidden from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zlog.Error().Msgf("request failed: method=%s path=%s err=%+v", r.Method, r.URL.Path, err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return false
	}
	return true
}

// pathParam returns an unescaped URL parameter; names may contain spaces or slashes.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
