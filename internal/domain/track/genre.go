package track

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Genre is a catalog music genre.
type Genre string

const (
	GenrePop        Genre = "POP"
	GenreRock       Genre = "ROCK"
	GenreJazz       Genre = "JAZZ"
	GenreClassical  Genre = "CLASSICAL"
	GenreElectronic Genre = "ELECTRONIC"
	GenreFunk       Genre = "FUNK"
)

// ErrUnknownGenre is returned when a genre name cannot be parsed.
var ErrUnknownGenre = errors.New("unknown genre")

// Genres returns every known genre in declaration order.
func Genres() []Genre {
	return []Genre{GenrePop, GenreRock, GenreJazz, GenreClassical, GenreElectronic, GenreFunk}
}

// ParseGenre parses a genre name, case-insensitively.
func ParseGenre(name string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Genres() {
		if g == known {
			return g, nil
		}
	}
	return "", errors.Mark(errors.Newf("unknown genre %q", name), ErrUnknownGenre)
}

// String returns the genre name.
func (g Genre) String() string {
	return string(g)
}

// tagKeywords maps free-form tag keywords (Last.fm tags, Spotify artist genres)
// to catalog genres. Order matters: the first keyword found in a tag wins.
var tagKeywords = []struct {
	keyword string
	genre   Genre
}{
	{"classical", GenreClassical},
	{"orchestra", GenreClassical},
	{"opera", GenreClassical},
	{"baroque", GenreClassical},
	{"jazz", GenreJazz},
	{"blues", GenreJazz},
	{"swing", GenreJazz},
	{"bossa", GenreJazz},
	{"funk", GenreFunk},
	{"soul", GenreFunk},
	{"disco", GenreFunk},
	{"electro", GenreElectronic},
	{"techno", GenreElectronic},
	{"house", GenreElectronic},
	{"edm", GenreElectronic},
	{"trance", GenreElectronic},
	{"dance", GenreElectronic},
	{"rock", GenreRock},
	{"metal", GenreRock},
	{"punk", GenreRock},
	{"grunge", GenreRock},
	{"indie", GenreRock},
	{"pop", GenrePop},
}

// GenreFromTag maps a free-form tag such as "alternative rock" to a catalog genre.
func GenreFromTag(tag string) (Genre, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", false
	}
	if g, err := ParseGenre(tag); err == nil {
		return g, true
	}
	for _, kw := range tagKeywords {
		if strings.Contains(tag, kw.keyword) {
			return kw.genre, true
		}
	}
	return "", false
}
