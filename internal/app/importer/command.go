// Package importer loads catalog content from line-oriented admin scripts.
package importer

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/album"
	"github.com/osa030/spotifum/internal/domain/playlist"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

// Target is the catalog surface a script drives.
type Target interface {
	CreateArtist(name, country string) (track.Artist, error)
	CreateTrack(spec catalog.TrackSpec) (track.Track, error)
	CreateAlbum(name string, releaseDate time.Time, artistName string, trackNames []string) (album.Album, error)
	RegisterUser(r catalog.Registration) (*user.User, error)
	CreateRandomPlaylist(email, name string, n int) (playlist.Playlist, error)
}

// Env is what a command runs against.
type Env struct {
	Target            Target
	DefaultRandomSize int
}

// Param describes one positional argument of a command.
type Param struct {
	Name     string
	List     bool // "|"-separated values
	Optional bool // may be omitted when it is the trailing argument
	Variadic bool // collects every remaining argument
}

// Command is a script command such as "artist create".
type Command interface {
	// Name returns the command words as written in scripts.
	Name() string
	// Params returns the positional arguments in script order.
	Params() []Param
	// Execute runs the command with the decoded arguments.
	Execute(env Env, settings map[string]any) error
}

// registry holds registered command factories.
var registry = make(map[string]func() Command)

// Register registers a command factory.
func Register(name string, factory func() Command) {
	registry[name] = factory
}

// GetRegistered returns all registered command factories.
func GetRegistered() map[string]func() Command {
	return registry
}

var validate = validator.New()

// decode turns positional settings into a typed config: mapstructure, then
// defaults, then validation.
func decode[T any](settings map[string]any) (*T, error) {
	var config T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.DateOnly),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "failed to decode arguments")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return &config, nil
}
