package importer

import (
	"time"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/domain/plan"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/domain/user"
)

// ArtistConfig holds the arguments of "artist create".
type ArtistConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Country string `mapstructure:"country"`
}

// ArtistCommand creates an artist.
type ArtistCommand struct{}

func (c *ArtistCommand) Name() string { return "artist create" }

func (c *ArtistCommand) Params() []Param {
	return []Param{{Name: "name"}, {Name: "country"}}
}

func (c *ArtistCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[ArtistConfig](settings)
	if err != nil {
		return err
	}
	_, err = env.Target.CreateArtist(config.Name, config.Country)
	return err
}

// TrackConfig holds the arguments shared by every track command.
type TrackConfig struct {
	Name        string   `mapstructure:"name" validate:"required"`
	Artist      string   `mapstructure:"artist" validate:"required"`
	Publisher   string   `mapstructure:"publisher"`
	Lyrics      []string `mapstructure:"lyrics"`
	Composition []string `mapstructure:"composition"`
	Genre       string   `mapstructure:"genre" validate:"required"`
	Duration    int      `mapstructure:"duration" validate:"gte=0"`
}

func (c TrackConfig) spec() (catalog.TrackSpec, error) {
	genre, err := track.ParseGenre(c.Genre)
	if err != nil {
		return catalog.TrackSpec{}, err
	}
	return catalog.TrackSpec{
		Name:        c.Name,
		Artist:      c.Artist,
		Publisher:   c.Publisher,
		Lyrics:      c.Lyrics,
		Composition: c.Composition,
		Genre:       genre,
		DurationSec: c.Duration,
	}, nil
}

func trackParams(extra ...Param) []Param {
	return append([]Param{
		{Name: "name"},
		{Name: "artist"},
		{Name: "publisher"},
		{Name: "lyrics", List: true},
		{Name: "composition", List: true},
		{Name: "genre"},
		{Name: "duration"},
	}, extra...)
}

// TrackCommand creates a standard track.
type TrackCommand struct{}

func (c *TrackCommand) Name() string    { return "track create" }
func (c *TrackCommand) Params() []Param { return trackParams() }

func (c *TrackCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[TrackConfig](settings)
	if err != nil {
		return err
	}
	spec, err := config.spec()
	if err != nil {
		return err
	}
	_, err = env.Target.CreateTrack(spec)
	return err
}

// ExplicitTrackConfig holds the arguments of "explicit-track create".
type ExplicitTrackConfig struct {
	TrackConfig `mapstructure:",squash"`
	Warning     string `mapstructure:"warning" validate:"required"`
	MinimumAge  int    `mapstructure:"minimum_age" default:"18" validate:"gte=0"`
}

// ExplicitTrackCommand creates an explicit track.
type ExplicitTrackCommand struct{}

func (c *ExplicitTrackCommand) Name() string { return "explicit-track create" }

func (c *ExplicitTrackCommand) Params() []Param {
	return trackParams(Param{Name: "warning"}, Param{Name: "minimum_age", Optional: true})
}

func (c *ExplicitTrackCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[ExplicitTrackConfig](settings)
	if err != nil {
		return err
	}
	spec, err := config.spec()
	if err != nil {
		return err
	}
	spec.Explicit = &track.ExplicitContent{WarningReason: config.Warning, MinimumAge: config.MinimumAge}
	_, err = env.Target.CreateTrack(spec)
	return err
}

// MultimediaTrackConfig holds the arguments of "multimedia-track create".
type MultimediaTrackConfig struct {
	TrackConfig `mapstructure:",squash"`
	Video       string `mapstructure:"video" validate:"required"`
	Format      string `mapstructure:"format" default:"mp4"`
}

// MultimediaTrackCommand creates a multimedia track.
type MultimediaTrackCommand struct{}

func (c *MultimediaTrackCommand) Name() string { return "multimedia-track create" }

func (c *MultimediaTrackCommand) Params() []Param {
	return trackParams(Param{Name: "video"}, Param{Name: "format", Optional: true})
}

func (c *MultimediaTrackCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[MultimediaTrackConfig](settings)
	if err != nil {
		return err
	}
	spec, err := config.spec()
	if err != nil {
		return err
	}
	spec.Multimedia = &track.MultimediaContent{VideoName: config.Video, VideoFormat: config.Format}
	_, err = env.Target.CreateTrack(spec)
	return err
}

// AlbumConfig holds the arguments of "album create".
type AlbumConfig struct {
	Name        string    `mapstructure:"name" validate:"required"`
	Artist      string    `mapstructure:"artist" validate:"required"`
	ReleaseDate time.Time `mapstructure:"release_date"`
	Tracks      []string  `mapstructure:"tracks"`
}

// AlbumCommand creates an album from existing tracks.
type AlbumCommand struct{}

func (c *AlbumCommand) Name() string { return "album create" }

func (c *AlbumCommand) Params() []Param {
	return []Param{{Name: "name"}, {Name: "artist"}, {Name: "release_date"}, {Name: "tracks", Variadic: true}}
}

func (c *AlbumCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[AlbumConfig](settings)
	if err != nil {
		return err
	}
	_, err = env.Target.CreateAlbum(config.Name, config.ReleaseDate, config.Artist, config.Tracks)
	return err
}

// UserConfig holds the arguments of "user register".
type UserConfig struct {
	Email    string `mapstructure:"email" validate:"required,email"`
	Name     string `mapstructure:"name" validate:"required"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password" validate:"required"`
	Plan     string `mapstructure:"plan" default:"free"`
	Role     string `mapstructure:"role" default:"user"`
}

// UserCommand registers a user.
type UserCommand struct{}

func (c *UserCommand) Name() string { return "user register" }

func (c *UserCommand) Params() []Param {
	return []Param{
		{Name: "email"},
		{Name: "name"},
		{Name: "address"},
		{Name: "password"},
		{Name: "plan", Optional: true},
		{Name: "role", Optional: true},
	}
}

func (c *UserCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[UserConfig](settings)
	if err != nil {
		return err
	}
	p, err := plan.Parse(config.Plan)
	if err != nil {
		return err
	}
	role, err := user.ParseRole(config.Role)
	if err != nil {
		return err
	}
	_, err = env.Target.RegisterUser(catalog.Registration{
		Name:     config.Name,
		Email:    config.Email,
		Address:  config.Address,
		Password: config.Password,
		Plan:     p,
		Role:     role,
	})
	return err
}

// RandomPlaylistConfig holds the arguments of "random-playlist create".
type RandomPlaylistConfig struct {
	Name  string `mapstructure:"name" validate:"required"`
	Email string `mapstructure:"email" validate:"required"`
	Size  *int   `mapstructure:"size" validate:"omitempty,gte=0"`
}

// RandomPlaylistCommand creates a random playlist from catalog tracks.
type RandomPlaylistCommand struct{}

func (c *RandomPlaylistCommand) Name() string { return "random-playlist create" }

func (c *RandomPlaylistCommand) Params() []Param {
	return []Param{{Name: "name"}, {Name: "email"}, {Name: "size", Optional: true}}
}

func (c *RandomPlaylistCommand) Execute(env Env, settings map[string]any) error {
	config, err := decode[RandomPlaylistConfig](settings)
	if err != nil {
		return err
	}
	size := env.DefaultRandomSize
	if config.Size != nil {
		size = *config.Size
	}
	_, err = env.Target.CreateRandomPlaylist(config.Email, config.Name, size)
	return err
}

func init() {
	Register("artist create", func() Command { return &ArtistCommand{} })
	Register("track create", func() Command { return &TrackCommand{} })
	Register("explicit-track create", func() Command { return &ExplicitTrackCommand{} })
	Register("multimedia-track create", func() Command { return &MultimediaTrackCommand{} })
	Register("album create", func() Command { return &AlbumCommand{} })
	Register("user register", func() Command { return &UserCommand{} })
	Register("random-playlist create", func() Command { return &RandomPlaylistCommand{} })

	// Portuguese verbs of the first SpotifUM scripts; same arguments.
	Register("artista create", func() Command { return &ArtistCommand{} })
	Register("musica create", func() Command { return &TrackCommand{} })
	Register("musicaExplicita create", func() Command { return &ExplicitTrackCommand{} })
	Register("musicaMultimedia create", func() Command { return &MultimediaTrackCommand{} })
	Register("playlistAleatoria create", func() Command { return &RandomPlaylistCommand{} })
}
