package track

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArtist = Artist{Name: "Queen", Country: "UK"}

func newStandard() Track {
	return New("Bohemian Rhapsody", testArtist, "EMI",
		[]string{"Is this the real life?", "Is this just fantasy?"},
		[]string{"B", "A"}, GenreRock, 355)
}

func TestTrack_Kind(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected Kind
	}{
		{
			name:     "standard",
			track:    newStandard(),
			expected: KindStandard,
		},
		{
			name:     "explicit",
			track:    NewExplicit("WAP", testArtist, "Atlantic", nil, nil, GenrePop, 187, "language", 18),
			expected: KindExplicit,
		},
		{
			name:     "multimedia",
			track:    NewMultimedia("Thriller", testArtist, "Epic", nil, nil, GenrePop, 357, "thriller.mp4", "mp4"),
			expected: KindMultimedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.track.Kind())
			assert.Equal(t, 0, tt.track.PlayCount)
		})
	}
}

func TestTrack_Play(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected string
	}{
		{
			name:  "standard track shows lyrics",
			track: newStandard(),
			expected: "Now playing: Bohemian Rhapsody - Queen\n" +
				"Lyrics:\n" +
				"Is this the real life?\n" +
				"Is this just fantasy?\n",
		},
		{
			name:  "explicit track shows warning banner first",
			track: NewExplicit("WAP", Artist{Name: "Cardi B", Country: "US"}, "Atlantic", []string{"line"}, nil, GenrePop, 187, "language", 18),
			expected: "Explicit track - Warning: language - Minimum age: 18\n" +
				"Now playing: WAP - Cardi B\n" +
				"Lyrics:\n" +
				"line\n",
		},
		{
			name:  "multimedia track shows video line first",
			track: NewMultimedia("Thriller", Artist{Name: "Michael Jackson", Country: "US"}, "Epic", nil, nil, GenrePop, 357, "thriller", "mp4"),
			expected: "Multimedia track - Video: thriller (mp4)\n" +
				"Now playing: Thriller - Michael Jackson\n" +
				"Lyrics:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.track
			assert.Equal(t, tt.expected, tr.Play())
			assert.Equal(t, 1, tr.PlayCount)
			tr.Play()
			assert.Equal(t, 2, tr.PlayCount)
		})
	}
}

func TestTrack_Equal(t *testing.T) {
	base := newStandard()

	played := base.Clone()
	played.Play()

	otherArtist := base.Clone()
	otherArtist.Artist = Artist{Name: "Queen", Country: "US"}

	explicit := NewExplicit(base.Name, base.Artist, base.Publisher, base.Lyrics, base.Composition, base.Genre, base.DurationSec, "x", 16)
	explicitOtherAge := explicit.Clone()
	explicitOtherAge.Explicit.MinimumAge = 18

	tests := []struct {
		name     string
		a, b     Track
		expected bool
	}{
		{name: "identical", a: base, b: base.Clone(), expected: true},
		{name: "play count differs", a: base, b: played, expected: false},
		{name: "artist country differs", a: base, b: otherArtist, expected: false},
		{name: "variant differs", a: base, b: explicit, expected: false},
		{name: "variant payload differs", a: explicit, b: explicitOtherAge, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a))
		})
	}
}

func TestTrack_CloneIsIndependent(t *testing.T) {
	orig := NewExplicit("WAP", testArtist, "Atlantic", []string{"a"}, []string{"c"}, GenrePop, 187, "language", 18)
	c := orig.Clone()

	c.Lyrics[0] = "changed"
	c.Composition[0] = "changed"
	c.Explicit.MinimumAge = 21
	c.Play()

	assert.Equal(t, "a", orig.Lyrics[0])
	assert.Equal(t, "c", orig.Composition[0])
	assert.Equal(t, 18, orig.Explicit.MinimumAge)
	assert.Equal(t, 0, orig.PlayCount)
}

func TestTrack_Duration(t *testing.T) {
	tr := newStandard()
	assert.Equal(t, 355*time.Second, tr.Duration())
	assert.Equal(t, 355+100, TotalDuration([]Track{tr, {DurationSec: 100}}))
	assert.Equal(t, 0, TotalDuration(nil))
}

func TestParseGenre(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Genre
		wantErr  bool
	}{
		{name: "upper case", input: "ROCK", expected: GenreRock},
		{name: "lower case with spaces", input: "  jazz ", expected: GenreJazz},
		{name: "mixed case", input: "Electronic", expected: GenreElectronic},
		{name: "unknown", input: "polka", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGenre(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownGenre))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g)
		})
	}
}

func TestGenreFromTag(t *testing.T) {
	tests := []struct {
		tag      string
		expected Genre
		ok       bool
	}{
		{tag: "pop", expected: GenrePop, ok: true},
		{tag: "alternative rock", expected: GenreRock, ok: true},
		{tag: "heavy metal", expected: GenreRock, ok: true},
		{tag: "Delta Blues", expected: GenreJazz, ok: true},
		{tag: "deep house", expected: GenreElectronic, ok: true},
		{tag: "neo soul", expected: GenreFunk, ok: true},
		{tag: "baroque", expected: GenreClassical, ok: true},
		{tag: "synthpop", expected: GenrePop, ok: true},
		{tag: "seen live", ok: false},
		{tag: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			g, ok := GenreFromTag(tt.tag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, g)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "standard", KindStandard.String())
	assert.Equal(t, "explicit", KindExplicit.String())
	assert.Equal(t, "multimedia", KindMultimedia.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
