// Package main provides the user CLI entry point for testing.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/osa030/spotifum/internal/api/rest"
	"github.com/osa030/spotifum/internal/app/catalog"
)

var (
	app    = kingpin.New("spotifum-usercli", "SpotifUM user client for testing")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	email  = app.Flag("user", "Email of the calling user (or set SPOTIFUM_USER env)").Envar("SPOTIFUM_USER").String()

	// register command
	registerCmd      = app.Command("register", "Create an account")
	registerName     = registerCmd.Arg("name", "Display name").Required().String()
	registerEmail    = registerCmd.Arg("email", "Email").Required().String()
	registerPassword = registerCmd.Arg("password", "Password").Required().String()
	registerPlan     = registerCmd.Flag("plan", "Plan (free, premium_base, premium_top)").Default("free").String()

	// tracks command
	tracksCmd = app.Command("tracks", "List catalog tracks")

	// play command
	playCmd   = app.Command("play", "Play a track")
	playTrack = playCmd.Arg("track", "Track name").Required().String()

	// playlists command
	playlistsCmd = app.Command("playlists", "List visible playlists")

	// navigation commands
	currentCmd       = app.Command("current", "Play the current track of a built playlist")
	currentPlaylist  = currentCmd.Arg("playlist", "Playlist name").Required().String()
	nextCmd          = app.Command("next", "Skip to the next track of a built playlist")
	nextPlaylist     = nextCmd.Arg("playlist", "Playlist name").Required().String()
	previousCmd      = app.Command("previous", "Go back to the previous track of a built playlist")
	previousPlaylist = previousCmd.Arg("playlist", "Playlist name").Required().String()

	// upgrade command
	upgradeCmd = app.Command("upgrade", "Upgrade the plan")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	client := rest.NewClient(*server)
	ctx := context.Background()

	if command == registerCmd.FullCommand() {
		register(ctx, client, *registerName, *registerEmail, *registerPassword, *registerPlan)
		return
	}

	if *email == "" {
		fmt.Println("Error: user is required (use --user or SPOTIFUM_USER env)")
		os.Exit(1)
	}
	client.UserEmail = *email

	switch command {
	case tracksCmd.FullCommand():
		listTracks(ctx, client)
	case playCmd.FullCommand():
		play(ctx, client, *playTrack)
	case playlistsCmd.FullCommand():
		listPlaylists(ctx, client)
	case currentCmd.FullCommand():
		navigate(ctx, client, *currentPlaylist, "current")
	case nextCmd.FullCommand():
		navigate(ctx, client, *nextPlaylist, "next")
	case previousCmd.FullCommand():
		navigate(ctx, client, *previousPlaylist, "previous")
	case upgradeCmd.FullCommand():
		upgrade(ctx, client)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func register(ctx context.Context, client *rest.Client, name, email, password, plan string) {
	body := map[string]string{"name": name, "email": email, "password": password, "plan": plan}
	var out struct {
		Plan string `json:"plan"`
	}
	exitOnError(client.Do(ctx, http.MethodPost, "/users", body, &out))
	fmt.Printf("Registered %s on plan %s\n", email, out.Plan)
}

func listTracks(ctx context.Context, client *rest.Client) {
	tracks, err := client.Tracks(ctx)
	exitOnError(err)

	fmt.Printf("Tracks (%d):\n", len(tracks))
	for _, t := range tracks {
		fmt.Printf("  %s - %s [%s, %s, %s] plays=%d\n",
			t.Name, t.Artist.Name, t.Genre, t.Duration(), t.Kind(), t.PlayCount)
	}
}

func play(ctx context.Context, client *rest.Client, trackName string) {
	res, err := client.Play(ctx, trackName)
	exitOnError(err)
	printPlay(res)
}

func listPlaylists(ctx context.Context, client *rest.Client) {
	playlists, err := client.Playlists(ctx)
	exitOnError(err)

	fmt.Printf("Playlists (%d):\n", len(playlists))
	for _, p := range playlists {
		visibility := "private"
		if p.Public {
			visibility = "public"
		}
		fmt.Printf("  %s (%s, %s, owner %s, %d tracks)\n", p.Name, p.Kind, visibility, p.Owner, len(p.Tracks))
	}
}

func navigate(ctx context.Context, client *rest.Client, playlistName, step string) {
	res, err := client.Navigate(ctx, playlistName, step)
	exitOnError(err)
	printPlay(res)
}

func upgrade(ctx context.Context, client *rest.Client) {
	var out struct {
		Plan   string `json:"plan"`
		Points int    `json:"points"`
	}
	exitOnError(client.Do(ctx, http.MethodPost, "/me/upgrade", nil, &out))
	fmt.Printf("Plan is now %s (%d points)\n", out.Plan, out.Points)
}

func printPlay(res catalog.PlayResult) {
	fmt.Print(res.Presentation)
	if !strings.HasSuffix(res.Presentation, "\n") {
		fmt.Println()
	}
	fmt.Printf("+%d points (total %d)\n", res.PointsAwarded, res.Points)
}
