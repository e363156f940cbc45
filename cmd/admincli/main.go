// Package main provides the admin CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/osa030/spotifum/internal/api/rest"
	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/importer"
	"github.com/osa030/spotifum/internal/app/stats"
	"github.com/osa030/spotifum/internal/infra/config"
	"github.com/osa030/spotifum/internal/infra/snapshot"
)

var (
	app    = kingpin.New("spotifum-admincli", "SpotifUM admin client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token  = app.Flag("token", "Admin token (or set ADMIN_TOKEN env)").Envar("ADMIN_TOKEN").String()

	// list-users command
	listUsersCmd = app.Command("list-users", "List registered users").Alias("users")

	// stats command
	statsCmd  = app.Command("stats", "Show catalog statistics")
	statsFrom = statsCmd.Flag("from", "Start of the top listener window (YYYY-MM-DD)").String()
	statsTo   = statsCmd.Flag("to", "End of the top listener window (YYYY-MM-DD)").String()

	// snapshot command
	snapshotCmd = app.Command("snapshot", "Save the server state now")

	// add-artist command
	addArtistCmd     = app.Command("add-artist", "Create an artist")
	addArtistName    = addArtistCmd.Arg("name", "Artist name").Required().String()
	addArtistCountry = addArtistCmd.Arg("country", "Country of origin").Required().String()

	// import-spotify command
	importSpotifyCmd = app.Command("import-spotify", "Import a Spotify playlist into the catalog")
	importSpotifyURL = importSpotifyCmd.Arg("url", "Spotify playlist URL or ID").Required().String()

	// import-script command
	importScriptCmd    = app.Command("import-script", "Apply an admin script to the configured snapshot offline")
	importScriptPath   = importScriptCmd.Arg("script", "Script file").Required().String()
	importScriptConfig = importScriptCmd.Flag("config", "Path to config file").Default("config/server.yaml").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	ctx := context.Background()

	if command == importScriptCmd.FullCommand() {
		importScript(ctx, *importScriptConfig, *importScriptPath)
		return
	}

	if *token == "" {
		fmt.Println("Error: admin token is required (use --token or ADMIN_TOKEN env)")
		os.Exit(1)
	}
	client := rest.NewClient(*server)
	client.AdminToken = *token

	switch command {
	case listUsersCmd.FullCommand():
		listUsers(ctx, client)
	case statsCmd.FullCommand():
		showStats(ctx, client, *statsFrom, *statsTo)
	case snapshotCmd.FullCommand():
		saveSnapshot(ctx, client)
	case addArtistCmd.FullCommand():
		addArtist(ctx, client, *addArtistName, *addArtistCountry)
	case importSpotifyCmd.FullCommand():
		importSpotify(ctx, client, *importSpotifyURL)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, client *rest.Client) {
	var users []struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Points int    `json:"points"`
		Plan   string `json:"plan"`
		Role   string `json:"role"`
	}
	exitOnError(client.Do(ctx, http.MethodGet, "/admin/users", nil, &users))

	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  %s <%s> plan=%s role=%s points=%d\n", u.Name, u.Email, u.Plan, u.Role, u.Points)
	}
}

func showStats(ctx context.Context, client *rest.Client, from, to string) {
	var window stats.Window
	var err error
	if from != "" {
		window.From, err = time.Parse(time.DateOnly, from)
		exitOnError(err)
	}
	if to != "" {
		window.To, err = time.Parse(time.DateOnly, to)
		exitOnError(err)
	}

	report, err := client.Stats(ctx, window.From, window.To)
	exitOnError(err)

	fmt.Println("\n=== CATALOG STATISTICS ===")
	printEntry("Most played track", report.MostPlayedTrack)
	printEntry("Top listener", report.TopListener)
	printEntry("Most listened artist", report.MostListenedArtist)
	printEntry("Top points user", report.TopPointsUser)
	printEntry("Most played genre", report.MostPlayedGenre)
	fmt.Printf("%-22s %d\n", "Public playlists:", report.PublicPlaylists)
	printEntry("Top playlist owner", report.TopPlaylistOwner)
	fmt.Println()
}

func printEntry(label string, e *stats.Entry) {
	if e == nil {
		fmt.Printf("%-22s -\n", label+":")
		return
	}
	fmt.Printf("%-22s %s (%d)\n", label+":", e.Key, e.Value)
}

func saveSnapshot(ctx context.Context, client *rest.Client) {
	var out struct {
		Location string `json:"location"`
	}
	exitOnError(client.Do(ctx, http.MethodPost, "/admin/snapshot", nil, &out))
	fmt.Printf("Snapshot saved to %s\n", out.Location)
}

func addArtist(ctx context.Context, client *rest.Client, name, country string) {
	body := map[string]string{"name": name, "country": country}
	exitOnError(client.Do(ctx, http.MethodPost, "/admin/artists", body, nil))
	fmt.Printf("Artist created: %s (%s)\n", name, country)
}

func importSpotify(ctx context.Context, client *rest.Client, playlistURL string) {
	var out struct {
		Imported []string `json:"imported"`
		Skipped  []string `json:"skipped"`
		Filtered []struct {
			Track string `json:"track"`
			Code  string `json:"code"`
		} `json:"filtered"`
		Failures []struct {
			Track string `json:"track"`
			Error string `json:"error"`
		} `json:"failures"`
	}
	exitOnError(client.Do(ctx, http.MethodPost, "/admin/ingest", map[string]string{"url": playlistURL}, &out))

	fmt.Printf("Imported (%d):\n", len(out.Imported))
	for _, name := range out.Imported {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Skipped (%d):\n", len(out.Skipped))
	for _, name := range out.Skipped {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Filtered (%d):\n", len(out.Filtered))
	for _, f := range out.Filtered {
		fmt.Printf("  %s [%s]\n", f.Track, f.Code)
	}
	fmt.Printf("Failed (%d):\n", len(out.Failures))
	for _, f := range out.Failures {
		fmt.Printf("  %s: %s\n", f.Track, f.Error)
	}
}

// importScript loads the configured snapshot, applies the script and saves it back.
// The server must not be running against the same snapshot.
func importScript(ctx context.Context, configPath, scriptPath string) {
	cfg, err := config.Load(configPath)
	exitOnError(err)

	store, err := snapshot.Open(cfg.Snapshot)
	exitOnError(err)
	defer store.Close()

	opts := []catalog.Option{catalog.WithPasswordCost(cfg.Catalog.PasswordCost)}
	c := catalog.New(opts...)
	state, err := store.Load(ctx)
	switch {
	case err == nil:
		c, err = catalog.NewFromState(state, opts...)
		exitOnError(err)
	case errors.Is(err, snapshot.ErrNoSnapshot):
	default:
		exitOnError(err)
	}

	report, err := importer.New(c, importer.WithDefaultRandomSize(cfg.Catalog.DefaultRandomSize)).RunFile(ctx, scriptPath)
	exitOnError(err)
	for _, f := range report.Failures {
		fmt.Printf("  line %d: %v\n", f.Line, f.Err)
	}
	fmt.Printf("Executed: %d, skipped: %d, failed: %d\n", report.Executed, report.Skipped, report.Failed())

	exitOnError(store.Save(ctx, c.State()))
	fmt.Printf("Snapshot saved to %s\n", store.Location())
}
