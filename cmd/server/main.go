// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/api/rest"
	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/app/filter"
	"github.com/osa030/spotifum/internal/app/importer"
	"github.com/osa030/spotifum/internal/app/ingest"
	"github.com/osa030/spotifum/internal/domain/track"
	"github.com/osa030/spotifum/internal/infra/config"
	"github.com/osa030/spotifum/internal/infra/logger"
	"github.com/osa030/spotifum/internal/infra/snapshot"
	"github.com/osa030/spotifum/internal/infra/spotify"
)

var (
	app        = kingpin.New("spotifum-server", "SpotifUM music service server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-genres command
	listGenresCmd = app.Command("list-genres", "List known genres and exit")

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available ingest filters and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case listGenresCmd.FullCommand():
		printGenres()
		return
	case listFiltersCmd.FullCommand():
		printFilters()
		return
	}

	loggerConfig := logger.Config{
		Output:  "stdout",
		Level:   "info",
		Service: "spotifum",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closer.Close()

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %+v", err)
		closer.Close()
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to open snapshot store")
	}
	defer store.Close()

	c, err := loadCatalog(ctx, cfg, store)
	if err != nil {
		return err
	}

	opts := []rest.Option{rest.WithSnapshots(store)}
	if cfg.Spotify.Enabled() {
		ingestor, err := newIngestor(ctx, cfg, c)
		if err != nil {
			return err
		}
		opts = append(opts, rest.WithPlaylistImporter(ingestor))
	} else {
		zlog.Info().Msg("Spotify credentials not configured, playlist ingest disabled")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           rest.NewServer(c, cfg.Admin.Token, opts...).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	autosaveCtx, stopAutosave := context.WithCancel(ctx)
	autosaveDone := make(chan struct{})
	go func() {
		defer close(autosaveDone)
		autosave(autosaveCtx, c, store, time.Duration(cfg.Snapshot.AutosaveIntervalSec)*time.Second)
	}()

	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		runErr = errors.Wrap(err, "server error")
	}

	stopAutosave()
	<-autosaveDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	if err := store.Save(shutdownCtx, c.State()); err != nil {
		zlog.Error().Msgf("Failed to save snapshot: location=%s err=%v", store.Location(), err)
	} else {
		zlog.Info().Msgf("Snapshot saved: location=%s", store.Location())
	}

	zlog.Info().Msg("Server stopped")
	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return runErr
}

// loadCatalog restores the last snapshot. Without one it starts empty and
// runs the configured seed script.
func loadCatalog(ctx context.Context, cfg *config.Config, store snapshot.Store) (*catalog.Catalog, error) {
	opts := []catalog.Option{catalog.WithPasswordCost(cfg.Catalog.PasswordCost)}

	state, err := store.Load(ctx)
	switch {
	case err == nil:
		c, err := catalog.NewFromState(state, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to restore snapshot from %s", store.Location())
		}
		zlog.Info().Msgf("Catalog restored: location=%s users=%d tracks=%d playlists=%d",
			store.Location(), len(state.Users), len(state.Tracks), len(state.Playlists))
		return c, nil
	case errors.Is(err, snapshot.ErrNoSnapshot):
		zlog.Info().Msgf("No snapshot found: location=%s", store.Location())
	default:
		return nil, errors.Wrap(err, "failed to load snapshot")
	}

	c := catalog.New(opts...)
	if cfg.Script.Path == "" {
		return c, nil
	}

	im := importer.New(c, importer.WithDefaultRandomSize(cfg.Catalog.DefaultRandomSize))
	report, err := im.RunFile(ctx, cfg.Script.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run seed script")
	}
	for _, f := range report.Failures {
		zlog.Warn().Msgf("Seed script line failed: line=%d text=%q err=%v", f.Line, f.Text, f.Err)
	}
	zlog.Info().Msgf("Seed script applied: path=%s executed=%d skipped=%d failed=%d",
		cfg.Script.Path, report.Executed, report.Skipped, report.Failed())
	return c, nil
}

func newIngestor(ctx context.Context, cfg *config.Config, c *catalog.Catalog) (*ingest.Ingestor, error) {
	client, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
		Market:       cfg.Spotify.Market,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Spotify client")
	}

	chain, err := ingest.NewResolverChainFromConfig(cfg.Ingest, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genre resolvers")
	}

	filters, err := filter.NewChainFromConfig(cfg.Ingest.Filters)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ingest filters")
	}
	for _, f := range filters.Filters() {
		zlog.Info().Msgf("Ingest filter enabled: name=%s", f.Name())
	}

	return ingest.New(c, client, chain,
		ingest.WithDefaultCountry(cfg.Ingest.DefaultCountry),
		ingest.WithExplicitMinimumAge(cfg.Ingest.ExplicitMinimumAge),
		ingest.WithFilter(filters),
	), nil
}

// autosave saves the catalog every interval until ctx is done. A zero interval disables it.
func autosave(ctx context.Context, c *catalog.Catalog, store snapshot.Store, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Save(ctx, c.State()); err != nil {
				zlog.Warn().Msgf("Autosave failed: location=%s err=%v", store.Location(), err)
				continue
			}
			zlog.Debug().Msgf("Autosaved snapshot: location=%s", store.Location())
		}
	}
}

func printGenres() {
	fmt.Println("Available Genres:")
	for _, g := range track.Genres() {
		fmt.Printf("  %s\n", g)
	}
}

// printFilters prints available filters.
func printFilters() {
	registered := filter.GetRegistered()
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available Filters:")
	for _, name := range names {
		f := registered[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// sh -c keeps redirection and pipes working
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
