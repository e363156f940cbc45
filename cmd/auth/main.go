// Package main provides the Spotify authorization tool used to obtain the
// refresh token the server needs for playlist ingest.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

const refreshTokenEnv = "SPOTIFY_REFRESH_TOKEN"

var (
	app          = kingpin.New("spotifum-auth", "Obtain a Spotify refresh token for SpotifUM playlist ingest")
	clientID     = app.Flag("client-id", "Spotify Client ID").Envar("SPOTIFY_CLIENT_ID").Required().String()
	clientSecret = app.Flag("client-secret", "Spotify Client Secret").Envar("SPOTIFY_CLIENT_SECRET").Required().String()
	port         = app.Flag("port", "Callback server port").Default("8888").Int()
	timeout      = app.Flag("timeout", "How long to wait for the browser callback").Default("5m").Duration()
	envFile      = app.Flag("env-file", "Store the refresh token in this dotenv file").String()
)

// callback receives the authorization redirect and hands the token over.
type callback struct {
	auth   *spotifyauth.Authenticator
	state  string
	tokens chan *oauth2.Token
	errs   chan error
}

func (c *callback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if st := r.FormValue("state"); st != c.state {
		http.Error(w, "State mismatch", http.StatusForbidden)
		c.errs <- errors.Newf("state mismatch: got %q", st)
		return
	}

	token, err := c.auth.Token(r.Context(), c.state, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusForbidden)
		c.errs <- errors.Wrap(err, "failed to exchange code")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, donePage)
	c.tokens <- token
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	token, err := authorize()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Authorization Successful ===")
	fmt.Println()

	if *envFile != "" {
		if err := storeToken(*envFile, token.RefreshToken); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s written to %s\n", refreshTokenEnv, *envFile)
		return
	}

	fmt.Println("Refresh Token:")
	fmt.Println(token.RefreshToken)
	fmt.Println()
	fmt.Println("Set it in server.yaml under spotify.refresh_token, or export it:")
	fmt.Printf("export %s=\"%s\"\n", refreshTokenEnv, token.RefreshToken)
}

func authorize() (*oauth2.Token, error) {
	cb := &callback{
		auth: spotifyauth.New(
			spotifyauth.WithRedirectURL(fmt.Sprintf("http://127.0.0.1:%d/callback", *port)),
			spotifyauth.WithClientID(*clientID),
			spotifyauth.WithClientSecret(*clientSecret),
			spotifyauth.WithScopes(spotifyauth.ScopePlaylistReadPrivate),
		),
		state:  uuid.NewString(),
		tokens: make(chan *oauth2.Token, 1),
		errs:   make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.Handle("/callback", cb)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cb.errs <- errors.Wrap(err, "callback server failed")
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	fmt.Println("Please visit the following URL to authorize SpotifUM:")
	fmt.Println()
	fmt.Println(cb.auth.AuthURL(cb.state))
	fmt.Println()
	fmt.Println("Waiting for authorization...")

	select {
	case token := <-cb.tokens:
		return token, nil
	case err := <-cb.errs:
		return nil, err
	case <-time.After(*timeout):
		return nil, errors.Newf("no authorization received within %s", *timeout)
	}
}

// storeToken sets the refresh token in a dotenv file, keeping its other entries.
func storeToken(path, refreshToken string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		env = map[string]string{}
	}
	env[refreshTokenEnv] = refreshToken
	if err := godotenv.Write(env, path); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

const donePage = `<!DOCTYPE html>
<html>
<head>
    <title>SpotifUM - Authorization Complete</title>
    <style>
        body { font-family: sans-serif; text-align: center; padding-top: 20vh; background: #191414; color: white; }
    </style>
</head>
<body>
    <h1>Authorization Complete</h1>
    <p>You can close this window and return to the terminal.</p>
</body>
</html>
`
