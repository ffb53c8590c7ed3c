// ABOUTME: Google login command for the Gemini extractor
// ABOUTME: Runs the browser OAuth flow and saves the token in the data directory
package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"

	"github.com/harperreed/leasebook/extract"
)

// AuthCommand runs the OAuth flow and stores the token under dataDir so
// the gemini extractor can run without an API key.
func AuthCommand(ctx context.Context, dataDir string, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("auth", flag.ContinueOnError)
	port := fs.Int("port", 8085, "Local port for the OAuth callback")
	timeout := fs.Duration("timeout", 5*time.Minute, "How long to wait for the browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config, err := extract.NewOAuthConfig(fmt.Sprintf("http://localhost:%d/oauth/callback", *port))
	if err != nil {
		return err
	}

	state, err := newOAuthState()
	if err != nil {
		return err
	}

	callbackChan := make(chan *oauth2.Token, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle("/oauth/callback", callbackHandler(config, state, callbackChan, errChan))

	server := &http.Server{Addr: fmt.Sprintf(":%d", *port), Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(errChan, err)
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintln(out, "Opening browser for Google OAuth...")
	fmt.Fprintf(out, "\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)
	_ = openBrowser(authURL)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	select {
	case token := <-callbackChan:
		path := extract.TokenPath(dataDir)
		if err := extract.SaveToken(path, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Fprintln(out, "✓ Authenticated successfully")
		fmt.Fprintf(out, "✓ Token saved to %s\n", path)
		return nil
	case err := <-errChan:
		return fmt.Errorf("OAuth flow failed: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("OAuth flow failed: %w", ctx.Err())
	}
}

// tokenExchanger is the part of oauth2.Config the callback needs.
type tokenExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// callbackHandler finishes the OAuth flow. Requests whose state does not
// match are rejected without touching the code.
func callbackHandler(config tokenExchanger, state string, tokens chan<- *oauth2.Token, errs chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "Invalid OAuth state.", http.StatusBadRequest)
			report(errs, fmt.Errorf("OAuth state mismatch"))
			return
		}
		if reason := q.Get("error"); reason != "" {
			http.Error(w, "Authorization denied: "+reason, http.StatusBadRequest)
			report(errs, fmt.Errorf("authorization denied: %s", reason))
			return
		}

		code := q.Get("code")
		if code == "" {
			http.Error(w, "No authorization code received.", http.StatusBadRequest)
			report(errs, fmt.Errorf("no authorization code received"))
			return
		}

		token, err := config.Exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "Failed to exchange authorization code.", http.StatusBadGateway)
			report(errs, fmt.Errorf("failed to exchange code: %w", err))
			return
		}

		select {
		case tokens <- token:
		default:
		}
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	}
}

// report sends err unless an earlier failure is already waiting.
func report(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
	}
}

// newOAuthState returns a random value tying the callback to this login.
func newOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// openBrowser attempts to open url in the default browser.
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
