// ABOUTME: Google OAuth login for the Gemini extractor
// ABOUTME: Builds the OAuth config from env, and saves and reloads tokens in the data dir
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenFileName is the saved login inside the data directory.
const TokenFileName = "google-token.json"

// generativeLanguageScope grants access to the Gemini API.
const generativeLanguageScope = "https://www.googleapis.com/auth/generative-language.retriever"

// ErrNoClientCredentials means GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET is unset.
var ErrNoClientCredentials = errors.New("google OAuth credentials not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")

// NewOAuthConfig reads the OAuth client from GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET. Users create the client in Google Cloud Console.
func NewOAuthConfig(redirectURL string) (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, ErrNoClientCredentials
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/cloud-platform",
			generativeLanguageScope,
		},
		Endpoint: google.Endpoint,
	}, nil
}

// TokenPath is where the login for dataDir is kept.
func TokenPath(dataDir string) string {
	return filepath.Join(dataDir, TokenFileName)
}

// SaveToken writes token to path with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

// LoadToken reads a token saved by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

// SavedTokenSource returns a refreshing token source for the login saved
// under dataDir, or nil when there is no usable login.
func SavedTokenSource(ctx context.Context, dataDir string) oauth2.TokenSource {
	token, err := LoadToken(TokenPath(dataDir))
	if err != nil {
		return nil
	}
	cfg, err := NewOAuthConfig("")
	if err != nil {
		// Without client credentials the token cannot be refreshed, but it
		// is still good until it expires.
		return oauth2.StaticTokenSource(token)
	}
	return cfg.TokenSource(ctx, token)
}
