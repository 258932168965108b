package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Itecs-company/Obed-micro/internal/config"
)

// tokenFilePath returns the path to the stored session token file.
func tokenFilePath() (string, error) {
	base, err := config.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "auth", "token.json"), nil
}

// Login authenticates against the ledger service with username/password
// and returns a bearer token. The token's expiry is read from the JWT's
// exp claim so stale sessions are detected without a round trip.
func Login(ctx context.Context, baseURL, username, password string, timeout time.Duration) (*oauth2.Token, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := &http.Client{Timeout: timeout}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &detail)
		if detail.Detail != "" {
			return nil, fmt.Errorf("login failed (%d): %s", resp.StatusCode, detail.Detail)
		}
		return nil, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("login response contained no access token")
	}

	return &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		Expiry:      tokenExpiry(tr.AccessToken),
	}, nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature (the server verifies; we only need the timestamp). Returns
// the zero time when the claim is absent or unreadable, which oauth2
// treats as "never expires".
func tokenExpiry(raw string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// LoadToken loads the saved session token from disk. Returns (nil, nil)
// when no token has been saved yet.
func LoadToken() (*oauth2.Token, error) {
	path, err := tokenFilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to log in again): %w", path, err)
	}
	return &tok, nil
}

// SaveToken persists a session token to disk.
func SaveToken(tok *oauth2.Token) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// CurrentToken loads the saved token and verifies it is still usable.
func CurrentToken() (*oauth2.Token, error) {
	tok, err := LoadToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf("not logged in; run: obed login")
	}
	if !tok.Valid() {
		return nil, fmt.Errorf("session expired; run: obed login")
	}
	return tok, nil
}
