package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Itecs-company/Obed-micro/internal/api"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "admin", "exp": expiry.Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestLoginReadsExpiryFromToken(t *testing.T) {
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw := signedToken(t, expiry)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("request = %s %s, want POST /auth/login", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["username"] != "admin" || body["password"] != "secret" {
			t.Errorf("credentials = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": raw,
			"token_type":   "bearer",
		})
	}))
	defer server.Close()

	tok, err := api.Login(context.Background(), server.URL, "admin", "secret", 5*time.Second)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok.AccessToken != raw {
		t.Error("access token not preserved")
	}
	if !tok.Expiry.Equal(expiry) {
		t.Errorf("expiry = %v, want %v (from JWT exp claim)", tok.Expiry, expiry)
	}
	if !tok.Valid() {
		t.Error("fresh token reported invalid")
	}
}

func TestLoginSurfacesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
	}))
	defer server.Close()

	_, err := api.Login(context.Background(), server.URL, "admin", "wrong", 5*time.Second)
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "bad credentials") {
		t.Errorf("error = %q, want server detail", err)
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer server.Close()

	_, err := api.Login(context.Background(), server.URL, "admin", "secret", 5*time.Second)
	if err == nil {
		t.Fatal("expected error for missing access token")
	}
}
