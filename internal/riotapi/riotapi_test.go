package riotapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeCreds struct {
	mu  sync.Mutex
	key string
}

func (creds *fakeCreds) SharedToken(service string) (string, error) {
	creds.mu.Lock()
	defer creds.mu.Unlock()
	if service != CredentialService {
		return "", fmt.Errorf("unexpected service %s", service)
	}
	return creds.key, nil
}

func (creds *fakeCreds) set(key string) {
	creds.mu.Lock()
	creds.key = key
	creds.mu.Unlock()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&fakeCreds{key: "test-key"}, 5*time.Second).WithBaseURL(server.URL)
}

func TestLookupSummoner(t *testing.T) {

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
		wantStatus int
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			body:       `{"puuid":"P1","accountId":"A1","id":"S1"}`,
		},
		{
			name:       "summoner does not exist",
			statusCode: http.StatusNotFound,
			body:       `{}`,
			wantErr:    ErrNotFound,
		},
		{
			name:       "invalid api key",
			statusCode: http.StatusUnauthorized,
			body:       `{}`,
			wantErr:    ErrCredentialInvalid,
		},
		{
			name:       "provider failure",
			statusCode: http.StatusServiceUnavailable,
			body:       `{}`,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "missing identifier",
			statusCode: http.StatusOK,
			body:       `{"puuid":"P1","accountId":"A1"}`,
			wantErr:    ErrMalformedResponse,
		},
		{
			name:       "body is not json",
			statusCode: http.StatusOK,
			body:       `<html>maintenance</html>`,
			wantErr:    ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("api_key") != "test-key" {
					t.Errorf("missing api_key query parameter")
				}
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, tt.body)
			})

			summoner, err := client.LookupSummoner(context.Background(), "Faker", "kr")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LookupSummoner() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantStatus != 0 {
				var provErr *ProviderError
				if !errors.As(err, &provErr) || provErr.Status != tt.wantStatus {
					t.Fatalf("LookupSummoner() error = %v, want provider error with status %d", err, tt.wantStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupSummoner() failed: %v", err)
			}
			if summoner.Puuid != "P1" || summoner.AccountId != "A1" || summoner.SummonerId != "S1" {
				t.Errorf("unexpected summoner %+v", summoner)
			}
			if summoner.Name != "Faker" || summoner.Region != "kr" {
				t.Errorf("unexpected name or region in %+v", summoner)
			}
		})
	}
}

func TestLookupSummonerEncodesName(t *testing.T) {

	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"puuid":"P1","accountId":"A1","id":"S1"}`)
	})

	if _, err := client.LookupSummoner(context.Background(), "hide on bush", "kr"); err != nil {
		t.Fatalf("LookupSummoner() failed: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/hide%20on%20bush") {
		t.Errorf("summoner name was not url encoded, path = %s", gotPath)
	}
}

func TestLookupSummonerInvalidRegion(t *testing.T) {

	client := NewClient(&fakeCreds{key: "test-key"}, time.Second)
	if _, err := client.LookupSummoner(context.Background(), "Faker", "narnia"); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("LookupSummoner() error = %v, want ErrInvalidRegion", err)
	}
}

func TestActiveGame(t *testing.T) {

	t.Run("in a game", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"gameId":4800000001,"gameStartTime":1000}`)
		})
		game, err := client.ActiveGame(context.Background(), "S1", "kr")
		if err != nil {
			t.Fatalf("ActiveGame() failed: %v", err)
		}
		if game == nil || game.GameId != 4800000001 {
			t.Fatalf("unexpected game %+v", game)
		}
		if game.StartTime != time.UnixMilli(1000) {
			t.Errorf("StartTime = %v, want %v", game.StartTime, time.UnixMilli(1000))
		}
	})

	t.Run("404 means not in game, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		game, err := client.ActiveGame(context.Background(), "S1", "kr")
		if err != nil {
			t.Fatalf("ActiveGame() error = %v, want nil", err)
		}
		if game != nil {
			t.Fatalf("ActiveGame() = %+v, want nil", game)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.ActiveGame(context.Background(), "S1", "kr")
		var provErr *ProviderError
		if !errors.As(err, &provErr) || provErr.Status != http.StatusInternalServerError {
			t.Fatalf("ActiveGame() error = %v, want provider error 500", err)
		}
	})
}

func TestCredential(t *testing.T) {

	t.Run("missing key", func(t *testing.T) {
		client := NewClient(&fakeCreds{}, time.Second)
		_, err := client.ActiveGame(context.Background(), "S1", "kr")
		if !errors.Is(err, ErrCredentialMissing) {
			t.Fatalf("ActiveGame() error = %v, want ErrCredentialMissing", err)
		}
	})

	t.Run("refresh swaps the cached key", func(t *testing.T) {
		creds := &fakeCreds{key: "old-key"}
		var gotKeys []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKeys = append(gotKeys, r.URL.Query().Get("api_key"))
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()
		client := NewClient(creds, time.Second).WithBaseURL(server.URL)

		if _, err := client.ActiveGame(context.Background(), "S1", "kr"); err != nil {
			t.Fatalf("ActiveGame() failed: %v", err)
		}
		creds.set("new-key")
		if err := client.RefreshCredential(); err != nil {
			t.Fatalf("RefreshCredential() failed: %v", err)
		}
		if _, err := client.ActiveGame(context.Background(), "S1", "kr"); err != nil {
			t.Fatalf("ActiveGame() failed: %v", err)
		}

		if len(gotKeys) != 2 || gotKeys[0] != "old-key" || gotKeys[1] != "new-key" {
			t.Errorf("api keys seen by the server = %v, want [old-key new-key]", gotKeys)
		}
	})
}

func TestTransportError(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(&fakeCreds{key: "test-key"}, time.Second).WithBaseURL(server.URL)
	_, err := client.ActiveGame(context.Background(), "S1", "kr")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("ActiveGame() error = %v, want a transport error", err)
	}
}
