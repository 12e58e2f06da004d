package lanyard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testUserID = "123456789012345678"

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, timeout, zerolog.Nop()), ts
}

func TestClient_GetPresence_Success(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"discord_user": {"username": "alice", "id": "123456789012345678", "discriminator": "0"},
				"discord_status": "online",
				"active_on_discord_desktop": true,
				"active_on_discord_mobile": false,
				"listening_to_spotify": true,
				"spotify": {
					"song": "Song",
					"artist": "Artist",
					"album": "Album",
					"album_art_url": "https://i.scdn.co/image/abc",
					"track_id": "track123",
					"timestamps": {"start": 1700000000000}
				},
				"activities": [{"name": "Game A", "type": 0}],
				"kv": {"b": "2", "a": "1"}
			}
		}`))
	}, 0)

	data, err := client.GetPresence(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetPresence failed: %v", err)
	}

	if gotPath != "/users/"+testUserID {
		t.Errorf("Expected request path /users/%s, got %s", testUserID, gotPath)
	}
	if data.DiscordUser == nil || data.DiscordUser.Username != "alice" {
		t.Errorf("Expected username alice, got %+v", data.DiscordUser)
	}
	if data.DiscordStatus != "online" {
		t.Errorf("Expected status online, got %q", data.DiscordStatus)
	}
	if !data.ActiveOnDiscordDesktop || data.ActiveOnDiscordMobile {
		t.Error("Device flags decoded incorrectly")
	}
	if data.Spotify == nil || data.Spotify.Song == nil || *data.Spotify.Song != "Song" {
		t.Errorf("Spotify record decoded incorrectly: %+v", data.Spotify)
	}
	if data.Spotify.Timestamps == nil || data.Spotify.Timestamps.Start == nil || *data.Spotify.Timestamps.Start != 1700000000000 {
		t.Errorf("Spotify timestamps decoded incorrectly: %+v", data.Spotify.Timestamps)
	}
	if data.Spotify.Timestamps.End != nil {
		t.Error("Absent end timestamp should decode to nil")
	}
	if len(data.Activities) != 1 || data.Activities[0].Name == nil || *data.Activities[0].Name != "Game A" {
		t.Errorf("Activities decoded incorrectly: %+v", data.Activities)
	}
	if data.Activities[0].Details != nil || data.Activities[0].State != nil {
		t.Error("Absent details/state should decode to nil")
	}
}

func TestClient_GetPresence_KVPreservesDocumentOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"kv": {"zebra": "1", "apple": "2", "mango": "3"}}}`))
	}, 0)

	data, err := client.GetPresence(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetPresence failed: %v", err)
	}

	wantOrder := []string{"zebra", "apple", "mango"}
	var gotOrder []string
	for pair := data.KV.Oldest(); pair != nil; pair = pair.Next() {
		gotOrder = append(gotOrder, pair.Key)
	}

	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("Expected %d KV entries, got %d", len(wantOrder), len(gotOrder))
	}
	for i, key := range wantOrder {
		if gotOrder[i] != key {
			t.Errorf("KV entry %d: expected key %q, got %q", i, key, gotOrder[i])
		}
	}
}

func TestClient_GetPresence_MissingDataObject(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}, 0)

	data, err := client.GetPresence(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetPresence failed: %v", err)
	}
	if data == nil {
		t.Fatal("Expected empty presence record, got nil")
	}
	if data.DiscordUser != nil || data.Spotify != nil || data.KVLen() != 0 {
		t.Errorf("Expected empty presence record, got %+v", data)
	}
}

func TestClient_GetPresence_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		body           string
		wantCode       string
		wantStatusCode int
	}{
		{
			name:           "404 maps to not found",
			statusCode:     http.StatusNotFound,
			body:           `{"success": false}`,
			wantCode:       ErrNotFound,
			wantStatusCode: 404,
		},
		{
			name:           "429 maps to rate limited",
			statusCode:     http.StatusTooManyRequests,
			body:           ``,
			wantCode:       ErrRateLimited,
			wantStatusCode: 429,
		},
		{
			name:           "500 maps to http error",
			statusCode:     http.StatusInternalServerError,
			body:           ``,
			wantCode:       ErrHTTPStatus,
			wantStatusCode: 500,
		},
		{
			name:           "503 maps to http error",
			statusCode:     http.StatusServiceUnavailable,
			body:           ``,
			wantCode:       ErrHTTPStatus,
			wantStatusCode: 503,
		},
		{
			name:       "success false maps to unsuccessful",
			statusCode: http.StatusOK,
			body:       `{"success": false}`,
			wantCode:   ErrUnsuccessful,
		},
		{
			name:       "missing success field maps to unsuccessful",
			statusCode: http.StatusOK,
			body:       `{"data": {}}`,
			wantCode:   ErrUnsuccessful,
		},
		{
			name:       "malformed body maps to transport error",
			statusCode: http.StatusOK,
			body:       `{not json`,
			wantCode:   ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}, 0)

			_, err := client.GetPresence(context.Background(), testUserID)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, apiErr.Code)
			}
			if tt.wantStatusCode != 0 && apiErr.StatusCode != tt.wantStatusCode {
				t.Errorf("Expected status code %d, got %d", tt.wantStatusCode, apiErr.StatusCode)
			}
		})
	}
}

func TestClient_GetPresence_Timeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"success": true, "data": {}}`))
	}, 50*time.Millisecond)

	_, err := client.GetPresence(context.Background(), testUserID)
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != ErrTimeout {
		t.Errorf("Expected code %s, got %s", ErrTimeout, apiErr.Code)
	}
}

func TestClient_GetPresence_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"success": true, "data": {}}`))
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.GetPresence(ctx, testUserID)
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("Expected error after cancellation, got nil")
		}
	case <-time.After(time.Second):
		t.Fatal("GetPresence did not return after context cancellation")
	}
}

func TestClient_GetPresence_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewClient(ts.URL, 0, zerolog.Nop())

	_, err := client.GetPresence(context.Background(), testUserID)
	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != ErrTransport {
		t.Errorf("Expected code %s, got %s", ErrTransport, apiErr.Code)
	}
	if apiErr.Unwrap() == nil {
		t.Error("Expected transport error to carry its cause")
	}
}

func TestClient_Defaults(t *testing.T) {
	client := NewClient("", 0, zerolog.Nop())

	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}
}
