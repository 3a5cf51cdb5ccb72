package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Translate(t *testing.T) {
	var gotAuth string
	var gotReq request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "안녕하세요"})
	}))
	defer server.Close()

	config := DefaultClientConfig()
	config.Endpoint = server.URL
	config.APIKey = "secret"
	client := NewClientWithConfig(config)

	got, err := client.Translate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "안녕하세요" {
		t.Errorf("Translation = %q", got)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Text != "hello" || gotReq.Source != "AUTO" || gotReq.Target != "KO" {
		t.Errorf("Request = %+v", gotReq)
	}
}

// Hosted translators disagree on the result field name; every variant must
// parse.
func TestClient_ResponseFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"translatedText", `{"translatedText": "a"}`, "a"},
		{"text", `{"text": "b"}`, "b"},
		{"translation", `{"translation": "c"}`, "c"},
		{"first non-empty wins", `{"translatedText": "a", "text": "b"}`, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			got, err := client.Translate(context.Background(), "x")
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if got != tt.want {
				t.Errorf("Translation = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestClient_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Translate(context.Background(), "x")
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("Expected ErrEmptyResult, got %v", err)
	}
}

func TestClient_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Translate(context.Background(), "x")
	if err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}

func TestClient_NoEndpoint(t *testing.T) {
	client := NewClientWithConfig(DefaultClientConfig())
	_, err := client.Translate(context.Background(), "x")
	if !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("Expected ErrNoEndpoint, got %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "late"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL)
	if _, err := client.Translate(ctx, "x"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
