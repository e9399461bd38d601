package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rosterpost/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.Posting{
		GraphBaseURL:   serverURL,
		AccessToken:    "token-123",
		BusinessID:     "17890000000000000",
		RequestTimeout: 5,
	}, nil)
}

func TestPublishTwoStep(t *testing.T) {
	var steps []string
	mux := http.NewServeMux()
	mux.HandleFunc("/17890000000000000/media", func(w http.ResponseWriter, r *http.Request) {
		steps = append(steps, "create")
		if got := r.FormValue("image_url"); got != "https://img.example.org/mugshot_doe_1a2b3c4d.jpg" {
			t.Errorf("image_url = %q", got)
		}
		if got := r.FormValue("caption"); !strings.Contains(got, "NAME: DOE, JOHN") {
			t.Errorf("caption = %q", got)
		}
		if got := r.FormValue("access_token"); got != "token-123" {
			t.Errorf("access_token = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"container-1"}`)
	})
	mux.HandleFunc("/17890000000000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
		steps = append(steps, "commit")
		if got := r.FormValue("creation_id"); got != "container-1" {
			t.Errorf("creation_id = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"post-9"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	postID, err := client.Publish(context.Background(),
		"https://img.example.org/mugshot_doe_1a2b3c4d.jpg", "NAME: DOE, JOHN\nBAIL: N/A")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if postID != "post-9" {
		t.Fatalf("post id = %q", postID)
	}
	if len(steps) != 2 || steps[0] != "create" || steps[1] != "commit" {
		t.Fatalf("steps = %v", steps)
	}
}

func TestPublishCreateFailureSkipsCommit(t *testing.T) {
	commits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/17890000000000000/media", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid OAuth access token"}}`, http.StatusBadRequest)
	})
	mux.HandleFunc("/17890000000000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
		commits++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Publish(context.Background(), "https://img.example.org/x.jpg", "caption")
	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("expected *PublishError, got %v", err)
	}
	if pubErr.Stage != StageCreate {
		t.Fatalf("stage = %q", pubErr.Stage)
	}
	if pubErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("status = %d", pubErr.HTTPStatus)
	}
	if !strings.Contains(pubErr.Body, "Invalid OAuth access token") {
		t.Fatalf("body = %q", pubErr.Body)
	}
	if commits != 0 {
		t.Fatal("commit must not run after a failed create")
	}
}

func TestPublishCommitFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/17890000000000000/media", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"container-1"}`)
	})
	mux.HandleFunc("/17890000000000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Media not ready"}}`, http.StatusConflict)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Publish(context.Background(), "https://img.example.org/x.jpg", "caption")
	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("expected *PublishError, got %v", err)
	}
	if pubErr.Stage != StageCommit {
		t.Fatalf("stage = %q", pubErr.Stage)
	}
}

func TestPublishMissingContainerID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Publish(context.Background(), "https://img.example.org/x.jpg", "caption")
	var pubErr *PublishError
	if !errors.As(err, &pubErr) || pubErr.Stage != StageCreate {
		t.Fatalf("expected create-stage error, got %v", err)
	}
}

func TestImageURL(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"https://img.example.org", "/data/mugshots/mugshot_doe_1a2b3c4d.jpg", "https://img.example.org/mugshot_doe_1a2b3c4d.jpg"},
		{"https://img.example.org/", "mugshot_doe_1a2b3c4d.jpg", "https://img.example.org/mugshot_doe_1a2b3c4d.jpg"},
		{"", "mugshot.jpg", ""},
	}
	for _, tc := range cases {
		if got := ImageURL(tc.base, tc.path); got != tc.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestTestModePublishes(t *testing.T) {
	publisher := NewTestMode(nil)
	id, err := publisher.Publish(context.Background(), "https://img.example.org/x.jpg", "caption")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.HasPrefix(id, "test-") {
		t.Fatalf("post id = %q", id)
	}
}
