package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"demosongs/internal/catalog"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := catalog.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := catalog.New("key", " "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestUploadsPlaylistID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "key" || q.Get("part") != "contentDetails" || q.Get("id") != "UC1" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"UC1","contentDetails":{"relatedPlaylists":{"uploads":"UU1"}}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("key", server.URL+"/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	got, err := client.UploadsPlaylistID(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("UploadsPlaylistID returned error: %v", err)
	}
	if got != "UU1" {
		t.Fatalf("expected UU1, got %q", got)
	}
}

func TestUploadsPlaylistIDUnknownChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.UploadsPlaylistID(context.Background(), "UCmissing")
	if !errors.Is(err, catalog.ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestPlaylistItemsFollowsPages(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("playlistId") != "UU1" || q.Get("maxResults") != "2" || q.Get("part") != "snippet" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		tokens = append(tokens, q.Get("pageToken"))
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("pageToken") {
		case "":
			_, _ = w.Write([]byte(`{"nextPageToken":"p2","items":[
				{"snippet":{"channelId":"UC1","title":"One [SOUND DEMO]","description":"a\r\nb","position":0,"publishedAt":"2023-01-02T03:04:05Z","resourceId":{"videoId":"v1"}}},
				{"snippet":{"channelId":"UC1","title":"Two","description":"c","position":1,"resourceId":{"videoId":"v2"}}}
			]}`))
		case "p2":
			_, _ = w.Write([]byte(`{"items":[
				{"snippet":{"channelId":"UC1","title":"Café","description":"x\ry","position":2,"resourceId":{"videoId":"v3"}}}
			]}`))
		default:
			t.Errorf("unexpected page token %q", q.Get("pageToken"))
		}
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("key", server.URL, catalog.WithPageSize(2), catalog.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	videos, err := client.PlaylistItems(context.Background(), "UU1")
	if err != nil {
		t.Fatalf("PlaylistItems returned error: %v", err)
	}
	if strings.Join(tokens, ",") != ",p2" {
		t.Fatalf("unexpected page tokens %q", tokens)
	}
	if len(videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(videos))
	}
	if videos[0].ID != "v1" || videos[0].Description != "a\nb" || videos[0].PublishedAt.Year() != 2023 {
		t.Fatalf("unexpected first video: %#v", videos[0])
	}
	if !videos[1].PublishedAt.IsZero() {
		t.Fatalf("missing publishedAt should be zero, got %v", videos[1].PublishedAt)
	}
	if videos[2].Title != "Café" || videos[2].Description != "x\ny" || videos[2].Position != 2 {
		t.Fatalf("unexpected normalized video: %#v", videos[2])
	}
}

func TestPlaylistItemsReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota."}}`))
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.PlaylistItems(context.Background(), "UU1")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "exceeded your quota") {
		t.Fatalf("expected status and api message in error, got %v", err)
	}
}

func TestPlaylistItemsHonorsCanceledContext(t *testing.T) {
	client, err := catalog.New("key", "http://127.0.0.1:1", catalog.WithRateLimit(1))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.PlaylistItems(ctx, "UU1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithTimeoutLeavesHTTPClientUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	httpClient := &http.Client{}
	client, err := catalog.New("key", server.URL,
		catalog.WithHTTPClient(httpClient),
		catalog.WithTimeout(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if httpClient.Timeout != 0 {
		t.Fatalf("expected caller client timeout to stay 0, got %v", httpClient.Timeout)
	}
	if _, err := client.UploadsPlaylistID(context.Background(), "UC1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"a\r\nb\rc\n":   "a\nb\nc\n",
		"cafe\u0301":    "caf\u00e9",
		"caf\u00e9\r\n": "caf\u00e9\n",
	}
	for in, want := range cases {
		if got := catalog.NormalizeText(in); got != want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}
