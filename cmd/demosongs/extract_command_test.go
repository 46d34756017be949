package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"demosongs/internal/descstore"
	"demosongs/internal/songs"
	"demosongs/internal/testsupport"
)

const (
	identifierDescription = "Build notes\nSong List:\n0:00 Intro\n0:10 Lofi Beat - Artist One\n2:00 Rainy Day\n\nfooter"
	regexDescription      = "Switches: linears\n\nNujabes - Aruarian Dance\nThanks for watching"
)

func newYouTubeServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test" {
			t.Errorf("missing api key in %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/channels":
			uploads := "UU" + strings.TrimPrefix(r.URL.Query().Get("id"), "UC")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []any{map[string]any{
					"contentDetails": map[string]any{"relatedPlaylists": map[string]any{"uploads": uploads}},
				}},
			})
		case "/playlistItems":
			var items []any
			switch r.URL.Query().Get("playlistId") {
			case "UUone":
				items = []any{
					playlistItem("UCone", "v1", "Board A [SOUND DEMO]", identifierDescription),
					playlistItem("UCone", "v2", "Unrelated vlog", "Song List:\nShould Not Appear"),
				}
			case "UUtwo":
				items = []any{playlistItem("UCtwo", "v3", "[SOUND DEMO] Board B", regexDescription)}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func playlistItem(channelID, videoID, title, description string) map[string]any {
	return map[string]any{"snippet": map[string]any{
		"channelId":   channelID,
		"title":       title,
		"description": description,
		"resourceId":  map[string]any{"videoId": videoID},
	}}
}

func TestExtractOnlineWritesSongsAndCache(t *testing.T) {
	server := newYouTubeServer(t)
	env := setupCLITestEnv(t,
		testsupport.WithYouTubeServer(server.URL),
		testsupport.WithChannels("UCone", "UCtwo"),
	)

	out, _, err := runCLI(t, []string{"extract"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, "Wrote 3 titles to "+env.cfg.Paths.OutputFile)
	requireContains(t, out, "identifier\t1\n")
	requireContains(t, out, "regex_list\t1\n")
	requireContains(t, out, "excluded\t1\n")

	got := testsupport.ReadFile(t, env.cfg.Paths.OutputFile)
	if got != "Lofi Beat - Artist One\nRainy Day\nNujabes - Aruarian Dance" {
		t.Fatalf("unexpected songs file %q", got)
	}

	out, _, err = runCLI(t, []string{"cache", "stats"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "descriptions\t2\n")
	requireContains(t, out, "UCone\t1\n")
	requireContains(t, out, "UCtwo\t1\n")
}

func TestExtractOfflineUsesSeededCache(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedCache(t, store, "seed-run", testsupport.Videos(nil, regexDescription))
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	target := filepath.Join(env.baseDir, "custom", "offline.txt")
	out, _, err := runCLI(t, []string{"extract", "--offline", "--output", target, "--dump"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("extract --offline: %v", err)
	}
	requireContains(t, out, "Wrote 1 titles to "+target)
	requireContains(t, out, "source\tcache\n")
	if got := testsupport.ReadFile(t, target); got != "Nujabes - Aruarian Dance" {
		t.Fatalf("unexpected songs file %q", got)
	}
	testsupport.ReadFile(t, filepath.Join(env.cfg.Paths.DebugDir, "bad", "1", "0.txt"))
}

func TestExtractOfflineEmptyCache(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"extract", "--offline"}, env.configPath, nil)
	if !errors.Is(err, descstore.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestExtractRequiresAPIKeyOnline(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.YouTube.APIKey = ""
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"extract"}, env.configPath, nil)
	if err == nil || !strings.Contains(err.Error(), "YOUTUBE_API_KEY") {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestStatsAndDumpOffline(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedCache(t, store, "seed-run", testsupport.Videos(nil, identifierDescription, regexDescription))
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	out, _, err := runCLI(t, []string{"stats", "--offline"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "descriptions\t2\n")
	requireContains(t, out, "candidates\t4\n")
	requireContains(t, out, "titles\t3\n")
	requireContains(t, out, "exclusions\t10\n")
	if strings.Contains(out, "output\t") {
		t.Fatalf("stats must not write the songs file:\n%s", out)
	}

	dumpDir := filepath.Join(env.baseDir, "dump")
	out, _, err = runCLI(t, []string{"dump", "--offline", "--dir", dumpDir}, env.configPath, nil)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	requireContains(t, out, "Dumped 2 descriptions to "+dumpDir)
	if got := testsupport.ReadFile(t, filepath.Join(dumpDir, "good", "1", "0.txt")); got != identifierDescription {
		t.Fatalf("unexpected dump content %q", got)
	}

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 2 cached descriptions")
}

func TestCacheCommandsRequireEnabledCache(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutCache())
	if _, _, err := runCLI(t, []string{"cache", "stats"}, env.configPath, nil); err == nil {
		t.Fatal("expected error when cache disabled")
	}
	if _, _, err := runCLI(t, []string{"extract", "--offline"}, env.configPath, nil); err == nil {
		t.Fatal("expected error for --offline without cache")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Strategy", "Descriptions"}, [][]string{{"identifier", "3"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "Strategy")
	requireContains(t, out, "identifier")
	requireContains(t, out, "╭")
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestDetectAlignment(t *testing.T) {
	rows := [][]string{{"identifier", "3"}, {"regex_list", "12"}, {"short"}}
	if got := detectAlignment(rows, 0); got != alignLeft {
		t.Fatalf("expected text column left aligned, got %v", got)
	}
	if got := detectAlignment(rows, 1); got != alignRight {
		t.Fatalf("expected count column right aligned, got %v", got)
	}
	if got := detectAlignment(nil, 0); got != alignLeft {
		t.Fatalf("expected empty column left aligned, got %v", got)
	}
}

func TestStatsShowsTables(t *testing.T) {
	var buf strings.Builder
	renderTables(&buf, songs.DefaultTables())
	out := buf.String()
	requireContains(t, out, "# Tables\n")
	requireContains(t, out, "identifiers\tsong list, songs list, s o n g l i s t, sound demo\n")
	requireContains(t, out, "exclusions\t10\n")
}
