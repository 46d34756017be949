package harvest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"demosongs/internal/catalog"
	"demosongs/internal/descstore"
	"demosongs/internal/harvest"
	"demosongs/internal/logging"
	"demosongs/internal/songs"
	"demosongs/internal/testsupport"
)

type fakeSource struct {
	videos []catalog.Video
	err    error
	calls  int
}

func (f *fakeSource) Videos(context.Context) ([]catalog.Video, error) {
	f.calls++
	return f.videos, f.err
}

type failingCache struct {
	saves int
}

func (f *failingCache) Save(context.Context, string, []catalog.Video) error {
	f.saves++
	return errors.New("disk full")
}

func (f *failingCache) Load(context.Context) ([]catalog.Video, error) {
	return nil, descstore.ErrEmpty
}

const identifierDescription = "Keyboard build\nSong List:\n0:00 Intro\n0:15 Lofi Beat - Artist One\n1:30 Rainy Day\n\nThanks for watching"

const sixBlockDescription = "Header\n-----\nparts\n-----\nOcean Drive\nMidnight City\n-----\nx\n-----\ny\n-----\nz"

func fixedID(id string) harvest.Option {
	return harvest.WithRunIDGenerator(func() string { return id })
}

func TestRunWritesSongsAndCaches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	source := &fakeSource{videos: testsupport.Videos([]string{"A", "B"}, identifierDescription, sixBlockDescription)}

	runner, err := harvest.NewRunner(cfg, source, store, logging.NewNop(), fixedID("run-1"))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background(), harvest.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "Lofi Beat - Artist One\nRainy Day\nOcean Drive\nMidnight City"
	if got := testsupport.ReadFile(t, cfg.Paths.OutputFile); got != want {
		t.Fatalf("songs file = %q, want %q", got, want)
	}
	if summary.RunID != "run-1" || summary.Source != harvest.SourceYouTube || summary.Videos != 2 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.OutputPath != cfg.Paths.OutputFile {
		t.Fatalf("expected output path %q, got %q", cfg.Paths.OutputFile, summary.OutputPath)
	}
	if summary.Report.Strategies[songs.StrategyIdentifier] != 1 || summary.Report.Strategies[songs.StrategyDelimiterSplit] != 1 {
		t.Fatalf("unexpected strategy counts: %#v", summary.Report.Strategies)
	}
	if summary.Report.Verdicts[songs.RejectedExcluded] != 1 {
		t.Fatalf("expected the intro line to be excluded: %#v", summary.Report.Verdicts)
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.RunID != "run-1" || stats.Count != 2 {
		t.Fatalf("expected cache refreshed by run-1, got %#v", stats)
	}
}

func TestRunOfflineUsesCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedCache(t, store, "seed", testsupport.Videos(nil, sixBlockDescription))
	source := &fakeSource{err: errors.New("network must not be used")}

	runner, err := harvest.NewRunner(cfg, source, store, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	out := filepath.Join(testsupport.BaseDir(cfg), "custom", "list.txt")
	summary, err := runner.Run(context.Background(), harvest.Options{Offline: true, OutputPath: out})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if source.calls != 0 {
		t.Fatalf("offline run called the source %d times", source.calls)
	}
	if summary.Source != harvest.SourceCache {
		t.Fatalf("expected cache source, got %q", summary.Source)
	}
	if got := testsupport.ReadFile(t, out); got != "Ocean Drive\nMidnight City" {
		t.Fatalf("unexpected songs file %q", got)
	}
}

func TestRunOfflineEmptyCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	runner, err := harvest.NewRunner(cfg, nil, store, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	_, err = runner.Run(context.Background(), harvest.Options{Offline: true})
	if !errors.Is(err, descstore.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatalf("songs file should not be written on failure, stat err %v", statErr)
	}
}

func TestRunOfflineWithoutCache(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutCache())
	runner, err := harvest.NewRunner(cfg, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	if _, err := runner.Run(context.Background(), harvest.Options{Offline: true}); err == nil {
		t.Fatal("expected error for offline run without cache")
	}
}

func TestRunSourceFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := &fakeSource{err: catalog.ErrChannelNotFound}
	runner, err := harvest.NewRunner(cfg, source, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	if _, err := runner.Run(context.Background(), harvest.Options{}); !errors.Is(err, catalog.ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestRunContinuesWhenCacheSaveFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cache := &failingCache{}
	source := &fakeSource{videos: testsupport.Videos(nil, sixBlockDescription)}
	runner, err := harvest.NewRunner(cfg, source, cache, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background(), harvest.Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if cache.saves != 1 {
		t.Fatalf("expected one save attempt, got %d", cache.saves)
	}
	if len(summary.Titles) != 2 {
		t.Fatalf("expected 2 titles, got %v", summary.Titles)
	}
	if summary.OutputPath != "" {
		t.Fatalf("dry run should not write, got output path %q", summary.OutputPath)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatalf("dry run wrote the songs file, stat err %v", statErr)
	}
}

func TestRunDumpsDescriptions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := &fakeSource{videos: testsupport.Videos(nil, identifierDescription, sixBlockDescription)}
	runner, err := harvest.NewRunner(cfg, source, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background(), harvest.Options{DumpDir: cfg.Paths.DebugDir})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Dumped != 2 {
		t.Fatalf("expected 2 dumped descriptions, got %d", summary.Dumped)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.Paths.DebugDir, "bad", "6", "1.txt")); got != sixBlockDescription {
		t.Fatalf("unexpected dump content %q", got)
	}
	testsupport.ReadFile(t, filepath.Join(cfg.Paths.DebugDir, "good", "1", "0.txt"))
}

func TestRunRejectsHeldLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	held := flock.New(cfg.LockPath())
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: ok=%v err=%v", ok, err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	runner, err := harvest.NewRunner(cfg, &fakeSource{}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	if _, err := runner.Run(context.Background(), harvest.Options{}); !errors.Is(err, harvest.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := runner.Collect(context.Background(), false); !errors.Is(err, harvest.ErrLocked) {
		t.Fatalf("expected ErrLocked from Collect, got %v", err)
	}
}

func TestCollectReleasesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := &fakeSource{videos: testsupport.Videos(nil, "a", "b")}
	runner, err := harvest.NewRunner(cfg, source, nil, logging.NewNop(), fixedID("collect-1"))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	for i := 0; i < 2; i++ {
		batch, err := runner.Collect(context.Background(), false)
		if err != nil {
			t.Fatalf("Collect #%d returned error: %v", i+1, err)
		}
		if batch.RunID != "collect-1" || len(batch.Descriptions()) != 2 {
			t.Fatalf("unexpected batch: %#v", batch)
		}
	}
}

func TestNewRunnerRequiresConfig(t *testing.T) {
	if _, err := harvest.NewRunner(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
