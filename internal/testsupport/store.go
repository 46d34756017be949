package testsupport

import (
	"context"
	"testing"

	"demosongs/internal/catalog"
	"demosongs/internal/config"
	"demosongs/internal/descstore"
)

// MustOpenStore opens the description cache for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *descstore.Store {
	t.Helper()

	store, err := descstore.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("descstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCache stores videos as the cached batch under runID.
func SeedCache(t testing.TB, store *descstore.Store, runID string, videos []catalog.Video) {
	t.Helper()

	if err := store.Save(context.Background(), runID, videos); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}

// Videos builds catalog videos from descriptions, alternating between the
// given channel IDs.
func Videos(channelIDs []string, descriptions ...string) []catalog.Video {
	if len(channelIDs) == 0 {
		channelIDs = []string{"UCtest"}
	}
	videos := make([]catalog.Video, len(descriptions))
	for i, desc := range descriptions {
		videos[i] = catalog.Video{
			ID:          "vid" + string(rune('a'+i%26)),
			ChannelID:   channelIDs[i%len(channelIDs)],
			Title:       "Demo [SOUND DEMO]",
			Description: desc,
			Position:    i,
		}
	}
	return videos
}
