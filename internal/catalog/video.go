package catalog

import (
	"context"
	"time"
)

// Video is one catalog entry whose description feeds the extractor.
type Video struct {
	ID          string
	ChannelID   string
	Title       string
	Description string
	PublishedAt time.Time
	Position    int
}

// Source produces the ordered video batch for one harvest run.
type Source interface {
	Videos(ctx context.Context) ([]Video, error)
}

// Descriptions returns the description text of each video, preserving order.
func Descriptions(videos []Video) []string {
	out := make([]string, len(videos))
	for i, video := range videos {
		out[i] = video.Description
	}
	return out
}
