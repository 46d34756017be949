package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"demosongs/internal/logging"
)

// ChannelSource gathers marker-titled videos from a fixed list of channels.
type ChannelSource struct {
	lister     Lister
	channelIDs []string
	marker     string
	logger     *slog.Logger
}

var _ Source = (*ChannelSource)(nil)

// NewChannelSource builds a source over channelIDs, visited in the given
// order. An empty marker keeps every video.
func NewChannelSource(lister Lister, channelIDs []string, marker string, logger *slog.Logger) (*ChannelSource, error) {
	if lister == nil {
		return nil, errors.New("catalog lister required")
	}
	if len(channelIDs) == 0 {
		return nil, errors.New("at least one channel id required")
	}
	return &ChannelSource{
		lister:     lister,
		channelIDs: append([]string(nil), channelIDs...),
		marker:     marker,
		logger:     logging.NewComponentLogger(logger, "catalog"),
	}, nil
}

// Videos returns matching videos concatenated in channel order, each
// channel's videos in playlist enumeration order.
func (s *ChannelSource) Videos(ctx context.Context) ([]Video, error) {
	var out []Video
	for _, channelID := range s.channelIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		playlistID, err := s.lister.UploadsPlaylistID(ctx, channelID)
		if err != nil {
			return nil, err
		}
		items, err := s.lister.PlaylistItems(ctx, playlistID)
		if err != nil {
			return nil, err
		}
		kept := 0
		for _, video := range items {
			if !s.matches(video.Title) {
				continue
			}
			if video.ChannelID == "" {
				video.ChannelID = channelID
			}
			out = append(out, video)
			kept++
		}
		s.logger.Debug("channel listed",
			logging.String(logging.FieldChannelID, channelID),
			logging.String(logging.FieldPlaylistID, playlistID),
			logging.Int("playlist_items", len(items)),
			logging.Int("matching_videos", kept),
		)
		if kept == 0 {
			logging.WarnWithContext(s.logger, "channel has no matching videos", "channel_empty",
				logging.String(logging.FieldChannelID, channelID),
				logging.String("title_marker", s.marker),
				logging.String(logging.FieldErrorHint, "verify the channel id and youtube.title_marker"),
				logging.String(logging.FieldImpact, "no descriptions collected from this channel"),
			)
		}
	}
	return out, nil
}

func (s *ChannelSource) matches(title string) bool {
	if s.marker == "" {
		return true
	}
	return strings.Contains(title, s.marker)
}
