package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrChannelNotFound reports a channel ID the API does not recognize.
var ErrChannelNotFound = errors.New("youtube channel not found")

const (
	defaultPageSize = 50
	maxPageSize     = 50
	defaultTimeout  = 30 * time.Second
	// maxPages guards against a server that never stops returning tokens.
	maxPages = 1000
)

// Lister defines the YouTube operations used by ChannelSource.
type Lister interface {
	UploadsPlaylistID(ctx context.Context, channelID string) (string, error)
	PlaylistItems(ctx context.Context, playlistID string) ([]Video, error)
}

// Client provides access to the YouTube Data API v3.
type Client struct {
	apiKey     string
	baseURL    string
	pageSize   int
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

var _ Lister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPageSize sets maxResults for playlist paging, clamped to 1..50.
func WithPageSize(size int) Option {
	return func(c *Client) {
		switch {
		case size <= 0:
			c.pageSize = defaultPageSize
		case size > maxPageSize:
			c.pageSize = maxPageSize
		default:
			c.pageSize = size
		}
	}
}

// WithRateLimit paces requests to at most perSecond; zero or negative
// disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithTimeout bounds each HTTP request. The HTTP client itself is left
// untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a YouTube client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("youtube base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   defaultPageSize,
		timeout:    defaultTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type channelListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			PublishedAt  string `json:"publishedAt"`
			ChannelID    string `json:"channelId"`
			Title        string `json:"title"`
			Description  string `json:"description"`
			Position     int    `json:"position"`
			OwnerChannel string `json:"videoOwnerChannelId"`
			ResourceID   struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// UploadsPlaylistID resolves the uploads playlist of a channel.
func (c *Client) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return "", errors.New("channel id must not be empty")
	}
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var payload channelListResponse
	if err := c.get(ctx, "/channels", params, &payload); err != nil {
		return "", fmt.Errorf("lookup channel %s: %w", channelID, err)
	}
	if len(payload.Items) == 0 {
		return "", fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}
	uploads := strings.TrimSpace(payload.Items[0].ContentDetails.RelatedPlaylists.Uploads)
	if uploads == "" {
		return "", fmt.Errorf("channel %s has no uploads playlist", channelID)
	}
	return uploads, nil
}

// PlaylistItems lists every item of a playlist in enumeration order, following
// nextPageToken until the last page.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]Video, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}

	var videos []Video
	pageToken := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("playlist %s exceeded %d pages", playlistID, maxPages)
		}
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("maxResults", strconv.Itoa(c.pageSize))
		params.Set("playlistId", playlistID)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var payload playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", params, &payload); err != nil {
			return nil, fmt.Errorf("list playlist %s page %d: %w", playlistID, page+1, err)
		}
		for _, item := range payload.Items {
			snippet := item.Snippet
			channelID := snippet.ChannelID
			if channelID == "" {
				channelID = snippet.OwnerChannel
			}
			videos = append(videos, Video{
				ID:          snippet.ResourceID.VideoID,
				ChannelID:   channelID,
				Title:       NormalizeText(snippet.Title),
				Description: NormalizeText(snippet.Description),
				PublishedAt: parsePublishedAt(snippet.PublishedAt),
				Position:    snippet.Position,
			})
		}
		if payload.NextPageToken == "" {
			return videos, nil
		}
		pageToken = payload.NextPageToken
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse youtube url: %w", err)
	}
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if msg := apiErrorMessage(body); msg != "" {
			return fmt.Errorf("youtube returned %d: %s (latency=%v)", resp.StatusCode, msg, latency)
		}
		return fmt.Errorf("youtube returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

func apiErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload apiErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error.Message)
}

func parsePublishedAt(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
