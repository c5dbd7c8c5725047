// Package youtube fetches channel statistics and recent uploads from the
// YouTube Data API, substituting a fixed mock dataset when the API is not
// configured or a request fails.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"TradeCraft/internal/metrics"
	"TradeCraft/internal/model"
)

// DefaultMaxResults is the number of videos requested when the caller passes 0.
const DefaultMaxResults = 6

const placeholderKey = "YOUR_API_KEY_HERE"

// ErrNotConfigured means the API key or channel id is missing.
var ErrNotConfigured = errors.New("youtube: api key or channel id not configured")

// FetchError wraps a failure of a configured request.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("youtube %s: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// StatsResult is the outcome of a channel statistics request.
// Stats is always usable; UsedFallback tells whether it is the mock dataset
// and Err carries the reason.
type StatsResult struct {
	Stats        model.ChannelStats
	UsedFallback bool
	Err          error
}

// VideosResult is the outcome of a recent-videos request.
type VideosResult struct {
	Videos       []model.Video
	UsedFallback bool
	Err          error
}

// Client talks to the YouTube Data API v3.
type Client struct {
	APIKey    string
	ChannelID string
	BaseURL   string
	Client    *http.Client
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// NewClient creates a client with optional proxy support.
func NewClient(apiKey, channelID, baseURL, proxyURL string, logger *zap.Logger, m *metrics.Metrics) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		APIKey:    apiKey,
		ChannelID: channelID,
		BaseURL:   baseURL,
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		Logger:  logger.Named("youtube"),
		Metrics: m,
	}
}

func (c *Client) configured() bool {
	return c.APIKey != "" && c.ChannelID != "" && c.APIKey != placeholderKey
}

// ChannelStats returns subscriber, video and view counts.
func (c *Client) ChannelStats(ctx context.Context) StatsResult {
	if !c.configured() {
		c.fallback("stats", ErrNotConfigured)
		return StatsResult{Stats: MockStats(), UsedFallback: true, Err: ErrNotConfigured}
	}
	stats, err := c.fetchStats(ctx)
	if err != nil {
		err = &FetchError{Op: "channel stats", Err: err}
		c.fallback("stats", err)
		return StatsResult{Stats: MockStats(), UsedFallback: true, Err: err}
	}
	return StatsResult{Stats: stats}
}

// LatestVideos returns at most n videos, newest first. n <= 0 means DefaultMaxResults.
func (c *Client) LatestVideos(ctx context.Context, n int) VideosResult {
	if n <= 0 {
		n = DefaultMaxResults
	}
	if !c.configured() {
		c.fallback("videos", ErrNotConfigured)
		return VideosResult{Videos: MockVideos(n), UsedFallback: true, Err: ErrNotConfigured}
	}
	videos, err := c.fetchVideos(ctx, n)
	if err != nil {
		err = &FetchError{Op: "latest videos", Err: err}
		c.fallback("videos", err)
		return VideosResult{Videos: MockVideos(n), UsedFallback: true, Err: err}
	}
	return VideosResult{Videos: videos}
}

// GetChannelStats returns live or fallback stats and never fails.
func (c *Client) GetChannelStats(ctx context.Context) model.ChannelStats {
	return c.ChannelStats(ctx).Stats
}

// GetLatestVideos returns live or fallback videos and never fails.
func (c *Client) GetLatestVideos(ctx context.Context, n int) []model.Video {
	return c.LatestVideos(ctx, n).Videos
}

func (c *Client) fallback(resource string, err error) {
	reason := "fetch_failed"
	if errors.Is(err, ErrNotConfigured) {
		reason = "not_configured"
		c.Logger.Debug("serving mock data", zap.String("resource", resource))
	} else {
		c.Logger.Warn("live request failed, serving mock data", zap.String("resource", resource), zap.Error(err))
	}
	c.Metrics.ObserveFallback(resource, reason)
}

type channelsResponse struct {
	Items []struct {
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
			ViewCount       string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *Client) fetchStats(ctx context.Context) (model.ChannelStats, error) {
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", c.ChannelID)
	q.Set("key", c.APIKey)

	var resp channelsResponse
	if err := c.getJSON(ctx, c.BaseURL+"/channels?"+q.Encode(), &resp); err != nil {
		return model.ChannelStats{}, err
	}
	if len(resp.Items) == 0 {
		return model.ChannelStats{}, errors.New("channel not found")
	}
	st := resp.Items[0].Statistics

	subs, err := strconv.ParseInt(st.SubscriberCount, 10, 64)
	if err != nil {
		return model.ChannelStats{}, fmt.Errorf("parse subscriber count: %w", err)
	}
	views, err := strconv.ParseInt(st.ViewCount, 10, 64)
	if err != nil {
		return model.ChannelStats{}, fmt.Errorf("parse view count: %w", err)
	}
	return model.ChannelStats{
		SubscriberCount: humanize.Comma(subs),
		VideoCount:      st.VideoCount,
		ViewCount:       humanize.Comma(views),
	}, nil
}

func (c *Client) fetchVideos(ctx context.Context, n int) ([]model.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", c.ChannelID)
	q.Set("maxResults", strconv.Itoa(n))
	q.Set("order", "date")
	q.Set("type", "video")
	q.Set("key", c.APIKey)

	var resp searchResponse
	if err := c.getJSON(ctx, c.BaseURL+"/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, model.Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
			PublishedAt: formatPublished(item.Snippet.PublishedAt),
			Description: item.Snippet.Description,
		})
		if len(videos) == n {
			break
		}
	}
	if len(videos) == 0 {
		return nil, errors.New("no videos")
	}
	return videos, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func formatPublished(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}
