package youtube

import (
	"context"
	"sync"
	"time"

	"TradeCraft/internal/model"
)

// FeedState is what the site's video sections render.
type FeedState struct {
	Stats        model.ChannelStats `json:"stats"`
	Videos       []model.Video      `json:"videos"`
	UsedFallback bool               `json:"used_fallback"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Feed keeps the most recent channel stats and videos for readers.
type Feed struct {
	client     *Client
	maxResults int

	mu    sync.RWMutex
	state FeedState
	ready bool
}

// NewFeed creates a feed that requests maxResults videos per refresh.
func NewFeed(client *Client, maxResults int) *Feed {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Feed{client: client, maxResults: maxResults}
}

// Refresh fetches stats and videos and replaces the held state.
func (f *Feed) Refresh(ctx context.Context) FeedState {
	stats := f.client.ChannelStats(ctx)
	videos := f.client.LatestVideos(ctx, f.maxResults)

	st := FeedState{
		Stats:        stats.Stats,
		Videos:       videos.Videos,
		UsedFallback: stats.UsedFallback || videos.UsedFallback,
		UpdatedAt:    time.Now(),
	}

	f.mu.Lock()
	f.state = st
	f.ready = true
	f.mu.Unlock()
	return st
}

// State returns the held state, refreshing first if nothing was fetched yet.
func (f *Feed) State(ctx context.Context) FeedState {
	f.mu.RLock()
	st, ready := f.state, f.ready
	f.mu.RUnlock()
	if !ready {
		return f.Refresh(ctx)
	}
	return st
}

// Videos returns up to n held videos.
func (f *Feed) Videos(ctx context.Context, n int) []model.Video {
	videos := f.State(ctx).Videos
	if n > 0 && n < len(videos) {
		videos = videos[:n]
	}
	out := make([]model.Video, len(videos))
	copy(out, videos)
	return out
}
