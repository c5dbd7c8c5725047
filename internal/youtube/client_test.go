package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"TradeCraft/internal/metrics"
)

func newTestClient(apiKey, channelID, baseURL string) *Client {
	return NewClient(apiKey, channelID, baseURL, "", zap.NewNop(), metrics.NewMetrics())
}

func TestChannelStats_NotConfigured(t *testing.T) {
	tests := []struct {
		name, key, channel string
	}{
		{"no key", "", "UC1"},
		{"no channel", "k", ""},
		{"placeholder key", "YOUR_API_KEY_HERE", "UC1"},
	}
	for _, tt := range tests {
		c := newTestClient(tt.key, tt.channel, "http://127.0.0.1:1")
		res := c.ChannelStats(context.Background())
		if !res.UsedFallback {
			t.Errorf("%s: expected fallback", tt.name)
		}
		if !errors.Is(res.Err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got %v", tt.name, res.Err)
		}
		if res.Stats != MockStats() {
			t.Errorf("%s: expected mock stats, got %+v", tt.name, res.Stats)
		}
	}
}

func TestLatestVideos_NotConfigured(t *testing.T) {
	c := newTestClient("", "", "http://127.0.0.1:1")
	videos := c.GetLatestVideos(context.Background(), 4)
	if len(videos) != 4 {
		t.Fatalf("expected 4 mock videos, got %d", len(videos))
	}
	if videos[0].ID != "QqolkgvJgJo" {
		t.Errorf("unexpected first video %q", videos[0].ID)
	}

	all := c.GetLatestVideos(context.Background(), 0)
	if len(all) != DefaultMaxResults {
		t.Errorf("expected %d videos for n=0, got %d", DefaultMaxResults, len(all))
	}

	capped := c.GetLatestVideos(context.Background(), 50)
	if len(capped) != 6 {
		t.Errorf("expected the 6 mock videos, got %d", len(capped))
	}
}

func TestMockVideos_ReturnsCopy(t *testing.T) {
	v := MockVideos(2)
	v[0].Title = "changed"
	if MockVideos(1)[0].Title == "changed" {
		t.Error("mock dataset was mutated through returned slice")
	}
}

func TestChannelStats_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "UC1" || r.URL.Query().Get("key") != "secret" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[{"statistics":{"subscriberCount":"1234567","videoCount":"88","viewCount":"98765432"}}]}`))
	}))
	defer srv.Close()

	res := newTestClient("secret", "UC1", srv.URL).ChannelStats(context.Background())
	if res.UsedFallback || res.Err != nil {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if res.Stats.SubscriberCount != "1,234,567" {
		t.Errorf("unexpected subscriber count %q", res.Stats.SubscriberCount)
	}
	if res.Stats.VideoCount != "88" {
		t.Errorf("unexpected video count %q", res.Stats.VideoCount)
	}
	if res.Stats.ViewCount != "98,765,432" {
		t.Errorf("unexpected view count %q", res.Stats.ViewCount)
	}
}

func TestLatestVideos_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("order") != "date" || q.Get("maxResults") != "2" || q.Get("type") != "video" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[
			{"id":{"videoId":"a1"},"snippet":{"title":"First","description":"d1","publishedAt":"2026-02-18T10:00:00Z","thumbnails":{"high":{"url":"https://img/a1.jpg"}}}},
			{"id":{"videoId":"b2"},"snippet":{"title":"Second","publishedAt":"not-a-date","thumbnails":{"high":{"url":"https://img/b2.jpg"}}}},
			{"id":{"videoId":"c3"},"snippet":{"title":"Third","publishedAt":"2026-02-10T10:00:00Z"}}
		]}`))
	}))
	defer srv.Close()

	res := newTestClient("secret", "UC1", srv.URL).LatestVideos(context.Background(), 2)
	if res.UsedFallback {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if len(res.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(res.Videos))
	}
	if res.Videos[0].ID != "a1" || res.Videos[0].Thumbnail != "https://img/a1.jpg" {
		t.Errorf("unexpected first video %+v", res.Videos[0])
	}
	if res.Videos[0].PublishedAt != "Feb 18, 2026" {
		t.Errorf("unexpected date %q", res.Videos[0].PublishedAt)
	}
	if res.Videos[1].PublishedAt != "not-a-date" {
		t.Errorf("expected raw date passthrough, got %q", res.Videos[1].PublishedAt)
	}
}

func TestFetchFailures_FallBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":`))
		}},
		{"no items", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[]}`))
		}},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(tt.handler)
		c := newTestClient("secret", "UC1", srv.URL)
		res := c.ChannelStats(context.Background())
		srv.Close()

		if !res.UsedFallback {
			t.Errorf("%s: expected fallback", tt.name)
		}
		var fe *FetchError
		if !errors.As(res.Err, &fe) {
			t.Errorf("%s: expected FetchError, got %v", tt.name, res.Err)
		}
		if res.Stats != MockStats() {
			t.Errorf("%s: expected mock stats", tt.name)
		}
	}
}

func TestLatestVideos_FetchFailuresFallBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"items":`},
		{"no items", `{"items":[]}`},
		{"only non-video items", `{"items":[{"id":{},"snippet":{"title":"A playlist"}}]}`},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tt.body))
		}))
		res := newTestClient("secret", "UC1", srv.URL).LatestVideos(context.Background(), 6)
		srv.Close()

		if !res.UsedFallback || len(res.Videos) != 6 {
			t.Errorf("%s: expected 6 fallback videos, got fallback=%v len=%d", tt.name, res.UsedFallback, len(res.Videos))
		}
		var fe *FetchError
		if !errors.As(res.Err, &fe) {
			t.Errorf("%s: expected FetchError, got %v", tt.name, res.Err)
		}
	}
}

func TestLatestVideos_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := newTestClient("secret", "UC1", url).LatestVideos(context.Background(), 3)
	if !res.UsedFallback || len(res.Videos) != 3 {
		t.Errorf("expected 3 fallback videos, got fallback=%v len=%d", res.UsedFallback, len(res.Videos))
	}
}

func TestFeed_RefreshAndState(t *testing.T) {
	feed := NewFeed(newTestClient("", "", ""), 3)
	st := feed.State(context.Background())
	if !st.UsedFallback {
		t.Error("expected fallback state")
	}
	if len(st.Videos) != 3 {
		t.Errorf("expected 3 videos, got %d", len(st.Videos))
	}
	if got := feed.Videos(context.Background(), 2); len(got) != 2 {
		t.Errorf("expected 2 videos, got %d", len(got))
	}
}
