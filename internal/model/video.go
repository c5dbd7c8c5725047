package model

// Video is one entry of a channel's recent uploads.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"published_at"`
	Description string `json:"description,omitempty"`
	ViewCount   string `json:"view_count,omitempty"`
}

// ChannelStats holds display-formatted channel counters.
type ChannelStats struct {
	SubscriberCount string `json:"subscriber_count"`
	VideoCount      string `json:"video_count"`
	ViewCount       string `json:"view_count"`
}
