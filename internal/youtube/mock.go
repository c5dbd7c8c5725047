package youtube

import "TradeCraft/internal/model"

// mockVideos is served whenever live data cannot be obtained.
var mockVideos = []model.Video{
	{
		ID:          "QqolkgvJgJo",
		Title:       "Evening to Morning Routine",
		Thumbnail:   "https://i.ytimg.com/vi/QqolkgvJgJo/hqdefault.jpg",
		PublishedAt: "8 days ago",
		Description: "A peaceful look into my daily rhythm, from sunset chores to sunrise quiet moments.",
		ViewCount:   "32K",
	},
	{
		ID:          "uAST_xFaelc",
		Title:       "Village Cooking & KFC Secret",
		Thumbnail:   "https://i.ytimg.com/vi/uAST_xFaelc/hqdefault.jpg",
		PublishedAt: "12 days ago",
		Description: "Cooking an authentic village meal and sharing my KFC-style chicken secret.",
		ViewCount:   "25K",
	},
	{
		ID:          "_b9zIqA5IZA",
		Title:       "5am to 12pm Morning Routine",
		Thumbnail:   "https://i.ytimg.com/vi/_b9zIqA5IZA/hqdefault.jpg",
		PublishedAt: "2 weeks ago",
		Description: "Join me for a productive morning from 5am to noon, balancing housework and vlogging.",
		ViewCount:   "18K",
	},
	{
		ID:          "qaFEZEnq4Ds",
		Title:       "Pelletoori Ma Oori Gattula Meeda",
		Thumbnail:   "https://i.ytimg.com/vi/qaFEZEnq4Ds/hqdefault.jpg",
		PublishedAt: "3 weeks ago",
		Description: "A nostalgic visit to my village, exploring the beautiful landscapes and local traditions.",
		ViewCount:   "22K",
	},
	{
		ID:          "7KzN1K1S-tE",
		Title:       "24/7 House Cleaning Secrets",
		Thumbnail:   "https://i.ytimg.com/vi/7KzN1K1S-tE/hqdefault.jpg",
		PublishedAt: "1 month ago",
		Description: "My secrets for keeping a house clean and organized 24/7 with simple weekly habits.",
		ViewCount:   "45K",
	},
	{
		ID:          "U_f40b3w00I",
		Title:       "Time Saving Meal Prep Tips",
		Thumbnail:   "https://i.ytimg.com/vi/U_f40b3w00I/hqdefault.jpg",
		PublishedAt: "1 month ago",
		Description: "Organize your kitchen and meals for the whole week with these quick prep hacks.",
		ViewCount:   "15K",
	},
}

var mockStats = model.ChannelStats{
	SubscriberCount: "24,500",
	VideoCount:      "142",
	ViewCount:       "1.2M",
}

// MockVideos returns a copy of the first n fallback videos.
func MockVideos(n int) []model.Video {
	if n < 0 {
		n = 0
	}
	if n > len(mockVideos) {
		n = len(mockVideos)
	}
	out := make([]model.Video, n)
	copy(out, mockVideos[:n])
	return out
}

// MockStats returns the fallback channel statistics.
func MockStats() model.ChannelStats { return mockStats }
