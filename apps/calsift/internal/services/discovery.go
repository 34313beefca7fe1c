package services

import (
	"log/slog"

	"calsift.app/apps/calsift/pkg/discover"
)

type DiscoverService struct {
	logger *slog.Logger
	client discover.Client
}

// DiscoverFeeds fetches a webpage and returns the calendar feeds it links
// to, deduplicated by URL.
func (service *DiscoverService) DiscoverFeeds(pageURL string) ([]discover.Feed, error) {
	feeds, err := service.client.DiscoverFeeds(pageURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	result := []discover.Feed{}
	for _, feed := range feeds {
		if seen[feed.URL] {
			continue
		}
		seen[feed.URL] = true
		result = append(result, feed)
	}

	return result, nil
}
