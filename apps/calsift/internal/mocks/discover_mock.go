package mocks

import (
	"calsift.app/apps/calsift/pkg/discover"
)

type MockDiscoverClient struct {
	feeds []discover.Feed
}

func NewMockDiscoverClient() discover.Client {
	return MockDiscoverClient{
		feeds: []discover.Feed{
			{
				URL:   "https://example.com/team.ics",
				Title: "Team calendar",
			},
			{
				URL:   "https://example.com/holidays.ics",
				Title: "Holidays",
			},
			// scraped pages often link the same feed twice
			{
				URL:   "https://example.com/team.ics",
				Title: "Team calendar",
			},
		},
	}
}

func (client MockDiscoverClient) DiscoverFeeds(
	_ string,
) ([]discover.Feed, error) {
	return client.feeds, nil
}
