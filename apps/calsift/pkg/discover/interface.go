package discover

type Client interface {
	DiscoverFeeds(pageURL string) ([]Feed, error)
}
