package discover

import (
	"log/slog"
	"strings"

	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
)

type client struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) Client {
	return client{
		logger: logger,
	}
}

// DiscoverFeeds scrapes a webpage for calendar feeds: alternate links with
// a calendar MIME type in the head, plus plain anchors pointing at .ics
// files. webcal URLs are rewritten to https.
func (client client) DiscoverFeeds(pageURL string) ([]Feed, error) {
	c := colly.NewCollector()

	feeds := []Feed{}

	c.OnHTML("head", func(h *colly.HTMLElement) {
		for _, node := range h.DOM.Children().Nodes {
			if node.Data != "link" || !isCalendarLink(node) {
				continue
			}

			href := nodeAttr(node, "href")
			if href == "" {
				continue
			}

			feeds = append(feeds, Feed{
				URL:   normalizeFeedURL(h.Request.AbsoluteURL(href)),
				Title: nodeAttr(node, "title"),
			})
		}
	})

	c.OnHTML("a[href]", func(h *colly.HTMLElement) {
		href := h.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".ics") &&
			!strings.HasPrefix(href, "webcal://") {
			return
		}

		feeds = append(feeds, Feed{
			URL:   normalizeFeedURL(h.Request.AbsoluteURL(href)),
			Title: strings.TrimSpace(h.Text),
		})
	})

	err := c.Visit(pageURL)
	if err != nil {
		return nil, err
	}

	return feeds, nil
}

func isCalendarLink(node *html.Node) bool {
	rel := nodeAttr(node, "rel")
	typ := nodeAttr(node, "type")

	return rel == "alternate" && typ == "text/calendar"
}

func nodeAttr(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}

func normalizeFeedURL(url string) string {
	if strings.HasPrefix(url, "webcal://") {
		return "https://" + strings.TrimPrefix(url, "webcal://")
	}

	return url
}
