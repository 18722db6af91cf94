// Package watch detects the newest item on a monitored news stream. Two
// source kinds are supported: scraping the rendered page with a CSS
// selector, and reading an RSS/Atom feed. Both report only the top item;
// deciding whether it is new belongs to the state package.
package watch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// DefaultSelector matches the headline anchors on the Trading Economics
// stream page.
const DefaultSelector = ".te-stream-title"

// ErrNoItems means the source was reachable but carried no items.
var ErrNoItems = errors.New("no stream items found")

// TopItem is the newest entry on a monitored stream.
type TopItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Source reports the current top item of a news stream.
type Source interface {
	Top(ctx context.Context) (*TopItem, error)
}

// WebsiteSource scrapes a rendered HTML page and picks the first element
// matching Selector as the top item.
type WebsiteSource struct {
	URL      string
	Selector string
	httpc    *http.Client
}

// NewWebsiteSource creates a website source for the given page. An empty
// selector falls back to DefaultSelector.
func NewWebsiteSource(pageURL, selector string) *WebsiteSource {
	if selector == "" {
		selector = DefaultSelector
	}
	return &WebsiteSource{
		URL:      pageURL,
		Selector: selector,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Top fetches the page and returns the first matching item. A relative href
// is resolved against the page URL.
func (s *WebsiteSource) Top(ctx context.Context) (*TopItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "econwatch/1.0 (economic news stream monitor)")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stream page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	first := doc.Find(s.Selector).First()
	if first.Length() == 0 {
		return nil, ErrNoItems
	}

	title := strings.TrimSpace(first.Text())
	href, _ := first.Attr("href")

	return &TopItem{
		Title: title,
		URL:   s.resolve(href),
	}, nil
}

// resolve turns a possibly relative href into an absolute URL. An empty or
// unparseable href falls back to the stream page itself, which is also what
// gets handed to the extraction service.
func (s *WebsiteSource) resolve(href string) string {
	if href == "" {
		return s.URL
	}
	base, err := url.Parse(s.URL)
	if err != nil {
		return s.URL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return s.URL
	}
	return base.ResolveReference(ref).String()
}

// FeedSource reads an RSS or Atom feed and reports its first entry. gofeed
// normalizes both formats, so the source handles either transparently.
type FeedSource struct {
	URL    string
	parser *gofeed.Parser
}

// NewFeedSource creates a feed source for the given feed URL.
func NewFeedSource(feedURL string) *FeedSource {
	return &FeedSource{
		URL:    feedURL,
		parser: gofeed.NewParser(),
	}
}

// Top fetches the feed and returns its first item.
func (s *FeedSource) Top(ctx context.Context) (*TopItem, error) {
	feed, err := s.parser.ParseURLWithContext(s.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if len(feed.Items) == 0 {
		return nil, ErrNoItems
	}

	item := feed.Items[0]
	return &TopItem{
		Title: strings.TrimSpace(item.Title),
		URL:   item.Link,
	}, nil
}
