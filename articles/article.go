package articles

// Field defaults for the Trading Economics stream feed. The stream only
// carries relative paths and rarely labels its entries, so absent markers
// fall back to these values.
const (
	SiteOrigin      = "https://tradingeconomics.com"
	DefaultCategory = "Market News"
	FeedSource      = "Trading Economics"
	FeedAuthor      = "Trading Economics"
)

// summaryLength is the maximum number of characters carried into Summary.
const summaryLength = 200

// Article is a single news article reconstructed from the rendered stream
// page. Drafts are mutated during the parsing pass; Finalize produces the
// records handed to callers, which are never mutated afterwards.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	Summary     string `json:"summary"`
}

// newDraft opens a fresh article for the given title link. The link target
// is path-relative in the feed's rendering, so it is prefixed with the site
// origin.
func newDraft(title, url string) *Article {
	return &Article{
		Title:    title,
		URL:      SiteOrigin + url,
		Category: DefaultCategory,
		Source:   FeedSource,
		Author:   FeedAuthor,
	}
}
