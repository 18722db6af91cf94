package articles

import "strings"

// Classification markers for the Trading Economics stream rendering. These
// are deliberately literal matches against one feed's current markup, not
// general heuristics.
const (
	// categoryMarker appears in the target of links that classify the
	// surrounding article rather than pointing at one.
	categoryMarker = "stream?i="

	// timestampSuffix ends every relative publication time the feed
	// renders ("3 hours ago", "1 day ago").
	timestampSuffix = "ago"

	// metadataPrefix starts paragraphs that tag the feed's region and must
	// never be folded into article body text.
	metadataPrefix = "[United States]"
)

// splitter reconstructs article boundaries from the walker's event stream.
// The feed renders articles back to back with no explicit delimiters; a
// bold-wrapped title link is the only boundary signal, so exactly one draft
// is open at a time and a new title commits the previous one.
//
// All state is local to one parsing call, so independent conversions never
// share anything.
type splitter struct {
	current  *Article
	articles []Article
}

func (s *splitter) consume(ev event) {
	switch ev := ev.(type) {
	case linkEvent:
		s.link(ev.text, ev.url)
	case paragraphEvent:
		s.paragraph(ev.text)
	}
}

// link handles a link event. Bold-wrapped text denotes a new article title;
// a category-stream target reclassifies the open article; every other link
// is ignored.
func (s *splitter) link(text, url string) {
	switch {
	case strings.HasPrefix(text, "**") && strings.HasSuffix(text, "**"):
		s.commit()
		s.current = newDraft(strings.Trim(text, "*"), url)
	case strings.Contains(url, categoryMarker):
		if s.current != nil {
			s.current.Category = strings.ReplaceAll(strings.Trim(text, "[]"), "+", " ")
		}
	}
}

// paragraph classifies a paragraph into exactly one of three buckets:
// timestamp, discarded metadata, or body content. Paragraphs before the
// first title are navigation boilerplate and are dropped.
func (s *splitter) paragraph(text string) {
	if s.current == nil {
		return
	}
	switch {
	case strings.HasSuffix(text, timestampSuffix):
		s.current.PublishedAt = strings.TrimSpace(text)
	case strings.HasPrefix(text, metadataPrefix):
		// Feed metadata, never body text.
	default:
		if s.current.Content != "" {
			s.current.Content += "\n\n"
		}
		s.current.Content += text
	}
}

// commit appends the open draft, if any, to the output list. Called when a
// new title supersedes it and once more at end of input.
func (s *splitter) commit() {
	if s.current != nil {
		s.articles = append(s.articles, *s.current)
		s.current = nil
	}
}
