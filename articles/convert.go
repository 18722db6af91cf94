package articles

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrParse marks a structural failure: input the markdown walker cannot
// decompose. Everything else the feed throws at us is handled by the
// classification rules and never escalates.
var ErrParse = errors.New("markdown parse failed")

// navMarker is the literal line that ends the feed's navigation menu in the
// extraction service's rendering. Everything before it is boilerplate.
const navMarker = "- united states\n\n"

// Convert parses a rendered stream page into its articles, in document
// order. Zero articles is a valid result, not an error; callers decide
// whether an empty page is worth reporting.
//
// The conversion is a pure function of its input and safe to call
// concurrently on independent inputs.
func Convert(markdown string) ([]Article, error) {
	if !utf8.ValidString(markdown) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrParse)
	}

	s := &splitter{}
	if err := walkEvents([]byte(stripNavigation(markdown)), s.consume); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	s.commit()

	return Finalize(s.articles), nil
}

// stripNavigation drops the navigation prefix the feed renders before its
// content. A single literal split on the first marker occurrence; input
// without the marker passes through unchanged.
func stripNavigation(markdown string) string {
	if _, after, found := strings.Cut(markdown, navMarker); found {
		return after
	}
	return markdown
}

// Finalize turns drafts into the records handed to callers: Content loses
// surrounding whitespace and Summary becomes its first 200 characters.
// Same length and order as the input, nothing dropped, no other field
// touched. Running Finalize on its own output is a no-op.
func Finalize(drafts []Article) []Article {
	out := make([]Article, len(drafts))
	for i, a := range drafts {
		a.Content = strings.TrimSpace(a.Content)
		a.Summary = summarize(a.Content)
		out[i] = a
	}
	return out
}

func summarize(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) > summaryLength {
		runes = runes[:summaryLength]
	}
	return string(runes)
}
