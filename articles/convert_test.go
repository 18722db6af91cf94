package articles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamPage = "[**Fed Raises Rates**](/news/1)\n\n" +
	"[United States] ignore this\n\n" +
	"Inflation eased in March.\n\n" +
	"3 hours ago\n\n" +
	"[**Oil Prices Dip**](/news/2)\n\n" +
	"Crude fell 2%.\n"

// TestConvert_SplitsArticlesAtTitleLinks verifies the two-article stream
// page scenario end to end
func TestConvert_SplitsArticlesAtTitleLinks(t *testing.T) {
	items, err := Convert(streamPage)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Fed Raises Rates", first.Title)
	assert.Equal(t, "https://tradingeconomics.com/news/1", first.URL)
	assert.Equal(t, "Inflation eased in March.", first.Content)
	assert.Equal(t, "3 hours ago", first.PublishedAt)
	assert.Equal(t, DefaultCategory, first.Category)
	assert.Equal(t, FeedSource, first.Source)
	assert.Equal(t, FeedAuthor, first.Author)

	second := items[1]
	assert.Equal(t, "Oil Prices Dip", second.Title)
	assert.Equal(t, "https://tradingeconomics.com/news/2", second.URL)
	assert.Equal(t, "Crude fell 2%.", second.Content)
	assert.Equal(t, "", second.PublishedAt, "no timestamp paragraph for the last article")
}

// TestConvert_TimestampNeverReachesContent verifies paragraphs ending in
// "ago" become published_at and are never concatenated into body text
func TestConvert_TimestampNeverReachesContent(t *testing.T) {
	items, err := Convert(streamPage)
	require.NoError(t, err)

	for _, item := range items {
		assert.NotContains(t, item.Content, "3 hours ago")
	}
	assert.Equal(t, "3 hours ago", items[0].PublishedAt)
}

// TestConvert_TimestampLastWriteWins verifies a second "ago" paragraph
// overwrites the first
func TestConvert_TimestampLastWriteWins(t *testing.T) {
	input := "[**Title**](/news/1)\n\n3 hours ago\n\n5 hours ago\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "5 hours ago", items[0].PublishedAt)
}

// TestConvert_MetadataParagraphDiscarded verifies "[United States]"
// paragraphs never appear anywhere in the output
func TestConvert_MetadataParagraphDiscarded(t *testing.T) {
	items, err := Convert(streamPage)
	require.NoError(t, err)

	for _, item := range items {
		assert.NotContains(t, item.Content, "ignore this")
		assert.NotContains(t, item.Summary, "ignore this")
	}
}

// TestConvert_CategoryStreamLink verifies a stream?i= link reclassifies the
// open article, stripping brackets and replacing + with spaces
func TestConvert_CategoryStreamLink(t *testing.T) {
	input := "[**Jobs Report Beats**](/news/3)\n\n" +
		"[[United States]](/stream?i=5)\n\n" +
		"Payrolls grew by 300k.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "United States", items[0].Category)
	assert.Equal(t, "Payrolls grew by 300k.", items[0].Content)
}

// TestConvert_CategoryPlusSignsBecomeSpaces verifies + characters in
// category link text turn into spaces
func TestConvert_CategoryPlusSignsBecomeSpaces(t *testing.T) {
	input := "[**GDP Revised Up**](/news/4)\n\n" +
		"[[interest+rate]](/stream?i=9)\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "interest rate", items[0].Category)
}

// TestConvert_CategoryLastWriteWins verifies a later category link
// overrides an earlier one on the same article
func TestConvert_CategoryLastWriteWins(t *testing.T) {
	input := "[**Title**](/news/1)\n\n" +
		"[[markets]](/stream?i=1)\n\n" +
		"[[bonds]](/stream?i=2)\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bonds", items[0].Category)
}

// TestConvert_CategoryLinkBeforeAnyTitleIgnored verifies a category link
// with no open article is a no-op
func TestConvert_CategoryLinkBeforeAnyTitleIgnored(t *testing.T) {
	input := "[[markets]](/stream?i=1)\n\n[**Title**](/news/1)\n\nBody.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, DefaultCategory, items[0].Category)
}

// TestConvert_PreTitleParagraphsDiscarded verifies text before the first
// title link never accumulates
func TestConvert_PreTitleParagraphsDiscarded(t *testing.T) {
	input := "Some navigation leftovers.\n\n[**Title**](/news/1)\n\nBody.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Body.", items[0].Content)
}

// TestConvert_ContentFragmentsJoinedByBlankLine verifies multiple body
// paragraphs join with a blank-line separator in encounter order
func TestConvert_ContentFragmentsJoinedByBlankLine(t *testing.T) {
	input := "[**Title**](/news/1)\n\nFirst fragment.\n\nSecond fragment.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "First fragment.\n\nSecond fragment.", items[0].Content)
}

// TestConvert_NavigationPrefixStripped verifies everything up to and
// including the first "- united states" marker never reaches the splitter
func TestConvert_NavigationPrefixStripped(t *testing.T) {
	input := "[**Menu Item**](/nav/1)\n\n- united states\n\n" +
		"[**Real Article**](/news/1)\n\nBody.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Real Article", items[0].Title)
}

// TestConvert_NoTitlesYieldsEmptyList verifies a document without bold
// title links produces an empty list, not an error
func TestConvert_NoTitlesYieldsEmptyList(t *testing.T) {
	items, err := Convert("Just a paragraph.\n\nAnd [a plain link](/x).\n")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestConvert_PlainLinksIgnored verifies non-title, non-category links
// contribute nothing
func TestConvert_PlainLinksIgnored(t *testing.T) {
	input := "[**Title**](/news/1)\n\nSee [the full report](/reports/1) today.\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Title", items[0].Title)
	assert.NotContains(t, items[0].Content, "full report")
}

// TestConvert_InvalidUTF8IsParseError verifies structural failures are
// fatal for the whole document
func TestConvert_InvalidUTF8IsParseError(t *testing.T) {
	items, err := Convert("[**Title**](/news/1)\n\n\xff\xfe\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Nil(t, items)
}

// TestConvert_SummaryIsPrefixOfContent verifies the summary property for a
// long body: at most 200 characters, always a prefix of the trimmed content
func TestConvert_SummaryIsPrefixOfContent(t *testing.T) {
	body := strings.Repeat("Markets moved today. ", 20)
	input := "[**Title**](/news/1)\n\n" + body + "\n"

	items, err := Convert(input)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Len(t, []rune(item.Summary), 200)
	assert.True(t, strings.HasPrefix(item.Content, item.Summary))
}

// TestFinalize_EmptyContentMeansEmptySummary verifies summary is empty if
// and only if content is empty
func TestFinalize_EmptyContentMeansEmptySummary(t *testing.T) {
	out := Finalize([]Article{
		{Title: "A", Content: ""},
		{Title: "B", Content: "short body"},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "", out[0].Summary)
	assert.Equal(t, "short body", out[1].Summary)
}

// TestFinalize_TrimsContent verifies surrounding whitespace is removed and
// the summary derives from the trimmed text
func TestFinalize_TrimsContent(t *testing.T) {
	out := Finalize([]Article{{Title: "A", Content: "  body text \n"}})

	require.Len(t, out, 1)
	assert.Equal(t, "body text", out[0].Content)
	assert.Equal(t, "body text", out[0].Summary)
}

// TestFinalize_Idempotent verifies running the finalizer on its own output
// changes nothing
func TestFinalize_Idempotent(t *testing.T) {
	once := Finalize([]Article{
		{Title: "A", Content: "  " + strings.Repeat("x", 300) + "  "},
		{Title: "B", Content: "plain"},
	})
	twice := Finalize(once)

	assert.Equal(t, once, twice)
}

// TestFinalize_PreservesOrderAndLength verifies nothing is dropped or
// reordered
func TestFinalize_PreservesOrderAndLength(t *testing.T) {
	in := []Article{{Title: "first"}, {Title: "second"}, {Title: "third"}}
	out := Finalize(in)

	require.Len(t, out, 3)
	for i := range in {
		assert.Equal(t, in[i].Title, out[i].Title)
	}
}
