package articles

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// event is a single inline or block occurrence reported by the walker, in
// document order. Only links and paragraphs carry article structure; every
// other element produces no event.
type event interface{ isEvent() }

// linkEvent reports an inline link. Text is the link's flattened inline
// text with strong-emphasis runs re-wrapped in their literal markers, so
// consumers can recognize bold-wrapped titles by the ** delimiters.
type linkEvent struct {
	text string
	url  string
}

// paragraphEvent reports a paragraph's text, excluding any text that
// belongs to links inside it (those arrive as their own linkEvents).
type paragraphEvent struct {
	text string
}

func (linkEvent) isEvent()      {}
func (paragraphEvent) isEvent() {}

// walkEvents decomposes markdown into the event sequence described above
// and feeds it to emit. Links are reported from any block context; only
// true paragraphs produce paragraphEvents, and a paragraph whose non-link
// text is blank produces none.
func walkEvents(source []byte, emit func(event)) error {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph:
			var buf strings.Builder
			flattenInline(n, source, emit, &buf)
			if para := buf.String(); strings.TrimSpace(para) != "" {
				emit(paragraphEvent{text: para})
			}
			return ast.WalkSkipChildren, nil
		case ast.KindLink:
			// Reached only for links outside paragraphs (list items,
			// headings); links inside paragraphs are handled above.
			link := n.(*ast.Link)
			emit(linkEvent{text: linkText(link, source), url: string(link.Destination)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// flattenInline collects the plain text beneath n into buf, emitting a
// linkEvent for every link it passes. Link text never reaches buf.
func flattenInline(n ast.Node, source []byte, emit func(event), buf *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Link:
			emit(linkEvent{text: linkText(c, source), url: string(c.Destination)})
		case *ast.AutoLink:
			// Bare URLs carry no article structure.
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		default:
			flattenInline(child, source, emit, buf)
		}
	}
}

// linkText reconstructs the literal inline text of a link. Emphasis markers
// are restored around emphasized runs because the splitter distinguishes
// title links by their literal ** wrapping.
func linkText(link *ast.Link, source []byte) string {
	var buf strings.Builder
	appendLiteralText(link, source, &buf)
	return buf.String()
}

func appendLiteralText(n ast.Node, source []byte, buf *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Emphasis:
			marker := strings.Repeat("*", c.Level)
			buf.WriteString(marker)
			appendLiteralText(child, source, buf)
			buf.WriteString(marker)
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		default:
			appendLiteralText(child, source, buf)
		}
	}
}
