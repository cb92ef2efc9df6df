package core

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// span is a half-open byte range [start, stop).
type span struct {
	start int
	stop  int
}

var codeParser = goldmark.New().Parser()

// codeRanges returns the byte ranges of inline code spans and code blocks
// (fenced or indented) in src.
func codeRanges(src string) []span {
	source := []byte(src)
	doc := codeParser.Parse(text.NewReader(source))

	var out []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				out = append(out, span{start: lines.At(0).Start, stop: lines.At(lines.Len() - 1).Stop})
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan:
			if s, ok := codeSpanRange(n); ok {
				out = append(out, s)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// codeSpanRange covers the text segments of an inline code span.
func codeSpanRange(n ast.Node) (span, bool) {
	s := span{start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		if s.start == -1 || t.Segment.Start < s.start {
			s.start = t.Segment.Start
		}
		if t.Segment.Stop > s.stop {
			s.stop = t.Segment.Stop
		}
	}
	return s, s.start != -1
}

func inSpans(spans []span, offset int) bool {
	for _, s := range spans {
		if offset >= s.start && offset < s.stop {
			return true
		}
	}
	return false
}
