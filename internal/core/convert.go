package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Notation is a link notation family.
type Notation int

const (
	Wiki Notation = iota
	Markdown
)

func (n Notation) String() string {
	if n == Wiki {
		return "wikilink"
	}
	return "markdown"
}

// kind returns the kind of this notation with or without transclusion.
func (n Notation) kind(transclusion bool) Kind {
	switch {
	case n == Wiki && transclusion:
		return WikiTransclusion
	case n == Wiki:
		return PlainWiki
	case transclusion:
		return MarkdownTransclusion
	}
	return PlainMarkdown
}

// ParseNotation parses "wikilink"/"wiki" or "markdown"/"md".
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wikilink", "wiki":
		return Wiki, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return Wiki, errors.Errorf("invalid notation: %q (must be wikilink or markdown)", s)
}

// Options carries the per-call settings of a rewrite.
type Options struct {
	Format   FormatPreference
	SkipCode bool // ignore links inside code spans and code blocks
}

// Edit is a link and the text that replaces it.
type Edit struct {
	Link
	New string
}

// PlanConversion returns the edits that rewrite every link of the other
// notation family into notation to.
func PlanConversion(text, sourcePath string, to Notation, files FileLookup, opts Options) []Edit {
	var edits []Edit
	for _, l := range Extract(text, sourcePath, opts) {
		if l.Kind.Notation() == to {
			continue
		}
		dest := to.kind(l.Kind.IsTransclusion())
		out := Render(dest, l.Target, l.AliasOrRef, sourcePath, files, opts.Format)
		if out == "" || out == l.Raw {
			continue
		}
		edits = append(edits, Edit{Link: l, New: out})
	}
	return edits
}

// ConvertNotation rewrites every link of text into notation to.
func ConvertNotation(text, sourcePath string, to Notation, files FileLookup, opts Options) string {
	return Apply(text, PlanConversion(text, sourcePath, to, files, opts))
}

// Apply replaces the span of each edit with its new text. Edits must be in
// ascending, non-overlapping order, as Extract yields them.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range edits {
		if e.Start < pos || e.End > len(text) || text[e.Start:e.End] != e.Raw {
			continue
		}
		b.WriteString(text[pos:e.Start])
		b.WriteString(e.New)
		pos = e.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
