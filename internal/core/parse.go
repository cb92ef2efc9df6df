package core

import "strings"

// Kind classifies a recognized link occurrence.
type Kind int

const (
	PlainMarkdown Kind = iota
	PlainWiki
	MarkdownTransclusion
	WikiTransclusion
)

func (k Kind) String() string {
	switch k {
	case PlainMarkdown:
		return "markdown"
	case PlainWiki:
		return "wikilink"
	case MarkdownTransclusion:
		return "markdown-transclusion"
	case WikiTransclusion:
		return "wikilink-transclusion"
	}
	return "unknown"
}

// Notation returns the notation family the kind belongs to.
func (k Kind) Notation() Notation {
	if k == PlainWiki || k == WikiTransclusion {
		return Wiki
	}
	return Markdown
}

// IsTransclusion reports whether the kind carries a block or heading reference.
func (k Kind) IsTransclusion() bool {
	return k == MarkdownTransclusion || k == WikiTransclusion
}

// Link is one link occurrence found in a text buffer.
type Link struct {
	Kind       Kind
	Raw        string // exact matched text
	Target     string // link target as written; file part only for transclusions
	AliasOrRef string // display alias, or block/heading reference for transclusions
	Source     string // vault-relative path of the containing document
	Start      int    // byte offset of Raw in the scanned text
	End        int
}

// Extract scans text and returns every recognized link in document order.
// Web links are consumed but never returned. Spans that fail recognition
// are left as ordinary text.
func Extract(text, sourcePath string, opts Options) []Link {
	var code []span
	if opts.SkipCode {
		code = codeRanges(text)
	}

	var out []Link
	for i := 0; i < len(text); {
		open := strings.IndexByte(text[i:], '[')
		if open == -1 {
			break
		}
		i += open
		l, ok := recognize(text, i)
		if !ok {
			i++
			continue
		}
		i = l.End
		if isURL(l.Target) || inSpans(code, l.Start) {
			continue
		}
		l.Source = sourcePath
		out = append(out, l)
	}
	return out
}

// recognize tries the wikilink recognizers, then the markdown ones, at text[i].
func recognize(text string, i int) (Link, bool) {
	if strings.HasPrefix(text[i:], "[[") {
		if l, ok := matchWiki(text, i); ok {
			return l, true
		}
	}
	return matchMarkdown(text, i)
}

// matchWiki recognizes [[body]] where body holds no ']' and no line break.
func matchWiki(text string, i int) (Link, bool) {
	bodyStart := i + 2
	rel := strings.IndexByte(text[bodyStart:], ']')
	if rel == -1 {
		return Link{}, false
	}
	close := bodyStart + rel
	if close+1 >= len(text) || text[close+1] != ']' {
		return Link{}, false
	}
	body := text[bodyStart:close]
	if strings.ContainsAny(body, "\r\n") {
		return Link{}, false
	}
	end := close + 2
	l := Link{Raw: text[i:end], Start: i, End: end}

	// Transclusion is tried first; it only falls through when either
	// side of the '#' is empty.
	if file, ref, ok := splitTransclusion(body); ok {
		l.Kind, l.Target, l.AliasOrRef = WikiTransclusion, file, ref
		return l, true
	}
	target, alias := splitAlias(body)
	target = strings.TrimSuffix(target, "#")
	if target == "" {
		return Link{}, false
	}
	l.Kind, l.Target, l.AliasOrRef = PlainWiki, target, alias
	return l, true
}

// matchMarkdown recognizes [alias](target) where alias holds no ']' and
// target holds no ')'.
func matchMarkdown(text string, i int) (Link, bool) {
	rel := strings.IndexByte(text[i+1:], ']')
	if rel == -1 {
		return Link{}, false
	}
	mid := i + 1 + rel
	if mid+1 >= len(text) || text[mid+1] != '(' {
		return Link{}, false
	}
	rel = strings.IndexByte(text[mid+2:], ')')
	if rel == -1 {
		return Link{}, false
	}
	close := mid + 2 + rel
	alias := text[i+1 : mid]
	target := text[mid+2 : close]
	if strings.ContainsAny(alias, "\r\n") || strings.ContainsAny(target, "\r\n") {
		return Link{}, false
	}
	end := close + 1
	l := Link{Raw: text[i:end], Start: i, End: end}

	if file, ref, ok := splitTransclusion(target); ok {
		l.Kind, l.Target, l.AliasOrRef = MarkdownTransclusion, file, ref
		return l, true
	}
	target = strings.TrimSuffix(target, "#")
	if target == "" {
		return Link{}, false
	}
	l.Kind, l.Target, l.AliasOrRef = PlainMarkdown, target, alias
	return l, true
}

// splitTransclusion splits "file#ref" on the first '#'. ok is false unless
// both sides are non-empty.
func splitTransclusion(s string) (file, ref string, ok bool) {
	idx := strings.IndexByte(s, '#')
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// splitAlias splits "target|alias" on the first '|'.
func splitAlias(input string) (string, string) {
	if idx := strings.IndexByte(input, '|'); idx != -1 {
		return input[:idx], input[idx+1:]
	}
	return input, ""
}

// extractSubpath splits "target#subpath" into (target, "#subpath").
// Returns (input, "") if no subpath.
func extractSubpath(input string) (string, string) {
	if idx := strings.Index(input, "#"); idx != -1 {
		return input[:idx], input[idx:]
	}
	return input, ""
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http")
}
