package core

import "testing"

func TestConvertToMarkdown(t *testing.T) {
	fi := testIndex()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"resolved", "[[Plan]]", "[Plan](Plan.md)"},
		{"alias", "[[Plan|my plan]]", "[my plan](Plan.md)"},
		{"path", "[[notes/Plan]]", "[Plan](notes/Plan.md)"},
		{"ext not doubled", "[[notes/Plan.md]]", "[Plan](notes/Plan.md)"},
		{"unresolved", "[[Missing]]", "[Missing](Missing)"},
		{"unresolved with space", "[[Some Idea]]", "[Some Idea](Some%20Idea)"},
		{"resolved with space", "[[My Note]]", "[My Note](My%20Note.md)"},
		{"attachment", "![[pic.png]]", "![pic](pic.png)"},
		{"heading transclusion", "[[Plan#Next Steps]]", "[](Plan.md#Next%20Steps)"},
		{"empty fragment dropped", "[[Plan#]]", "[Plan](Plan.md)"},
		{"block transclusion", "[[Plan#^abc def]]", "[](Plan.md#^abc%20def)"},
		{"web untouched", "[[https://example.com]]", "[[https://example.com]]"},
		{"markdown untouched", "[x](Plan.md)", "[x](Plan.md)"},
		{"surrounding text", "a [[Plan]] b", "a [Plan](Plan.md) b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertNotation(tt.in, "Home.md", Markdown, fi, Options{})
			if got != tt.want {
				t.Errorf("ConvertNotation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertToWiki(t *testing.T) {
	fi := testIndex()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"resolved", "[Plan](Plan.md)", "[[Plan]]"},
		{"alias kept", "[my plan](Plan.md)", "[[Plan|my plan]]"},
		{"basename alias elided", "[Plan](notes/Plan.md)", "[[notes/Plan]]"},
		{"empty alias", "[](notes/Plan.md)", "[[notes/Plan]]"},
		{"encoded", "[My Note](My%20Note.md)", "[[My Note]]"},
		{"unresolved", "[Some Idea](Some%20Idea)", "[[Some Idea]]"},
		{"unresolved alias", "[x](Missing)", "[[Missing|x]]"},
		{"attachment", "[pic](img/pic.png)", "[[img/pic.png]]"},
		{"block transclusion", "[](Plan.md#^abc%20def)", "[[Plan#^abc def]]"},
		{"transclusion alias dropped", "[see](Plan.md#Heading)", "[[Plan#Heading]]"},
		{"web untouched", "[site](https://example.com)", "[site](https://example.com)"},
		{"wiki untouched", "[[Plan|x]]", "[[Plan|x]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertNotation(tt.in, "Home.md", Wiki, fi, Options{})
			if got != tt.want {
				t.Errorf("ConvertNotation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertWithFormat(t *testing.T) {
	fi := testIndex()
	tests := []struct {
		name   string
		in     string
		to     Notation
		source string
		pref   FormatPreference
		want   string
	}{
		{"shortest to markdown", "[[notes/Plan]]", Markdown, "Home.md", FormatShortest, "[Plan](Plan.md)"},
		{"absolute to markdown", "[[Plan]]", Markdown, "Home.md", FormatAbsolute, "[Plan](notes/Plan.md)"},
		{"relative to markdown", "[[Plan]]", Markdown, "a/b/c.md", FormatRelative, "[Plan](../../notes/Plan.md)"},
		{"ambiguous shortest keeps path", "[[Home]]", Markdown, "notes/Plan.md", FormatShortest, "[Home](notes/Home.md)"},
		{"shortest to wiki", "[p](notes/Plan.md)", Wiki, "Home.md", FormatShortest, "[[Plan|p]]"},
		{"unresolved ignores format", "[[Missing]]", Markdown, "Home.md", FormatAbsolute, "[Missing](Missing)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertNotation(tt.in, tt.source, tt.to, fi, Options{Format: tt.pref})
			if got != tt.want {
				t.Errorf("ConvertNotation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertRepeatedLinks(t *testing.T) {
	fi := testIndex()
	in := "[[Plan]] then [[Plan]] and [[Plan|p]]"
	want := "[Plan](Plan.md) then [Plan](Plan.md) and [p](Plan.md)"
	if got := ConvertNotation(in, "Home.md", Markdown, fi, Options{}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvertAliasElisionRoundTrip(t *testing.T) {
	fi := testIndex()
	md := ConvertNotation("[[Home|Home]]", "Home.md", Markdown, fi, Options{})
	if md != "[Home](Home.md)" {
		t.Fatalf("to markdown = %q", md)
	}
	if wiki := ConvertNotation(md, "Home.md", Wiki, fi, Options{}); wiki != "[[Home]]" {
		t.Errorf("to wiki = %q, want [[Home]]", wiki)
	}
}

func TestConvertSkipCode(t *testing.T) {
	fi := testIndex()
	in := "`[[Plan]]` and [[Plan]]\n"
	want := "`[[Plan]]` and [Plan](Plan.md)\n"
	if got := ConvertNotation(in, "Home.md", Markdown, fi, Options{SkipCode: true}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlanConversion(t *testing.T) {
	fi := testIndex()
	edits := PlanConversion("[[Plan]] [x](Plan.md) [[Missing]]", "Home.md", Markdown, fi, Options{})
	if len(edits) != 2 {
		t.Fatalf("expected 2 edits, got %+v", edits)
	}
	if edits[0].Raw != "[[Plan]]" || edits[0].New != "[Plan](Plan.md)" {
		t.Errorf("edits[0] = %+v", edits[0])
	}
	if edits[1].Raw != "[[Missing]]" || edits[1].New != "[Missing](Missing)" {
		t.Errorf("edits[1] = %+v", edits[1])
	}
}

func TestApplySkipsStaleEdits(t *testing.T) {
	text := "[[A]] [[B]]"
	edits := []Edit{
		{Link: Link{Raw: "[[A]]", Start: 0, End: 5}, New: "a"},
		{Link: Link{Raw: "[[X]]", Start: 6, End: 11}, New: "x"},
	}
	if got := Apply(text, edits); got != "a [[B]]" {
		t.Errorf("Apply = %q, want %q", got, "a [[B]]")
	}
	if got := Apply(text, nil); got != text {
		t.Errorf("Apply(nil) = %q", got)
	}
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		in   string
		want Notation
	}{
		{"wikilink", Wiki},
		{"wiki", Wiki},
		{"Markdown", Markdown},
		{"md", Markdown},
	}
	for _, tt := range tests {
		got, err := ParseNotation(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseNotation(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseNotation("html"); err == nil {
		t.Error("expected error")
	}
}
