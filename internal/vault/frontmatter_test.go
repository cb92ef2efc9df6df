package vault

import (
	"strings"
	"testing"
)

func TestHasTag(t *testing.T) {
	keys := []string{"excalidraw-plugin", "kanban-plugin"}
	tests := []struct {
		name string
		text string
		want string
	}{
		{"kanban", "---\nkanban-plugin: basic\n---\n# Board\n", "kanban-plugin"},
		{"excalidraw", "---\ntags: [x]\nexcalidraw-plugin: parsed\n---\n", "excalidraw-plugin"},
		{"bool true", "---\nkanban-plugin: true\n---\n", "kanban-plugin"},
		{"bool false", "---\nkanban-plugin: false\n---\n", ""},
		{"empty value", "---\nkanban-plugin:\n---\n", ""},
		{"crlf", "---\r\nkanban-plugin: basic\r\n---\r\n", "kanban-plugin"},
		{"bom", "\ufeff---\nkanban-plugin: basic\n---\n", "kanban-plugin"},
		{"other key", "---\ntitle: x\n---\n", ""},
		{"no frontmatter", "# kanban-plugin: basic\n", ""},
		{"unterminated", "---\nkanban-plugin: basic\n", ""},
		{"not at top", "\n---\nkanban-plugin: basic\n---\n", ""},
		{"invalid yaml", "---\n[unclosed\n---\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HasTag(tt.text, keys)
			if got != tt.want || ok != (tt.want != "") {
				t.Errorf("HasTag = (%q, %v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestHasTagNoKeys(t *testing.T) {
	if _, ok := HasTag("---\nkanban-plugin: basic\n---\n", nil); ok {
		t.Error("expected no match without keys")
	}
}

func TestUnifiedDiff(t *testing.T) {
	if d := UnifiedDiff("A.md", "same\n", "same\n"); d != "" {
		t.Errorf("expected empty diff, got %q", d)
	}
	d := UnifiedDiff("A.md", "x [[B]]\n", "x [B](B.md)\n")
	for _, want := range []string{"--- a/A.md", "+++ b/A.md", "-x [[B]]", "+x [B](B.md)"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}
