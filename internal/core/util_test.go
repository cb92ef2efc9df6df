package core

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"A.md", "A.md"},
		{"./A.md", "A.md"},
		{"sub//A.md", "sub/A.md"},
		{"sub/../A.md", "A.md"},
		{"sub/deep/", "sub/deep"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBuildRewritePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"A.md", "A"},
		{"sub/A.md", "sub/A"},
		{"A.MD", "A"},
		{"image.png", "image.png"},
		{"A", "A"},
		{"md", "md"},
	}
	for _, tt := range tests {
		if got := buildRewritePath(tt.path); got != tt.want {
			t.Errorf("buildRewritePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEscapesVault(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"A.md", false},
		{"..", true},
		{"../A.md", true},
		{"..A.md", false},
		{"sub/../A.md", false},
	}
	for _, tt := range tests {
		if got := escapesVault(tt.path); got != tt.want {
			t.Errorf("escapesVault(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestJoinSource(t *testing.T) {
	tests := []struct {
		source string
		target string
		want   string
	}{
		{"Home.md", "Plan", "Plan"},
		{"notes/Home.md", "Plan.md", "notes/Plan.md"},
		{"a/b/c.md", "../d/e.md", "a/d/e.md"},
		{"a/b/c.md", "./x.md", "a/b/x.md"},
		{"Home.md", "../x.md", "../x.md"},
	}
	for _, tt := range tests {
		if got := joinSource(tt.source, tt.target); got != tt.want {
			t.Errorf("joinSource(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}
