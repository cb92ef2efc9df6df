package core

import (
	"path"
	"path/filepath"
	"strings"
)

// NormalizePath cleans a vault-relative path: forward slashes, no leading "./".
func NormalizePath(p string) string {
	clean := filepath.ToSlash(filepath.Clean(p))
	return strings.TrimPrefix(clean, "./")
}

// buildRewritePath strips a trailing .md extension. Other extensions are kept
// (e.g. "A.md" → "A", "image.png" → "image.png").
func buildRewritePath(targetPath string) string {
	if hasMarkdownExt(targetPath) {
		return targetPath[:len(targetPath)-3]
	}
	return targetPath
}

func hasMarkdownExt(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".md")
}

// escapesVault reports whether a cleaned vault-relative path leaves the root.
func escapesVault(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}

// joinSource resolves target against the folder holding sourcePath.
func joinSource(sourcePath, target string) string {
	return NormalizePath(path.Join(path.Dir(sourcePath), target))
}

// trimEmpty drops leading and trailing empty segments.
func trimEmpty(parts []string) []string {
	start := 0
	for start < len(parts) && parts[start] == "" {
		start++
	}
	end := len(parts)
	for end > start && parts[end-1] == "" {
		end--
	}
	return parts[start:end]
}
