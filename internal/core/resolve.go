package core

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// FormatPreference selects how a resolved link path is written.
type FormatPreference int

const (
	FormatUnchanged FormatPreference = iota
	FormatRelative
	FormatAbsolute
	FormatShortest
)

var formatNames = map[FormatPreference]string{
	FormatUnchanged: "not-change",
	FormatRelative:  "relative-path",
	FormatAbsolute:  "absolute-path",
	FormatShortest:  "shortest-path",
}

func (p FormatPreference) String() string {
	if s, ok := formatNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseFormatPreference parses a final link format name. "unchanged",
// "relative", "absolute" and "shortest" are accepted as short forms.
func ParseFormatPreference(s string) (FormatPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "not-change", "unchanged":
		return FormatUnchanged, nil
	case "relative-path", "relative":
		return FormatRelative, nil
	case "absolute-path", "absolute":
		return FormatAbsolute, nil
	case "shortest-path", "shortest":
		return FormatShortest, nil
	}
	return FormatUnchanged, errors.Errorf("invalid link format: %q (must be not-change, relative-path, absolute-path or shortest-path)", s)
}

// ResolveAndFormat resolves target from sourcePath and returns the path to
// write for it. An unresolved target is returned unchanged.
func ResolveAndFormat(target, sourcePath string, files FileLookup, pref FormatPreference) string {
	f, ok := ResolveTarget(target, sourcePath, files)
	if !ok {
		return target
	}
	if pref == FormatUnchanged {
		return decodeLink(target)
	}
	return FormatPath(f, sourcePath, pref, files)
}

// FormatPath writes the path of f in the given style, seen from sourcePath.
// A trailing .md is dropped.
func FormatPath(f File, sourcePath string, pref FormatPreference, files FileLookup) string {
	var p string
	switch pref {
	case FormatRelative:
		p = RelativeLink(sourcePath, f.Path)
		if p == "" {
			// A link to the source itself.
			p = f.Name
		}
	case FormatShortest:
		// A name shared by several files must keep its full path.
		if countName(files, f.Name) > 1 {
			p = f.Path
		} else {
			p = f.Name
		}
	default:
		p = f.Path
	}
	return buildRewritePath(p)
}

// RelativeLink returns the path of targetPath relative to the folder of
// sourcePath, e.g. ("a/b/c.md", "a/d/e.md") → "../d/e.md".
func RelativeLink(sourcePath, targetPath string) string {
	from := trimEmpty(strings.Split(sourcePath, "/"))
	to := trimEmpty(strings.Split(targetPath, "/"))
	if slices.Equal(from, to) {
		return ""
	}

	// The source's own file name never counts as a shared folder.
	common := 0
	for common < len(from)-1 && common < len(to) && from[common] == to[common] {
		common++
	}

	var parts []string
	for i := common; i < len(from)-1; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}
