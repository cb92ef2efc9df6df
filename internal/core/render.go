package core

// Render writes a link of kind dest for target and aliasOrRef as found in
// sourcePath. When the target resolves and pref is not FormatUnchanged the
// path is recomputed first.
func Render(dest Kind, target, aliasOrRef, sourcePath string, files FileLookup, pref FormatPreference) string {
	file, found := ResolveTarget(target, sourcePath, files)
	finalLink := target
	if found && pref != FormatUnchanged {
		finalLink = FormatPath(file, sourcePath, pref, files)
	}
	return renderLink(dest, finalLink, aliasOrRef, file, found)
}

// renderLink serializes finalLink in the notation of dest. file is only
// consulted when found is true.
func renderLink(dest Kind, finalLink, aliasOrRef string, file File, found bool) string {
	note := found && file.IsNote()

	switch dest {
	case PlainWiki:
		link := wikiTarget(finalLink, note)
		return "[[" + link + wikiAlias(aliasOrRef, finalLink, link, file, found) + "]]"

	case PlainMarkdown:
		text := aliasOrRef
		if text == "" {
			if found {
				text = file.Basename
			} else {
				text = finalLink
			}
		}
		return "[" + text + "](" + encodeLink(finalLink) + markdownExt(finalLink, note) + ")"

	case WikiTransclusion:
		return "[[" + wikiTarget(finalLink, note) + "#" + decodeLink(aliasOrRef) + "]]"

	case MarkdownTransclusion:
		return "[](" + encodeLink(finalLink) + markdownExt(finalLink, note) + "#" + encodeBlockRef(aliasOrRef) + ")"
	}
	return ""
}

// wikiTarget decodes finalLink; wikilinks to notes omit the .md extension.
func wikiTarget(finalLink string, note bool) string {
	link := decodeLink(finalLink)
	if note {
		link = buildRewritePath(link)
	}
	return link
}

// wikiAlias returns "|alias", or "" when the alias would only repeat the
// link text or the file's base name.
func wikiAlias(alias, finalLink, link string, file File, found bool) string {
	if alias == "" || alias == decodeLink(finalLink) || alias == link {
		return ""
	}
	if found && decodeLink(alias) == file.Basename {
		return ""
	}
	return "|" + alias
}

// markdownExt is ".md" for a note whose link does not already carry it.
func markdownExt(finalLink string, note bool) string {
	if note && !hasMarkdownExt(finalLink) {
		return ".md"
	}
	return ""
}
