package core

// PlanReformat returns the edits that rewrite the path of every resolvable
// link in the style opts.Format, keeping each link's own kind. Links that
// do not resolve are left alone.
func PlanReformat(text, sourcePath string, files FileLookup, opts Options) []Edit {
	if opts.Format == FormatUnchanged {
		return nil
	}
	var edits []Edit
	for _, l := range Extract(text, sourcePath, opts) {
		file, ok := ResolveTarget(l.Target, sourcePath, files)
		if !ok {
			continue
		}
		finalLink := FormatPath(file, sourcePath, opts.Format, files)
		out := renderLink(l.Kind, finalLink, l.AliasOrRef, file, true)
		if out == l.Raw {
			continue
		}
		edits = append(edits, Edit{Link: l, New: out})
	}
	return edits
}

// ReformatPaths rewrites the path of every resolvable link in text.
func ReformatPaths(text, sourcePath string, files FileLookup, opts Options) string {
	return Apply(text, PlanReformat(text, sourcePath, files, opts))
}
