package core

import (
	"path"
	"sort"
	"strings"
)

// File describes a vault file known to the lookup.
type File struct {
	Path     string // vault-relative, forward slashes
	Name     string // final element, with extension
	Ext      string // extension without the dot
	Basename string // Name without extension
}

// NewFile derives the name parts of a vault-relative path.
func NewFile(p string) File {
	p = NormalizePath(p)
	name := path.Base(p)
	ext := path.Ext(name)
	return File{
		Path:     p,
		Name:     name,
		Ext:      strings.TrimPrefix(ext, "."),
		Basename: strings.TrimSuffix(name, ext),
	}
}

// IsNote reports whether the file is a markdown note.
func (f File) IsNote() bool {
	return strings.EqualFold(f.Ext, "md")
}

// FileLookup is the file-resolution service the rewriter depends on.
type FileLookup interface {
	// Resolve finds the file linkpath refers to from sourcePath.
	Resolve(linkpath, sourcePath string) (File, bool)
	// Files lists every known file.
	Files() []File
}

// FileIndex is an in-memory FileLookup over a fixed set of vault paths.
type FileIndex struct {
	files  []File
	byPath map[string]int   // lowercase path → index
	byName map[string][]int // lowercase name → indices
}

// NewFileIndex indexes the given vault-relative paths. Duplicates are dropped.
func NewFileIndex(paths []string) *FileIndex {
	fi := &FileIndex{
		byPath: make(map[string]int, len(paths)),
		byName: make(map[string][]int, len(paths)),
	}
	for _, p := range paths {
		f := NewFile(p)
		lower := strings.ToLower(f.Path)
		if _, ok := fi.byPath[lower]; ok {
			continue
		}
		idx := len(fi.files)
		fi.files = append(fi.files, f)
		fi.byPath[lower] = idx
		fi.byName[strings.ToLower(f.Name)] = append(fi.byName[strings.ToLower(f.Name)], idx)
	}
	return fi
}

// Files returns the indexed files in insertion order.
func (fi *FileIndex) Files() []File {
	return fi.files
}

// Len returns the number of indexed files.
func (fi *FileIndex) Len() int {
	return len(fi.files)
}

// Resolve finds the file linkpath points to. Lookups are case-insensitive
// and an extension-less link also matches "<link>.md". Order: relative to
// the source folder, vault-absolute path, then name/suffix match. Suffix
// ties prefer the source's folder, then fewer segments, then lexical order.
func (fi *FileIndex) Resolve(linkpath, sourcePath string) (File, bool) {
	p, _ := extractSubpath(linkpath)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return File{}, false
	}

	if rel := joinSource(sourcePath, p); !escapesVault(rel) {
		if f, ok := fi.exact(rel); ok {
			return f, true
		}
	}
	if f, ok := fi.exact(NormalizePath(p)); ok {
		return f, true
	}
	return fi.bySuffix(NormalizePath(p), sourcePath)
}

func (fi *FileIndex) exact(p string) (File, bool) {
	lower := strings.ToLower(p)
	if idx, ok := fi.byPath[lower]; ok {
		return fi.files[idx], true
	}
	if idx, ok := fi.byPath[lower+".md"]; ok {
		return fi.files[idx], true
	}
	return File{}, false
}

func (fi *FileIndex) bySuffix(p, sourcePath string) (File, bool) {
	if escapesVault(p) {
		return File{}, false
	}
	lower := strings.ToLower(p)
	name := path.Base(lower)

	var candidates []int
	for _, key := range []string{name, name + ".md"} {
		for _, idx := range fi.byName[key] {
			fp := strings.ToLower(fi.files[idx].Path)
			if hasPathSuffix(fp, lower) || hasPathSuffix(fp, lower+".md") {
				candidates = append(candidates, idx)
			}
		}
	}
	if len(candidates) == 0 {
		return File{}, false
	}

	srcDir := path.Dir(sourcePath)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := fi.files[candidates[i]], fi.files[candidates[j]]
		aLocal, bLocal := path.Dir(a.Path) == srcDir, path.Dir(b.Path) == srcDir
		if aLocal != bLocal {
			return aLocal
		}
		if da, db := strings.Count(a.Path, "/"), strings.Count(b.Path, "/"); da != db {
			return da < db
		}
		return a.Path < b.Path
	})
	return fi.files[candidates[0]], true
}

// ResolveTarget resolves a link target as written in a document, percent
// escapes included.
func ResolveTarget(target, sourcePath string, files FileLookup) (File, bool) {
	return files.Resolve(decodeLink(target), sourcePath)
}

// hasPathSuffix reports whether p equals suffix or ends with "/"+suffix.
func hasPathSuffix(p, suffix string) bool {
	return p == suffix || strings.HasSuffix(p, "/"+suffix)
}

// countName counts known files whose name (with extension) matches name,
// ignoring case as Resolve does.
func countName(files FileLookup, name string) int {
	n := 0
	for _, f := range files.Files() {
		if strings.EqualFold(f.Name, name) {
			n++
		}
	}
	return n
}
