// Package vault adapts a directory tree of notes to the link rewriter: it
// lists the files links can point at, reads and writes documents, and runs
// rewrite jobs over a set of documents.
package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ryotapoi/linkconv/internal/config"
	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/index"
)

var (
	// ErrNotMarkdown is returned when a document path is not a .md file.
	ErrNotMarkdown = errors.New("not a markdown document")
	// ErrOutsideVault is returned for paths that leave the vault root.
	ErrOutsideVault = errors.New("path is outside the vault")
)

// Vault is an opened vault. It resolves links through the embedded
// FileIndex.
type Vault struct {
	*core.FileIndex

	Root      string
	Config    *config.Config
	FromIndex bool // file list was read from the sqlite index
}

// Open lists the files of the vault at root. With cfg.UseIndex the list
// comes from the index when one exists; otherwise the tree is walked.
func Open(root string, cfg *config.Config) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve vault path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "open vault")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("vault path is not a directory: %s", abs)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	v := &Vault{Root: abs, Config: cfg}
	files, err := v.listFiles()
	if err != nil {
		return nil, err
	}
	v.FileIndex = core.NewFileIndex(files)
	return v, nil
}

// Refresh re-reads the file list, e.g. after files were added or removed.
func (v *Vault) Refresh() error {
	files, err := v.listFiles()
	if err != nil {
		return err
	}
	v.FileIndex = core.NewFileIndex(files)
	return nil
}

func (v *Vault) listFiles() ([]string, error) {
	if v.Config.UseIndex {
		files, err := index.Load(v.Root)
		if err == nil {
			v.FromIndex = true
			return v.Config.FilterExcluded(files), nil
		}
		if !errors.Is(err, index.ErrNoIndex) {
			return nil, err
		}
	}
	files, err := collectFiles(v.Root)
	if err != nil {
		return nil, errors.Wrap(err, "walk vault")
	}
	return v.Config.FilterExcluded(files), nil
}

// collectFiles walks root and returns every file as a sorted vault-relative
// path. Hidden directories (.obsidian, .git, .linkconv, .trash) are skipped.
func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, core.NormalizePath(rel))
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Rel converts p to a vault-relative path. Absolute paths must lie inside
// the vault; relative paths are taken as already vault-relative.
func (v *Vault) Rel(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(v.Root, p)
		if err != nil {
			return "", errors.Wrap(ErrOutsideVault, p)
		}
		p = rel
	}
	rel := core.NormalizePath(p)
	if rel == ".." || strings.HasPrefix(rel, "../") || strings.HasPrefix(rel, "/") {
		return "", errors.Wrap(ErrOutsideVault, p)
	}
	return rel, nil
}

func (v *Vault) abs(rel string) string {
	return filepath.Join(v.Root, filepath.FromSlash(rel))
}

// ReadText returns the content of the document at rel.
func (v *Vault) ReadText(rel string) (string, error) {
	data, err := os.ReadFile(v.abs(rel))
	if err != nil {
		return "", errors.Wrapf(err, "read %s", rel)
	}
	return string(data), nil
}

// WriteText replaces the content of the existing document at rel. File
// permission bits are kept, and with Config.KeepMtime so is the
// modification time.
func (v *Vault) WriteText(rel, text string) error {
	full := v.abs(rel)
	info, err := os.Stat(full)
	if err != nil {
		return errors.Wrapf(err, "stat %s", rel)
	}
	if err := writeFilePreservePerm(full, []byte(text), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "write %s", rel)
	}
	if v.Config.KeepMtime {
		if err := os.Chtimes(full, info.ModTime(), info.ModTime()); err != nil {
			return errors.Wrapf(err, "restore mtime of %s", rel)
		}
	}
	return nil
}

// writeFilePreservePerm writes data to path with the given permission bits.
// os.WriteFile applies umask on file creation, so os.Chmod is called to
// ensure the exact permission bits are set.
func writeFilePreservePerm(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// Scope selects the documents of a batch. At most one of File and Folder
// is set; neither means the whole vault.
type Scope struct {
	File   string
	Folder string
}

func (s Scope) String() string {
	switch {
	case s.File != "":
		return "file:" + s.File
	case s.Folder != "":
		return "folder:" + s.Folder
	}
	return "vault"
}

// Batch reports whether the scope covers more than one named document.
func (s Scope) Batch() bool {
	return s.File == ""
}

// Documents returns the markdown documents in scope, sorted by path.
func (v *Vault) Documents(s Scope) ([]string, error) {
	if s.File != "" && s.Folder != "" {
		return nil, errors.New("file and folder scopes are exclusive")
	}

	if s.File != "" {
		rel, err := v.Rel(s.File)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(filepath.Ext(rel), ".md") {
			return nil, errors.Wrap(ErrNotMarkdown, rel)
		}
		if _, err := os.Stat(v.abs(rel)); err != nil {
			return nil, errors.Wrapf(err, "document %s", rel)
		}
		return []string{rel}, nil
	}

	prefix := ""
	if s.Folder != "" {
		rel, err := v.Rel(s.Folder)
		if err != nil {
			return nil, err
		}
		if rel != "." {
			prefix = rel + "/"
		}
	}

	var docs []string
	for _, f := range v.Files() {
		if f.IsNote() && strings.HasPrefix(f.Path, prefix) {
			docs = append(docs, f.Path)
		}
	}
	sort.Strings(docs)
	return docs, nil
}
