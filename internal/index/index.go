// Package index keeps an optional sqlite snapshot of a vault: the known file
// list, used in place of a directory walk, and the links each note holds.
package index

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ryotapoi/linkconv/internal/core"
)

// ErrNoIndex is returned when the vault has no index database.
var ErrNoIndex = errors.New("index not found (run 'linkconv index' first)")

// Stats summarizes an index.
type Stats struct {
	Files      int `json:"files"`
	Notes      int `json:"notes"`
	Links      int `json:"links"`
	Unresolved int `json:"unresolved"`
}

// Build writes a fresh index for files (vault-relative paths). Notes are
// scanned for links, which are resolved against files. The database is
// built under a temporary name and renamed into place.
func Build(vaultPath string, files []string, opts core.Options) (Stats, error) {
	var st Stats
	if _, err := ensureDataDir(vaultPath); err != nil {
		return st, errors.Wrap(err, "create data dir")
	}

	tmpPath := Path(vaultPath) + ".tmp"
	_ = os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	db, err := openDBAt(tmpPath)
	if err != nil {
		return st, err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return st, errors.Wrap(err, "init schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return st, err
	}
	defer tx.Rollback()

	lookup := core.NewFileIndex(files)
	for _, f := range lookup.Files() {
		full := filepath.Join(vaultPath, filepath.FromSlash(f.Path))
		info, err := os.Stat(full)
		if err != nil {
			return st, errors.Wrapf(err, "stat %s", f.Path)
		}
		id, err := insertFile(tx, f.Path, f.Name, f.Ext, info.ModTime().Unix(), info.Size())
		if err != nil {
			return st, errors.Wrapf(err, "insert %s", f.Path)
		}
		st.Files++
		if !f.IsNote() {
			continue
		}
		st.Notes++

		content, err := os.ReadFile(full)
		if err != nil {
			return st, errors.Wrapf(err, "read %s", f.Path)
		}
		for _, l := range core.Extract(string(content), f.Path, opts) {
			var resolved sql.NullString
			if target, ok := core.ResolveTarget(l.Target, f.Path, lookup); ok {
				resolved = sql.NullString{String: target.Path, Valid: true}
			} else {
				st.Unresolved++
			}
			if err := insertLink(tx, id, l.Kind.String(), l.Raw, l.Target, resolved, l.Start); err != nil {
				return st, errors.Wrapf(err, "insert link in %s", f.Path)
			}
			st.Links++
		}
	}

	if err := tx.Commit(); err != nil {
		return st, err
	}
	if err := db.Close(); err != nil {
		return st, err
	}
	if err := os.Rename(tmpPath, Path(vaultPath)); err != nil {
		return st, errors.Wrap(err, "install index")
	}
	return st, nil
}

// Load returns the file list recorded in the index, sorted by path.
func Load(vaultPath string) ([]string, error) {
	db, err := open(vaultPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil, errors.Wrap(err, "query files")
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		files = append(files, p)
	}
	return files, rows.Err()
}

// ReadStats summarizes an existing index.
func ReadStats(vaultPath string) (Stats, error) {
	var st Stats
	db, err := open(vaultPath)
	if err != nil {
		return st, err
	}
	defer db.Close()

	row := db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM files),
		(SELECT COUNT(*) FROM files WHERE LOWER(ext) = 'md'),
		(SELECT COUNT(*) FROM links),
		(SELECT COUNT(*) FROM links WHERE resolved_path IS NULL)`)
	if err := row.Scan(&st.Files, &st.Notes, &st.Links, &st.Unresolved); err != nil {
		return st, errors.Wrap(err, "read stats")
	}
	return st, nil
}

// Backlinks returns the notes holding a link that resolves to target,
// sorted by path.
func Backlinks(vaultPath, target string) ([]string, error) {
	db, err := open(vaultPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT DISTINCT f.path FROM links l
		 JOIN files f ON f.id = l.source_id
		 WHERE l.resolved_path = ?
		 ORDER BY f.path`, core.NormalizePath(target))
	if err != nil {
		return nil, errors.Wrap(err, "query backlinks")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func open(vaultPath string) (*sql.DB, error) {
	p := Path(vaultPath)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoIndex
		}
		return nil, err
	}
	return openDBAt(p)
}
