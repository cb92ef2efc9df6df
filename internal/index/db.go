package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ryotapoi/linkconv/internal/config"
)

const dbFileName = "index.sqlite"

// Path returns the location of the index database inside the vault.
func Path(vaultPath string) string {
	return filepath.Join(vaultPath, config.DataDir, dbFileName)
}

func ensureDataDir(vaultPath string) (string, error) {
	dir := filepath.Join(vaultPath, config.DataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS files (
			id    INTEGER PRIMARY KEY,
			path  TEXT NOT NULL UNIQUE,
			name  TEXT NOT NULL,
			ext   TEXT NOT NULL,
			mtime INTEGER,
			size  INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_name ON files(name);`,
		`CREATE TABLE IF NOT EXISTS links (
			id            INTEGER PRIMARY KEY,
			source_id     INTEGER NOT NULL,
			kind          TEXT NOT NULL,
			raw_link      TEXT NOT NULL,
			target        TEXT NOT NULL,
			resolved_path TEXT,
			start_offset  INTEGER NOT NULL,
			FOREIGN KEY(source_id) REFERENCES files(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON links(source_id);`,
		`CREATE INDEX IF NOT EXISTS idx_links_resolved ON links(resolved_path);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertFile(tx *sql.Tx, path, name, ext string, mtime, size int64) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO files (path, name, ext, mtime, size) VALUES (?, ?, ?, ?, ?)`,
		path, name, ext, mtime, size,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertLink(tx *sql.Tx, sourceID int64, kind, rawLink, target string, resolved sql.NullString, start int) error {
	_, err := tx.Exec(
		`INSERT INTO links (source_id, kind, raw_link, target, resolved_path, start_offset)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sourceID, kind, rawLink, target, resolved, start,
	)
	return err
}
