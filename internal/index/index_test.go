package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/linkconv/internal/core"
)

func writeVault(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestBuildAndLoad(t *testing.T) {
	dir := writeVault(t, map[string]string{
		"Home.md":       "[[Plan]] and [pic](img/pic.png) and [[Missing]]\n",
		"notes/Plan.md": "back to [Home](../Home.md)\n",
		"img/pic.png":   "png",
	})
	files := []string{"Home.md", "img/pic.png", "notes/Plan.md"}

	st, err := Build(dir, files, core.Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 3, Notes: 2, Links: 4, Unresolved: 1}, st)

	_, err = os.Stat(Path(dir) + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary database must be removed")

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, files, got)

	read, err := ReadStats(dir)
	require.NoError(t, err)
	assert.Equal(t, st, read)

	back, err := Backlinks(dir, "Home.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/Plan.md"}, back)

	back, err = Backlinks(dir, "notes/Plan.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"Home.md"}, back)
}

func TestBuildResolvesEncodedLinks(t *testing.T) {
	dir := writeVault(t, map[string]string{
		"Home.md":    "[n](My%20Note.md)\n",
		"My Note.md": "",
	})

	st, err := Build(dir, []string{"Home.md", "My Note.md"}, core.Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 2, Notes: 2, Links: 1, Unresolved: 0}, st)

	back, err := Backlinks(dir, "My Note.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"Home.md"}, back)
}

func TestBuildReplacesExisting(t *testing.T) {
	dir := writeVault(t, map[string]string{"A.md": "", "B.md": ""})

	_, err := Build(dir, []string{"A.md", "B.md"}, core.Options{})
	require.NoError(t, err)
	_, err = Build(dir, []string{"A.md"}, core.Options{})
	require.NoError(t, err)

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.md"}, got)
}

func TestBuildSkipCode(t *testing.T) {
	dir := writeVault(t, map[string]string{"A.md": "`[[B]]` [[B]]\n", "B.md": ""})

	st, err := Build(dir, []string{"A.md", "B.md"}, core.Options{SkipCode: true})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Links)
}

func TestBuildMissingFile(t *testing.T) {
	dir := writeVault(t, map[string]string{"A.md": ""})
	_, err := Build(dir, []string{"A.md", "gone.md"}, core.Options{})
	require.Error(t, err)

	_, err = Load(dir)
	assert.True(t, errors.Is(err, ErrNoIndex), "failed build must not install an index")
}

func TestLoadNoIndex(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoIndex))

	_, err = ReadStats(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoIndex))
}
