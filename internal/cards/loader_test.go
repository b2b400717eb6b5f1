package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadEntriesFromDataDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "entries.csv", "id,title,provider,image_url,link\n"+
		"g1,Super Gold Quest,Acme Games,http://img/1.png,http://acme/g1\n"+
		"g2, Star Garden ,Bloom,http://img/2.png,\n")
	writeFile(t, dir, "custom_entries.csv", "Title,ID,Image_URL\n"+
		"Star Garden Deluxe,g2,http://img/2b.png\n"+
		"Night Drive,g3,http://img/3.png\n")

	entries, err := LoadEntriesFromDataDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{ID: "g1", Title: "Super Gold Quest", Provider: "Acme Games", ImageURL: "http://img/1.png", Link: "http://acme/g1"}, entries[0])
	// override keeps position, columns matched by name
	assert.Equal(t, Entry{ID: "g2", Title: "Star Garden Deluxe", ImageURL: "http://img/2b.png"}, entries[1])
	assert.Equal(t, "g3", entries[2].ID)
}

func TestLoadEntriesErrors(t *testing.T) {
	_, err := LoadEntriesFromDataDir(t.TempDir())
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "entries.csv", "id,provider\ng1,Acme\n")
	_, err = LoadEntriesFromDataDir(dir)
	assert.ErrorContains(t, err, `missing column "title"`)

	dir = t.TempDir()
	writeFile(t, dir, "entries.csv", "id,title,image_url\n,No Id,http://x\n")
	_, err = LoadEntriesFromDataDir(dir)
	assert.ErrorContains(t, err, "row 2 has no id")
}

func TestIsCatalogFile(t *testing.T) {
	assert.True(t, IsCatalogFile("/data/entries.csv"))
	assert.True(t, IsCatalogFile("custom_entries.csv"))
	assert.False(t, IsCatalogFile("/data/notes.csv"))
}
