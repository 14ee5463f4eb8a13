package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFiles_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "faq.txt", "Health insurance covers doctor visits.\n")

	entries, err := LoadFiles([]string{path})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Health insurance covers doctor visits.", entries[0].Text)
	assert.Equal(t, path, entries[0].Metadata["source"])
	assert.NotEmpty(t, entries[0].Metadata["id"])
}

func TestLoadFiles_NormalizesBothJSONShapes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "kb.json", `[
		{"text": "New shape entry.", "category": "claims", "keywords": ["claims", "filing"]},
		{"content": "Old shape entry.", "section": "billing"},
		{"content": "   "},
		{"id": "kept-id", "text": "Entry with explicit id."}
	]`)

	entries, err := LoadFiles([]string{path})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "New shape entry.", entries[0].Text)
	assert.Equal(t, "claims", entries[0].Metadata["category"])
	assert.Equal(t, []string{"claims", "filing"}, entries[0].Metadata["keywords"])

	// The legacy content/section keys map onto the canonical shape.
	assert.Equal(t, "Old shape entry.", entries[1].Text)
	assert.Equal(t, "billing", entries[1].Metadata["category"])
	assert.NotEmpty(t, entries[1].Metadata["id"])

	assert.Equal(t, "kept-id", entries[2].Metadata["id"])
}

func TestLoadFiles_SkipsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "binary")
	txt := writeFile(t, dir, "note.txt", "Some knowledge.")

	entries, err := LoadFiles([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, txt, entries[0].Metadata["source"])
}

func TestLoadFiles_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", "{broken")

	_, err := LoadFiles([]string{path})
	assert.Error(t, err)
}

func TestLoadFiles_NoEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   ")

	_, err := LoadFiles([]string{filepath.Join(dir, "*.txt")})
	assert.Error(t, err)
}
