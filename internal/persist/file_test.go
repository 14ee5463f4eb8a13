package persist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbsearch/internal/domain"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Vectors: [][]float64{{0.5, 0.5}, {0.25, 0.25, 0.5}},
		Texts:   []string{"health insurance", "auto insurance for cars"},
		Metadata: []domain.Metadata{
			{"category": "health", "id": "a"},
			{"category": "auto", "id": "b"},
		},
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	f := NewFile(path)

	require.NoError(t, f.Save(ctx, sampleSnapshot()))

	got, ok, err := f.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot().Vectors, got.Vectors)
	assert.Equal(t, sampleSnapshot().Texts, got.Texts)
	assert.Equal(t, "health", got.Metadata[0]["category"])
	assert.True(t, got.Timestamp.Equal(sampleSnapshot().Timestamp))
}

func TestFile_SelfDescribingLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, NewFile(path).Save(ctx, sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"vectors", "texts", "metadata", "timestamp"} {
		assert.Contains(t, raw, field)
	}
}

func TestFile_MissingFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent.json"))

	snap, ok, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, snap)
}

func TestFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	_, ok, err := NewFile(path).Load(context.Background())
	assert.False(t, ok)
	var loadErr *domain.StoreLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestFile_LengthMismatchIsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.json")
	payload := `{"vectors":[[1,2]],"texts":["a","b"],"metadata":[{}],"timestamp":"2026-03-14T09:30:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, ok, err := NewFile(path).Load(context.Background())
	assert.False(t, ok)
	var loadErr *domain.StoreLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "differ in length")
}

func TestFile_CreatesParentDirectories(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshot.json")

	require.NoError(t, NewFile(path).Save(ctx, sampleSnapshot()))
	_, ok, err := NewFile(path).Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
