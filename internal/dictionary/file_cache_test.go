package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte(`{"word":"hund"}`), nil
	}

	got, err := cache.cache("bm-hund", fetch)
	require.NoError(t, err)
	assert.Equal(t, `{"word":"hund"}`, string(got))
	assert.Equal(t, 1, calls)

	contents, err := os.ReadFile(filepath.Join(dir, "bm-hund.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"word":"hund"}`, string(contents))

	// Second lookup is served from disk.
	got, err = cache.cache("bm-hund", fetch)
	require.NoError(t, err)
	assert.Equal(t, `{"word":"hund"}`, string(got))
	assert.Equal(t, 1, calls)
}

func TestFileCache_FetchError(t *testing.T) {
	cache := NewFileCache(t.TempDir())

	wantErr := errors.New("network down")
	_, err := cache.cache("bm-hund", func() ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestFileCache_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	cache := NewFileCache(dir)

	_, err := cache.cache("bm-hund", func() ([]byte, error) {
		return []byte("{}"), nil
	})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "bm-hund.json"))
	assert.NoError(t, err)
}

func TestFileCache_KeySanitization(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir)

	_, err := cache.cache("bm-å gå/hjem", func() ([]byte, error) {
		return []byte("{}"), nil
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bm-å_gå_hjem.json"))
	assert.NoError(t, err, "spaces and slashes are flattened")
}
