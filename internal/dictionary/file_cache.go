package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores raw dictionary responses on disk so repeated lookups of
// the same word never hit the API again.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(key string) string {
	// Words can contain spaces and slashes; keep the file name flat.
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(f.rootDir, safe+".json")
}

func (cache *FileCache) cache(key string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(key)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(key)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, fmt.Errorf("lookup for cache > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return nil, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(key string) ([]byte, error) {
	file, err := os.Open(cache.filePath(key))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
