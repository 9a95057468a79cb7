package dictionary

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileCache keeps raw API responses as one JSON file per word.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) filePath(word string) string {
	return filepath.Join(cache.rootDir, url.PathEscape(word)+".json")
}

// Fetch returns the cached response of word. On a miss it calls fetch and caches what it
// returns; failed fetches are not cached.
func (cache *FileCache) Fetch(word string, fetch func() ([]byte, error)) ([]byte, error) {
	contents, err := os.ReadFile(cache.filePath(word))
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	contents, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	if err := os.WriteFile(cache.filePath(word), contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile > %w", err)
	}
	return contents, nil
}
