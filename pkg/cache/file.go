package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps one JSON file per entry below a directory, grouped by
// key kind ("layout", "artifact"):
//
//	<dir>/<kind>/<hash[:2]>/<hash[2:]>.json
//
// Writes go through a temporary file and a rename so concurrent CLI runs
// never observe a half-written entry.
type FileCache struct {
	dir string
}

var _ Cache = (*FileCache)(nil)

// NewFileCache creates dir if needed and returns a cache stored in it.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired, unreadable or foreign entries
// are removed and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.Key != key || e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores data under key. A ttl of zero never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every entry and the directories that held them. It returns
// the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	count := 0
	var dirs []string
	err := c.walk(func(path string, d fs.DirEntry) {
		if d.IsDir() {
			dirs = append(dirs, path)
		} else if os.Remove(path) == nil {
			count++
		}
	})
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	return count, err
}

// Stats counts the stored entries per key kind.
func (c *FileCache) Stats() (map[string]int, error) {
	counts := make(map[string]int)
	err := c.walk(func(path string, d fs.DirEntry) {
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return
		}
		rel, _ := filepath.Rel(c.dir, path)
		counts[strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]]++
	})
	return counts, err
}

// Close does nothing.
func (c *FileCache) Close() error { return nil }

// walk visits everything below the cache directory. Unreadable paths are
// skipped.
func (c *FileCache) walk(fn func(path string, d fs.DirEntry)) error {
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && path != c.dir {
			fn(path, d)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, keyKind(key), h[:2], h[2:]+".json")
}

// keyKind returns the kind of a key such as "v1/layout:ab12" ("layout").
// Keys without a kind are filed under "other".
func keyKind(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		key = key[i+1:]
	}
	kind, _, ok := strings.Cut(key, ":")
	if !ok || kind == "" {
		return "other"
	}
	return kind
}
