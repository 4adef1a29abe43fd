package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"jsslice/internal/parser"
)

// summaryCacheSchema меняется вместе с форматом CachedSummary.
const summaryCacheSchema uint16 = 1

// SummaryCache stores successful per-file check summaries on disk, keyed
// by content hash and parse options. Failed files are never cached: their
// diagnostics must be reproduced. Safe for concurrent use.
type SummaryCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedSummary is the on-disk record.
type CachedSummary struct {
	Schema  uint16      `msgpack:"schema"`
	Summary FileSummary `msgpack:"summary"`
}

// OpenSummaryCache opens (creating) a cache in dir. Empty dir means
// $XDG_CACHE_HOME/jsslice or ~/.cache/jsslice.
func OpenSummaryCache(dir string) (*SummaryCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "jsslice")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &SummaryCache{dir: dir}, nil
}

func (c *SummaryCache) Dir() string { return c.dir }

// CacheKey derives the key for content with the given hash parsed under
// maxDepth. maxDepth <= 0 означает parser.DefaultMaxDepth, как в парсере.
func CacheKey(contentHash [32]byte, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = parser.DefaultMaxDepth
	}
	h := sha256.New()
	h.Write(contentHash[:])
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[:2], summaryCacheSchema)
	binary.LittleEndian.PutUint64(buf[2:], uint64(maxDepth))
	h.Write(buf[:])
	return hex.EncodeToString(h.Sum(nil))
}

func (c *SummaryCache) pathFor(key string) string {
	// подкаталог по первым двум символам, как у git objects
	return filepath.Join(c.dir, "summaries", key[:2], key+".mp")
}

// Put writes s atomically (temp file + rename).
func (c *SummaryCache) Put(key string, s *FileSummary) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(&CachedSummary{Schema: summaryCacheSchema, Summary: *s}); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the summary for key. A missing entry or a stale schema is a
// miss, not an error.
func (c *SummaryCache) Get(key string) (*FileSummary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var rec CachedSummary
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if rec.Schema != summaryCacheSchema {
		return nil, false, nil
	}
	return &rec.Summary, true, nil
}
