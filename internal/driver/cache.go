package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"displaystr/internal/source"
)

// Schema version of CachePayload; bump when the format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest = [sha256.Size]byte

// DiskCache stores finished expansions keyed by input digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached expansion.
type CachePayload struct {
	Schema uint16
	Output string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location: $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "expansions", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload. The write goes through a temp file
// and a rename so readers never see a torn entry.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry is (false, nil).
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "expansions"))
}

// cacheKey digests everything the output depends on: the normalized file
// content, the options that shape the expansion, and the payload schema.
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])
	if opts.Doc {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte{byte(cacheSchemaVersion), byte(cacheSchemaVersion >> 8)})
	var key Digest
	h.Sum(key[:0])
	return key
}
