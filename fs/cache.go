package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/veritas"
	"github.com/vmihailenco/msgpack/v5"
)

// Compile-time interface verification.
var (
	_ veritas.Detector  = (*Detector)(nil)
	_ veritas.Humanizer = (*Humanizer)(nil)
)

// Cache stores msgpack-encoded model responses keyed by request hash.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// NewCache creates a Cache rooted at dir. The directory is created on first
// write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key hashes everything that influences a model response.
func Key(kind string, text string, settings veritas.Settings) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%g\x00%d\x00", kind, settings.Model, settings.Temperature, settings.MaxTokens)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".mp")
}

// Get decodes the entry for key into out. It reports false on a miss.
func (c *Cache) Get(key string, out any) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.path(key))
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

// Put writes the entry for key, replacing it atomically.
func (c *Cache) Put(key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), c.path(key))
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.dir)
}

// Detector wraps a Detector with file-based caching.
type Detector struct {
	inner veritas.Detector
	cache *Cache
}

// NewDetector creates a new caching detector.
func NewDetector(inner veritas.Detector, cache *Cache) *Detector {
	return &Detector{inner: inner, cache: cache}
}

// Detect returns a cached result or delegates to the inner detector.
func (d *Detector) Detect(ctx context.Context, text string, settings veritas.Settings) (*veritas.DetectionResult, error) {
	key := Key("detect", text, settings)

	var cached veritas.DetectionResult
	if ok, err := d.cache.Get(key, &cached); err == nil && ok {
		return &cached, nil
	}

	result, err := d.inner.Detect(ctx, text, settings)
	if err != nil {
		return nil, err
	}

	// Store in cache (best-effort)
	_ = d.cache.Put(key, result)

	return result, nil
}

// Humanizer wraps a Humanizer with file-based caching.
type Humanizer struct {
	inner veritas.Humanizer
	cache *Cache
}

// NewHumanizer creates a new caching humanizer.
func NewHumanizer(inner veritas.Humanizer, cache *Cache) *Humanizer {
	return &Humanizer{inner: inner, cache: cache}
}

// Humanize returns a cached rewrite or delegates to the inner humanizer.
func (h *Humanizer) Humanize(ctx context.Context, text string, settings veritas.Settings) (*veritas.HumanizeResult, error) {
	key := Key("humanize", text, settings)

	var cached veritas.HumanizeResult
	if ok, err := h.cache.Get(key, &cached); err == nil && ok {
		return &cached, nil
	}

	result, err := h.inner.Humanize(ctx, text, settings)
	if err != nil {
		return nil, err
	}

	_ = h.cache.Put(key, result)

	return result, nil
}
