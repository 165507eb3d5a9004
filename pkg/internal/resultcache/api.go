package resultcache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Lookup returns the cached result for key, if present. The returned value
// is rebuilt from the stored payload, so callers never share state through
// the cache. Entries that fail to decompress or decode are dropped and
// reported as misses. On a memory miss the spill directory, when configured,
// is consulted and a hit there re-enters memory.
func (c *ResultCache) Lookup(key string) (*types.DecodingResult, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return c.lookupSpill(key)
	}

	payload, err := decompressData(e.payload, e.algorithm)
	if err != nil {
		c.drop(key)
		c.notifyCorruptEntry(key, err)
		return nil, false
	}
	var result types.DecodingResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.drop(key)
		c.notifyCorruptEntry(key, err)
		return nil, false
	}
	return &result, true
}

// Store records the result under key, evicting the oldest entries when the
// cache is at capacity. Storing an existing key replaces its payload without
// refreshing its age. With a spill directory configured the entry is also
// mirrored to disk; a failed mirror logs a warning but does not fail the
// store, since spill is strictly an optimization.
func (c *ResultCache) Store(key string, result *types.DecodingResult) error {
	if key == "" || result == nil {
		return fmt.Errorf("empty key or nil result: %w", types.ErrInvalidParameter)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	compressed, err := compressData(payload, c.algorithm)
	if err != nil {
		c.notifyStoreRejected(key, err)
		return err
	}

	e := entry{algorithm: c.algorithm, payload: compressed}
	evicted := c.insert(key, e)
	if c.spillDir != "" {
		if err := c.writeSpill(key, e); err != nil {
			c.notifySpillFailed(key, err)
		}
	}

	c.notifyStoreComplete(key, len(payload), len(compressed), evicted)
	return nil
}

// Len reports the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ConnectLogger registers loggers. Nil loggers are ignored.
func (c *ResultCache) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}

	// Compact in-place to drop nils without allocating.
	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	c.loggersLock.Lock()
	c.loggers = append(c.loggers, loggers...)
	c.loggersLock.Unlock()

	atomic.AddInt32(&c.loggerCount, int32(n))

	c.NotifyLoggers(
		types.DebugLevel,
		"ConnectLogger",
		"component", c.componentMetadata,
		"event", "ConnectLogger",
		"result", "SUCCESS",
		"count", n,
	)
}

// GetComponentMetadata returns the component's metadata.
func (c *ResultCache) GetComponentMetadata() types.ComponentMetadata {
	return c.componentMetadata
}

// SetComponentMetadata overrides the component's name and ID.
func (c *ResultCache) SetComponentMetadata(name string, id string) {
	c.componentMetadata.Name = name
	c.componentMetadata.ID = id
}

// SetCompressionAlgorithm selects the compression applied to new entries.
// Existing entries keep the algorithm they were stored with.
func (c *ResultCache) SetCompressionAlgorithm(alg types.CompressionAlgorithm) {
	c.algorithm = alg
}

// SetCapacity bounds the number of retained entries. Zero or negative
// removes the bound.
func (c *ResultCache) SetCapacity(n int) {
	c.capacity = n
}

// SetSpillDirectory enables write-through spill to dir and creates it if
// missing. Spill is left disabled when creation fails. Spilled files are
// never pruned; the directory's lifetime belongs to the caller.
func (c *ResultCache) SetSpillDirectory(dir string) {
	if dir == "" {
		c.spillDir = ""
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.notifySpillUnavailable(dir, err)
		return
	}
	c.spillDir = dir
}

// insert places an entry in memory, evicting the oldest entries when at
// capacity, and returns the evicted keys. Eviction only touches memory;
// spilled copies stay on disk.
func (c *ResultCache) insert(key string, e entry) []string {
	var evicted []string
	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		for c.capacity > 0 && len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
			evicted = append(evicted, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = e
	c.mu.Unlock()
	return evicted
}

// lookupSpill reads an entry back from the spill directory. Unreadable or
// corrupt files are removed and reported as misses.
func (c *ResultCache) lookupSpill(key string) (*types.DecodingResult, bool) {
	if c.spillDir == "" {
		return nil, false
	}

	e, err := c.readSpill(key)
	if err != nil {
		if !os.IsNotExist(err) {
			c.removeSpill(key)
			c.notifyCorruptEntry(key, err)
		}
		return nil, false
	}
	payload, err := decompressData(e.payload, e.algorithm)
	if err != nil {
		c.removeSpill(key)
		c.notifyCorruptEntry(key, err)
		return nil, false
	}
	var result types.DecodingResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.removeSpill(key)
		c.notifyCorruptEntry(key, err)
		return nil, false
	}

	c.insert(key, e)
	return &result, true
}

// drop removes one entry and its position in the eviction order.
func (c *ResultCache) drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
