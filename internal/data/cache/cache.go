package cache

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sync"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonError
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
	MissReasonNotFound
)

func (r CacheMissReason) String() string {
	switch r {
	case MissReasonNone:
		return "none"
	case MissReasonError:
		return "error"
	case MissReasonSize:
		return "size"
	case MissReasonModTime:
		return "modtime"
	case MissReasonFingerprint:
		return "fingerprint"
	case MissReasonNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// fingerprintTail is how many trailing bytes feed the content fingerprint.
const fingerprintTail = 2048

// FileState identifies a version of a file on disk.
type FileState struct {
	ModTime     int64
	Size        int64
	Fingerprint string
}

// CacheResult is the outcome of a lookup.
type CacheResult struct {
	Entries    []model.Entry
	Found      bool
	MissReason CacheMissReason
}

type cachedEntries struct {
	state   FileState
	entries []model.Entry
}

// EntryCache keeps parsed entries in memory until the backing file changes.
type EntryCache struct {
	mu    sync.RWMutex
	items map[string]*cachedEntries
}

func NewEntryCache() *EntryCache {
	return &EntryCache{items: make(map[string]*cachedEntries)}
}

// Get returns the cached entries for path if the file still matches the cached state.
func (c *EntryCache) Get(path string) CacheResult {
	c.mu.RLock()
	item, ok := c.items[path]
	c.mu.RUnlock()

	if !ok {
		return CacheResult{MissReason: MissReasonNotFound}
	}

	current, err := ReadFileState(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: %v", path, err))
		c.Invalidate(path)
		return CacheResult{MissReason: MissReasonError}
	}

	if reason := compare(item.state, current); reason != MissReasonNone {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: %s changed", path, reason))
		c.Invalidate(path)
		return CacheResult{MissReason: reason}
	}

	return CacheResult{Entries: item.entries, Found: true, MissReason: MissReasonNone}
}

// Set stores entries parsed from path in the given state.
func (c *EntryCache) Set(path string, state FileState, entries []model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[path] = &cachedEntries{state: state, entries: entries}
}

// Invalidate drops path from the cache.
func (c *EntryCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, path)
}

func compare(cached, current FileState) CacheMissReason {
	if cached.Size != current.Size {
		return MissReasonSize
	}
	if cached.ModTime != current.ModTime {
		return MissReasonModTime
	}
	if cached.Fingerprint != current.Fingerprint {
		return MissReasonFingerprint
	}
	return MissReasonNone
}

// ReadFileState stats path and fingerprints its tail.
func ReadFileState(path string) (FileState, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileState{}, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return FileState{}, err
	}

	readSize := int64(fingerprintTail)
	if stat.Size() < readSize {
		readSize = stat.Size()
	}

	data := make([]byte, readSize)
	if _, err := file.ReadAt(data, stat.Size()-readSize); err != nil && err != io.EOF {
		return FileState{}, err
	}

	return FileState{
		ModTime:     stat.ModTime().UnixNano(),
		Size:        stat.Size(),
		Fingerprint: fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)),
	}, nil
}
