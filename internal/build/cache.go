package build

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest keys a cached build by the content of its inputs.
type Digest [32]byte

// FileDigest hashes a file's path-independent identity: its length and
// content. Same bytes in a different location hash identically, which is
// exactly what artifact reuse wants.
func FileDigest(path string) (Digest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	size, err := safecast.Conv[uint64](len(content))
	if err != nil {
		return Digest{}, err
	}
	h := sha256.New()
	var header [8]byte
	binary.LittleEndian.PutUint64(header[:], size)
	h.Write(header[:])
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Payload stores the memoized outcome of one auxiliary build.
type Payload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	// Key is the build key, stored for debugging cache contents.
	Key string

	// ExtraArgs are the command-line arguments the built artifact requires.
	ExtraArgs []string
}

// DiskCache persists build payloads keyed by Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the standard user cache
// location for the given application name.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "aux", hexKey+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *DiskCache) Put(key Digest, payload *Payload) error {
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

// Get reads a payload. The boolean reports whether a valid entry existed.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
