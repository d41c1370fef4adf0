package results

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash"
)

// Cache stores decoded tables in the native binary format. Entries are keyed by
// the source path, size and modification time, so a rewritten result file
// misses the cache.
type Cache struct {
	Dir string
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{Dir: dir}, nil
}

// Key hashes the identity of a source file.
func (c *Cache) Key(path string, info os.FileInfo) uint64 {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return xxhash.Sum64String(fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()))
}

func (c *Cache) entry(path string, info os.FileInfo) string {
	return filepath.Join(c.Dir, strconv.FormatUint(c.Key(path, info), 16)+".bin")
}

// Get returns the cached table of a source file. Unreadable entries are misses.
func (c *Cache) Get(path string, info os.FileInfo) (*Table, bool) {
	raw, err := os.ReadFile(c.entry(path, info))
	if err != nil {
		return nil, false
	}
	table, err := (&BinaryDecoder{}).Decode(bytes.NewReader(raw))
	if err != nil {
		log.Warn("Ignoring corrupt cache entry for %s: %v", path, err)
		return nil, false
	}
	return table, true
}

// Put stores the table of a source file, replacing any previous entry.
func (c *Cache) Put(path string, info os.FileInfo, table *Table) error {
	var buf bytes.Buffer
	if err := EncodeTable(&buf, table); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.Dir, "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.entry(path, info))
}
