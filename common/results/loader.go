package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mason-leap-lab/go-utils/logger"
)

var (
	log = &logger.ColorLogger{Color: true, Level: logger.LOG_LEVEL_INFO, Prefix: "Results "}
)

// Loader decodes result files, optionally through a cache of decoded tables.
type Loader struct {
	Cache *Cache
}

func NewLoader(cache *Cache) *Loader {
	return &Loader{Cache: cache}
}

// Load decodes the result file at path. A missing file yields an error wrapping ErrNotFound.
func (l *Loader) Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return nil, err
	} else if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if l.Cache != nil {
		if table, ok := l.Cache.Get(path, info); ok {
			log.Debug("Loaded %s from cache (%d rows)", path, table.Len())
			return table, nil
		}
	}

	format := FormatOf(path)
	decoder, ok := LoadDecoder(format)
	if !ok {
		return nil, fmt.Errorf("no decoder for format %s", format)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := decoder.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", path, format, err)
	}
	log.Info("Loaded %s (%s, %s, %d rows)", path, format, humanize.Bytes(uint64(info.Size())), table.Len())

	if l.Cache != nil {
		if err := l.Cache.Put(path, info, table); err != nil {
			log.Warn("Failed to cache %s: %v", path, err)
		}
	}
	return table, nil
}

// LoadColumn loads a file and extracts one column, keeping at most limit rows
// when limit is positive.
func (l *Loader) LoadColumn(path string, col int, limit int) ([]float64, error) {
	table, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	values, err := table.Head(limit).Column(col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
