// Package runlog records the outcome of every asset the generator writes so
// past runs can be listed with "sideclip-icons history".
package runlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/sideclip-icons/internal/config"
	"github.com/Mavwarf/sideclip-icons/internal/paths"
)

// Status values for Record.Status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Record is one written (or failed) asset.
type Record struct {
	Time   time.Time
	Asset  string // file name inside the output directory
	Size   int    // icon edge in pixels, 0 for non-icon assets
	Bytes  int
	CRC    uint32 // CRC32 of the file contents
	Status string
	Error  string
}

// Store abstracts run log storage. FileStore appends to a flat log file;
// SQLiteStore keeps records in a database.
type Store interface {
	Log(r Record) error
	// Entries returns the newest limit records in chronological order.
	// limit <= 0 returns everything.
	Entries(limit int) ([]Record, error)
	Clear() error
	Path() string
	Close() error
}

// Open returns the store for a config.Log backend rooted at dir. The
// backend "" yields a nil Store and no error.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case config.LogNone:
		return nil, nil
	case config.LogFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case config.LogSQLite:
		s, err := NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("runlog: unknown backend %q", backend)
}

// stamp fills in a missing timestamp and truncates to the second, the
// resolution both stores persist.
func stamp(r Record) Record {
	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	r.Time = r.Time.Truncate(time.Second)
	return r
}

// tail returns the last limit records, or all of them when limit <= 0.
func tail(recs []Record, limit int) []Record {
	if limit > 0 && len(recs) > limit {
		return recs[len(recs)-limit:]
	}
	return recs
}
