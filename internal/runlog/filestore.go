package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/sideclip-icons/internal/paths"
)

// FileStore implements Store using a flat log file, one record per line:
//
//	2026-01-02T15:04:05Z  asset=icon16.png  size=16  bytes=283  crc=1a2b3c4d  status=ok
//
// Failed records end with an error="..." field.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Log(r Record) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, FormatLine(stamp(r)))
	return err
}

func (f *FileStore) Entries(limit int) ([]Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return tail(ParseLines(string(data)), limit), nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}

// FormatLine renders a record in the flat log format.
func FormatLine(r Record) string {
	line := fmt.Sprintf("%s  asset=%s  size=%d  bytes=%d  crc=%08x  status=%s",
		r.Time.Format(time.RFC3339), r.Asset, r.Size, r.Bytes, r.CRC, r.Status)
	if r.Error != "" {
		line += "  error=" + strconv.Quote(r.Error)
	}
	return line
}

// ParseLines parses log content into records. Malformed lines are skipped.
func ParseLines(content string) []Record {
	var recs []Record
	for _, line := range strings.Split(content, "\n") {
		if r, ok := ParseLine(strings.TrimRight(line, "\r")); ok {
			recs = append(recs, r)
		}
	}
	return recs
}

// ParseLine parses one line written by FormatLine.
func ParseLine(line string) (Record, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return Record{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return Record{}, false
	}
	r := Record{Time: ts}

	// The quoted error may itself contain spaces, so cut it off first.
	rest := line[tsEnd:]
	if i := strings.Index(rest, "  error="); i >= 0 {
		msg, err := strconv.Unquote(rest[i+len("  error="):])
		if err != nil {
			return Record{}, false
		}
		r.Error = msg
		rest = rest[:i]
	}

	for _, field := range strings.Fields(rest) {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "asset":
			r.Asset = val
		case "size":
			r.Size, _ = strconv.Atoi(val)
		case "bytes":
			r.Bytes, _ = strconv.Atoi(val)
		case "crc":
			crc, _ := strconv.ParseUint(val, 16, 32)
			r.CRC = uint32(crc)
		case "status":
			r.Status = val
		}
	}
	if r.Asset == "" || r.Status == "" {
		return Record{}, false
	}
	return r, true
}
