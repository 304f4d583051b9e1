// Package bundle packs generated icon files into a zip archive for shipping
// with the extension.
package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexmullins/zip"

	"github.com/Mavwarf/sideclip-icons/internal/paths"
)

// FileName is the archive's name inside the output directory.
const FileName = "icons.zip"

// Build returns a zip archive holding each named file from dir under the
// prefix "icons/". Entries carry no timestamps so the same inputs always
// produce the same archive.
func Build(dir string, names []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("bundle: %w", err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   "icons/" + filepath.ToSlash(name),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// Write builds the archive and writes it to dir/FileName atomically.
func Write(dir string, names []string) (string, int, error) {
	data, err := Build(dir, names)
	if err != nil {
		return "", 0, err
	}
	p := filepath.Join(dir, FileName)
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", 0, fmt.Errorf("bundle: %w", err)
	}
	return p, len(data), nil
}
