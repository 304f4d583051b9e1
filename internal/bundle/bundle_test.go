package bundle

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexmullins/zip"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuildContents(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"icon16.png": "sixteen",
		"icon.svg":   "<svg/>",
	})
	data, err := Build(dir, []string{"icon16.png", "icon.svg"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("len(File) = %d, want 2", len(zr.File))
	}
	want := map[string]string{"icons/icon16.png": "sixteen", "icons/icon.svg": "<svg/>"}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if string(body) != want[f.Name] {
			t.Errorf("%s = %q, want %q", f.Name, body, want[f.Name])
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.png": "aaaa", "b.png": "bbbb"})
	a, err := Build(dir, []string{"a.png", "b.png"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(dir, []string{"a.png", "b.png"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("archives differ between runs")
	}
}

func TestBuildMissingFile(t *testing.T) {
	if _, err := Build(t.TempDir(), []string{"nope.png"}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWrite(t *testing.T) {
	dir := writeFiles(t, map[string]string{"icon16.png": "x"})
	p, n, err := Write(dir, []string{"icon16.png"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if p != filepath.Join(dir, FileName) {
		t.Errorf("path = %q", p)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != int64(n) {
		t.Errorf("size = %d, want %d", info.Size(), n)
	}
}
