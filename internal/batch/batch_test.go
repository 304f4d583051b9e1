package batch

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mavwarf/sideclip-icons/internal/bundle"
	"github.com/Mavwarf/sideclip-icons/internal/config"
	"github.com/Mavwarf/sideclip-icons/internal/icon"
	"github.com/Mavwarf/sideclip-icons/internal/paths"
	"github.com/Mavwarf/sideclip-icons/internal/pngenc"
	"github.com/Mavwarf/sideclip-icons/internal/preview"
	"github.com/Mavwarf/sideclip-icons/internal/runlog"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutDir = filepath.Join(t.TempDir(), "icons")
	return cfg
}

func TestRunDefaultSizes(t *testing.T) {
	cfg := testConfig(t)
	var stdout, stderr bytes.Buffer
	rep := (&Runner{Config: cfg, Stdout: &stdout, Stderr: &stderr}).Run()

	if rep.Failed() != 0 {
		t.Fatalf("Failed() = %d, stderr:\n%s", rep.Failed(), stderr.String())
	}
	if len(rep.Results) != 4 {
		t.Fatalf("len(Results) = %d, want 4", len(rep.Results))
	}
	for _, size := range []int{16, 32, 48, 128} {
		p := filepath.Join(cfg.OutDir, paths.IconFileName(size))
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		h, err := pngenc.Verify(data)
		if err != nil {
			t.Fatalf("%s: Verify: %v", p, err)
		}
		if h.Width != size || h.Height != size || h.ColorType != pngenc.ColorRGB {
			t.Errorf("%s header = %+v", p, h)
		}
		if !strings.Contains(stdout.String(), p) {
			t.Errorf("stdout does not mention %s", p)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "icon.svg")); !os.IsNotExist(err) {
		t.Error("SVG written without being enabled")
	}
}

func TestRunRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sizes = []int{48}
	(&Runner{Config: cfg}).Run()

	f, err := os.Open(filepath.Join(cfg.OutDir, "icon48.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	want := icon.Draw(48, icon.Options{})
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := want.At(x, y)
			if byte(r>>8) != c.R || byte(g>>8) != c.G || byte(b>>8) != c.B {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d, want %v", x, y, r>>8, g>>8, b>>8, c)
			}
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	a, b := testConfig(t), testConfig(t)
	a.SVG, b.SVG = true, true
	a.Bundle, b.Bundle = true, true
	(&Runner{Config: a}).Run()
	(&Runner{Config: b}).Run()

	names := []string{"icon16.png", "icon32.png", "icon48.png", "icon128.png", "icon.svg", bundle.FileName}
	for _, name := range names {
		da, err := os.ReadFile(filepath.Join(a.OutDir, name))
		if err != nil {
			t.Fatal(err)
		}
		db, err := os.ReadFile(filepath.Join(b.OutDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(da, db) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	cfg := testConfig(t)
	var stderr bytes.Buffer
	r := &Runner{
		Config: cfg,
		Stderr: &stderr,
		Render: func(size int, opts icon.Options) ([]byte, error) {
			switch size {
			case 32:
				return nil, errors.New("boom")
			case 48:
				panic("out of range")
			}
			return RenderPNG(size, opts)
		},
	}
	rep := r.Run()

	if rep.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", rep.Failed())
	}
	for _, res := range rep.Results {
		_, statErr := os.Stat(res.Path)
		switch res.Size {
		case 32, 48:
			if res.OK() {
				t.Errorf("size %d reported OK", res.Size)
			}
			if !os.IsNotExist(statErr) {
				t.Errorf("size %d left a file behind", res.Size)
			}
		default:
			if !res.OK() || statErr != nil {
				t.Errorf("size %d: err=%v stat=%v", res.Size, res.Err, statErr)
			}
		}
	}
	for _, want := range []string{"icon32.png: boom", "icon48.png: panic: out of range"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestRunUnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.OutDir = filepath.Join(blocker, "icons")

	rep := (&Runner{Config: cfg}).Run()
	if rep.Failed() != len(cfg.Sizes) {
		t.Errorf("Failed() = %d, want %d", rep.Failed(), len(cfg.Sizes))
	}
}

func TestRunOptionalAssets(t *testing.T) {
	cfg := testConfig(t)
	cfg.Transparent = true
	cfg.SVG = true
	cfg.Preview = true
	cfg.Bundle = true
	rep := (&Runner{Config: cfg}).Run()

	if rep.Failed() != 0 {
		for _, res := range rep.Results {
			if res.Err != nil {
				t.Errorf("%s: %v", res.Asset, res.Err)
			}
		}
		t.FailNow()
	}
	// 4 icons, 2 SVGs, preview, bundle.
	if len(rep.Results) != 8 {
		t.Errorf("len(Results) = %d, want 8", len(rep.Results))
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutDir, "icon16.png"))
	if err != nil {
		t.Fatal(err)
	}
	h, err := pngenc.Verify(data)
	if err != nil || h.ColorType != pngenc.ColorRGBA {
		t.Errorf("transparent icon header = %+v, err = %v", h, err)
	}

	for _, name := range []string{"icon.svg", "icon16.svg"} {
		body, err := os.ReadFile(filepath.Join(cfg.OutDir, name))
		if err != nil || !strings.HasPrefix(string(body), "<?xml") {
			t.Errorf("%s: err=%v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(cfg.OutDir, preview.FileName))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	// Four icons plus the SVG rendering.
	if w := sheet.Bounds().Dx(); w != preview.Pad+5*(preview.Cell+preview.Pad) {
		t.Errorf("preview width = %d", w)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutDir, bundle.FileName)); err != nil {
		t.Errorf("bundle missing: %v", err)
	}
}

func TestRunLogsToStore(t *testing.T) {
	cfg := testConfig(t)
	store := runlog.NewFileStore(filepath.Join(t.TempDir(), "run.log"))
	r := &Runner{
		Config: cfg,
		Store:  store,
		Render: func(size int, opts icon.Options) ([]byte, error) {
			if size == 128 {
				return nil, errors.New("too big")
			}
			return RenderPNG(size, opts)
		},
	}
	rep := r.Run()

	recs, err := store.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(rep.Results) {
		t.Fatalf("len(records) = %d, want %d", len(recs), len(rep.Results))
	}
	if recs[0].Asset != "icon16.png" || recs[0].Status != runlog.StatusOK || recs[0].CRC != rep.Results[0].CRC {
		t.Errorf("first record = %+v", recs[0])
	}
	last := recs[len(recs)-1]
	if last.Status != runlog.StatusError || last.Error != "too big" {
		t.Errorf("last record = %+v", last)
	}
}

func TestRunDecoratedOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sizes = []int{16}
	var stdout bytes.Buffer
	(&Runner{Config: cfg, Stdout: &stdout, Decorate: true}).Run()
	if !strings.Contains(stdout.String(), "✅") {
		t.Errorf("decorated output missing ✅:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "(16x16)") {
		t.Errorf("output missing dimensions:\n%s", stdout.String())
	}
}
