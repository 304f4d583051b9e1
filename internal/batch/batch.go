// Package batch drives one generation run: it renders every configured icon
// size, writes the files, and produces the optional SVG, preview and bundle
// assets. Each asset is attempted independently; a failure is reported and
// the run moves on to the next one.
package batch

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/Mavwarf/sideclip-icons/internal/bundle"
	"github.com/Mavwarf/sideclip-icons/internal/config"
	"github.com/Mavwarf/sideclip-icons/internal/icon"
	"github.com/Mavwarf/sideclip-icons/internal/paths"
	"github.com/Mavwarf/sideclip-icons/internal/pngenc"
	"github.com/Mavwarf/sideclip-icons/internal/preview"
	"github.com/Mavwarf/sideclip-icons/internal/runlog"
	"github.com/Mavwarf/sideclip-icons/internal/svgicon"
)

// Result is the outcome of writing one asset.
type Result struct {
	Asset string // file name inside the output directory
	Size  int    // icon edge in pixels, 0 for non-icon assets
	Path  string
	Bytes int
	CRC   uint32
	Err   error
}

// OK reports whether the asset was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of a run in the order assets were attempted.
type Report struct {
	Results []Result
}

// Failed returns the number of assets that could not be written.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// RenderFunc produces the encoded PNG for one icon size.
type RenderFunc func(size int, opts icon.Options) ([]byte, error)

// RenderPNG draws the icon and encodes it.
func RenderPNG(size int, opts icon.Options) ([]byte, error) {
	c := icon.Draw(size, opts)
	return pngenc.Encode(c.Size, c.Size, c.Channels, c.Pix())
}

// Runner holds everything one run needs.
type Runner struct {
	Config config.Config
	Stdout io.Writer
	Stderr io.Writer
	// Store receives one record per asset; nil disables the run log.
	Store runlog.Store
	// Decorate prefixes status lines with ✅/❌ instead of ok/error.
	Decorate bool
	// Render defaults to RenderPNG.
	Render RenderFunc
}

// Run generates every configured asset and returns the per-asset results.
func (r *Runner) Run() Report {
	cfg := r.Config
	dir := cfg.OutDir
	var rep Report

	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		fmt.Fprintf(r.stderr(), "batch: creating %s: %v\n", dir, err)
	}

	opts := icon.Options{Transparent: cfg.Transparent}
	kind := "RGB"
	if cfg.Transparent {
		kind = "RGBA"
	}
	fmt.Fprintf(r.stdout(), "Creating SideClip %s icons in %s/\n", kind, dir)

	var written []string
	for _, size := range cfg.Sizes {
		res := r.writeIcon(dir, size, opts)
		r.record(&rep, res)
		if res.OK() {
			written = append(written, res.Asset)
		}
	}

	if cfg.SVG {
		for _, name := range svgicon.FileNames {
			res := r.attempt(name, 0, func() ([]byte, error) {
				return []byte(svgicon.Document), nil
			})
			r.record(&rep, res)
			if res.OK() {
				written = append(written, res.Asset)
			}
		}
	}

	if cfg.Preview {
		r.record(&rep, r.attempt(preview.FileName, 0, func() ([]byte, error) {
			return r.previewSheet(dir, rep.Results)
		}))
	}

	if cfg.Bundle {
		r.record(&rep, r.writeBundle(dir, written))
	}

	fmt.Fprintf(r.stdout(), "%d of %d assets written\n", len(rep.Results)-rep.Failed(), len(rep.Results))
	return rep
}

func (r *Runner) writeIcon(dir string, size int, opts icon.Options) Result {
	render := r.Render
	if render == nil {
		render = RenderPNG
	}
	return r.attempt(paths.IconFileName(size), size, func() ([]byte, error) {
		return render(size, opts)
	})
}

// attempt builds an asset's bytes and writes them to dir/name. The full
// buffer exists before the write starts, and a panic while building is
// reported as an error for this asset only.
func (r *Runner) attempt(name string, size int, build func() ([]byte, error)) (res Result) {
	res = Result{Asset: name, Size: size, Path: filepath.Join(r.Config.OutDir, name)}
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("panic: %v", p)
		}
	}()

	data, err := build()
	if err != nil {
		res.Err = err
		return res
	}
	if err := paths.AtomicWrite(res.Path, data); err != nil {
		res.Err = err
		return res
	}
	res.Bytes = len(data)
	res.CRC = crc32.ChecksumIEEE(data)
	return res
}

func (r *Runner) writeBundle(dir string, names []string) (res Result) {
	res = Result{Asset: bundle.FileName, Path: filepath.Join(dir, bundle.FileName)}
	if len(names) == 0 {
		res.Err = fmt.Errorf("nothing to bundle")
		return res
	}
	p, n, err := bundle.Write(dir, names)
	if err != nil {
		res.Err = err
		return res
	}
	data, err := os.ReadFile(p)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bytes = n
	res.CRC = crc32.ChecksumIEEE(data)
	return res
}

// previewSheet reads back every icon written so far and lays them out next
// to a rendering of the SVG document.
func (r *Runner) previewSheet(dir string, results []Result) ([]byte, error) {
	var images []image.Image
	for _, res := range results {
		if !res.OK() || res.Size == 0 {
			continue
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, err
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", res.Asset, err)
		}
		images = append(images, img)
	}
	vec, err := svgicon.Render(preview.Cell)
	if err != nil {
		return nil, err
	}
	images = append(images, vec)

	sheet, err := preview.Sheet(images)
	if err != nil {
		return nil, err
	}
	b := sheet.Bounds()
	return pngenc.Encode(b.Dx(), b.Dy(), 4, sheet.Pix)
}

// record appends res to the report, prints its status line, and logs it.
func (r *Runner) record(rep *Report, res Result) {
	rep.Results = append(rep.Results, res)

	if res.OK() {
		prefix := "ok   "
		if r.Decorate {
			prefix = "✅"
		}
		line := fmt.Sprintf("%s %s: %d bytes", prefix, res.Path, res.Bytes)
		if res.Size > 0 {
			line += fmt.Sprintf(" (%dx%d)", res.Size, res.Size)
		}
		fmt.Fprintln(r.stdout(), line)
	} else {
		prefix := "error"
		if r.Decorate {
			prefix = "❌"
		}
		fmt.Fprintf(r.stderr(), "%s Error creating %s: %v\n", prefix, res.Asset, res.Err)
	}

	if r.Store == nil {
		return
	}
	rec := runlog.Record{
		Asset:  res.Asset,
		Size:   res.Size,
		Bytes:  res.Bytes,
		CRC:    res.CRC,
		Status: runlog.StatusOK,
	}
	if res.Err != nil {
		rec.Status = runlog.StatusError
		rec.Error = res.Err.Error()
	}
	if err := r.Store.Log(rec); err != nil {
		fmt.Fprintf(r.stderr(), "runlog: %v\n", err)
	}
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return io.Discard
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return io.Discard
	}
	return r.Stderr
}
