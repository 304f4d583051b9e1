package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Mavwarf/sideclip-icons/internal/batch"
	"github.com/Mavwarf/sideclip-icons/internal/config"
	"github.com/Mavwarf/sideclip-icons/internal/paths"
	"github.com/Mavwarf/sideclip-icons/internal/pngenc"
	"github.com/Mavwarf/sideclip-icons/internal/runlog"
)

// logDir is where the run log lives; tests point it at a temp dir.
var logDir = paths.DataDir

const defaultHistoryCount = 20

// generateCmd runs one batch and returns the process exit code.
func generateCmd(cfg config.Config, stdout, stderr io.Writer, decorate bool) int {
	store, err := runlog.Open(cfg.Log, logDir())
	if err != nil {
		// The run log is best-effort; generation goes ahead without it.
		fmt.Fprintf(stderr, "runlog: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	r := &batch.Runner{
		Config:   cfg,
		Stdout:   stdout,
		Stderr:   stderr,
		Store:    store,
		Decorate: decorate,
	}
	if rep := r.Run(); rep.Failed() > 0 {
		return 1
	}
	return 0
}

// verifyCmd checks icon<size>.png in dir for every configured size.
func verifyCmd(dir string, sizes []int, stdout, stderr io.Writer) int {
	failed := 0
	for _, size := range sizes {
		p := filepath.Join(dir, paths.IconFileName(size))
		if err := verifyFile(p, size); err != nil {
			fmt.Fprintf(stderr, "FAIL  %s: %v\n", p, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok    %s\n", p)
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d icons failed verification\n", failed, len(sizes))
		return 1
	}
	return 0
}

func verifyFile(path string, size int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h, err := pngenc.Verify(data)
	if err != nil {
		return err
	}
	if h.Width != size || h.Height != size {
		return fmt.Errorf("image is %dx%d, want %dx%d", h.Width, h.Height, size, size)
	}
	return nil
}

// historyCmd lists or clears the run log.
func historyCmd(args []string, cfg config.Config, stdout, stderr io.Writer) int {
	if cfg.Log == config.LogNone {
		fmt.Fprintf(stderr, "Run log is disabled (set \"log\" to %q or %q in the config).\n",
			config.LogFile, config.LogSQLite)
		return 1
	}
	store, err := runlog.Open(cfg.Log, logDir())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	if len(args) > 0 && args[0] == "clear" {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Run log cleared (%s)\n", store.Path())
		return 0
	}

	count := defaultHistoryCount
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(stderr, "Error: count must be a positive integer\n")
			return 1
		}
		count = n
	}

	recs, err := store.Entries(count)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(recs) == 0 {
		fmt.Fprintln(stdout, "No records yet.")
		return 0
	}
	for _, r := range recs {
		fmt.Fprintln(stdout, formatRecord(r))
	}
	return 0
}

// formatRecord renders one history row.
func formatRecord(r runlog.Record) string {
	ts := r.Time.Local().Format(time.DateTime)
	if r.Status != runlog.StatusOK {
		return fmt.Sprintf("%s  %-5s  %-12s  %s", ts, r.Status, r.Asset, r.Error)
	}
	return fmt.Sprintf("%s  %-5s  %-12s  %6d bytes  crc %08x", ts, r.Status, r.Asset, r.Bytes, r.CRC)
}
