package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

var t0 = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func tempFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "sideclip-icons.log"))
}

func TestFormatLine(t *testing.T) {
	r := Record{Time: t0, Asset: "icon16.png", Size: 16, Bytes: 283, CRC: 0x1a2b3c, Status: StatusOK}
	want := "2026-10-19T09:30:00Z  asset=icon16.png  size=16  bytes=283  crc=001a2b3c  status=ok"
	if got := FormatLine(r); got != want {
		t.Errorf("FormatLine = %q, want %q", got, want)
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	recs := []Record{
		{Time: t0, Asset: "icon128.png", Size: 128, Bytes: 900, CRC: 0xdeadbeef, Status: StatusOK},
		{Time: t0, Asset: "icon48.png", Size: 48, Status: StatusError, Error: `open icons/icon48.png:  permission "denied"`},
		{Time: t0, Asset: "icon.svg", Bytes: 2100, CRC: 7, Status: StatusOK},
	}
	for _, want := range recs {
		got, ok := ParseLine(FormatLine(want))
		if !ok {
			t.Fatalf("ParseLine(%q) failed", FormatLine(want))
		}
		if !got.Time.Equal(want.Time) {
			t.Errorf("Time = %v, want %v", got.Time, want.Time)
		}
		got.Time = want.Time
		if got != want {
			t.Errorf("ParseLine = %+v, want %+v", got, want)
		}
	}
}

func TestParseLinesSkipsMalformed(t *testing.T) {
	content := "garbage\n" +
		"2026-10-19T09:30:00Z  asset=icon16.png  size=16  bytes=1  crc=00000001  status=ok\n" +
		"not-a-time  asset=x  status=ok\n" +
		"2026-10-19T09:30:00Z  size=16\n" +
		"\n"
	recs := ParseLines(content)
	if len(recs) != 1 || recs[0].Asset != "icon16.png" {
		t.Errorf("ParseLines = %+v, want one icon16.png record", recs)
	}
}

func TestFileStoreLogAndEntries(t *testing.T) {
	s := tempFileStore(t)
	for _, size := range []int{16, 32, 48} {
		if err := s.Log(Record{Time: t0, Asset: "icon.png", Size: size, Status: StatusOK}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len(Entries(0)) = %d, want 3", len(all))
	}

	last, err := s.Entries(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 || last[0].Size != 32 || last[1].Size != 48 {
		t.Errorf("Entries(2) = %+v, want sizes 32, 48", last)
	}
}

func TestFileStoreStampsMissingTime(t *testing.T) {
	s := tempFileStore(t)
	before := time.Now().Add(-time.Second)
	if err := s.Log(Record{Asset: "icon16.png", Status: StatusOK}); err != nil {
		t.Fatal(err)
	}
	recs, _ := s.Entries(0)
	if len(recs) != 1 || recs[0].Time.Before(before) {
		t.Errorf("Entries = %+v, want one record stamped now", recs)
	}
}

func TestFileStoreEntriesMissingFile(t *testing.T) {
	s := tempFileStore(t)
	recs, err := s.Entries(0)
	if err != nil || recs != nil {
		t.Errorf("Entries = %v, %v; want nil, nil", recs, err)
	}
}

func TestFileStoreClear(t *testing.T) {
	s := tempFileStore(t)
	s.Log(Record{Time: t0, Asset: "icon16.png", Status: StatusOK})
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("log still exists: %v", err)
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", dir)
	if err != nil || s != nil {
		t.Errorf(`Open("") = %v, %v; want nil, nil`, s, err)
	}

	s, err = Open("file", dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("Open(file) = %T", s)
	}

	s, err = Open("sqlite", dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) = %T", s)
	}

	if _, err := Open("syslog", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}
