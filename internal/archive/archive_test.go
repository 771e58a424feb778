package archive_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"luqy/internal/archive"
	"luqy/internal/measurement"
)

func TestEntryPath(t *testing.T) {
	m := &measurement.Measurement{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Name: "Cell A / run 2"}
	if got, want := archive.EntryPath("/tmp/e", m), filepath.Join("/tmp/e", "cell_a_run_2-7c9e6679.json"); got != want {
		t.Fatalf("EntryPath = %q, want %q", got, want)
	}

	m.Name = ""
	m.DataFile = "runs/PL 0042.txt"
	if got := filepath.Base(archive.EntryPath("/tmp/e", m)); got != "pl_0042-7c9e6679.json" {
		t.Fatalf("unexpected fallback name %q", got)
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	m := measurement.New("sample", "sample.txt")
	path := archive.EntryPath(filepath.Join(dir, "nested"), m)

	if err := archive.Write(context.Background(), path, m, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := archive.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.ID != m.ID || got.Name != "sample" {
		t.Fatalf("unexpected entry: %+v", got)
	}

	err = archive.Write(context.Background(), path, m, false)
	if !errors.Is(err, archive.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	m.Name = "renamed"
	if err := archive.Write(context.Background(), path, m, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = archive.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "renamed" {
		t.Fatalf("overwrite did not replace entry: %q", got.Name)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestWriteSharesOneLockPerDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		m := measurement.New(name, "")
		if err := archive.Write(context.Background(), archive.EntryPath(dir, m), m, false); err != nil {
			t.Fatalf("Write %s: %v", name, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	jsonFiles, locks := 0, 0
	for _, e := range entries {
		switch {
		case e.Name() == archive.LockFileName:
			locks++
		case strings.HasSuffix(e.Name(), ".lock"):
			t.Fatalf("per-entry lock file left behind: %s", e.Name())
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFiles++
		}
	}
	if jsonFiles != 3 || locks != 1 {
		t.Fatalf("expected 3 entries and 1 lock, got %d and %d", jsonFiles, locks)
	}
}

func TestWriteWaitsForLock(t *testing.T) {
	dir := t.TempDir()
	m := measurement.New("locked", "")
	path := filepath.Join(dir, "entry.json")

	lock := flock.New(filepath.Join(dir, archive.LockFileName))
	if err := lock.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := archive.Write(ctx, path, m, false); err == nil {
		t.Fatal("expected write to fail while locked")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("entry written despite lock: %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatal(err)
	}
	if err := archive.Write(context.Background(), path, m, false); err != nil {
		t.Fatalf("Write after unlock: %v", err)
	}
}

func TestConcurrentWritersSerialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entry.json")
	m := measurement.New("shared", "")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = archive.Write(context.Background(), path, m, false)
		}()
	}
	wg.Wait()

	written := 0
	for _, err := range errs {
		switch {
		case err == nil:
			written++
		case !errors.Is(err, archive.ErrExists):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if written != 1 {
		t.Fatalf("expected exactly one writer to succeed, got %d", written)
	}
	if _, err := archive.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestReadRejectsMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := archive.Read(filepath.Join(dir, "none.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"id":""}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := archive.Read(bad); err == nil {
		t.Fatal("expected invalid entry to fail")
	}
}
