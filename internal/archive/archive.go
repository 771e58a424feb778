// Package archive persists normalized measurements as JSON entry files.
//
// Writes are atomic and serialized per directory with an advisory lock on
// LockFileName, so batch workers that target the same file never interleave
// and entries get no lock file of their own.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"luqy/internal/fileutil"
	"luqy/internal/measurement"
	"luqy/internal/textutil"
)

// LockFileName is the advisory lock shared by writers in one entry directory.
const LockFileName = ".luqy.lock"

// ErrExists is returned by Write when the entry file exists and overwrite is off.
var ErrExists = errors.New("entry already exists")

// lockTimeout bounds how long Write waits for another writer.
const lockTimeout = 10 * time.Second

const lockRetryDelay = 25 * time.Millisecond

// EntryPath returns the JSON file path for m inside dir.
func EntryPath(dir string, m *measurement.Measurement) string {
	base := textutil.SanitizeToken(m.Name)
	if base == "unknown" && m.DataFile != "" {
		base = textutil.SanitizeToken(strings.TrimSuffix(filepath.Base(m.DataFile), filepath.Ext(m.DataFile)))
	}
	short := m.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return filepath.Join(dir, base+"-"+short+".json")
}

// Write encodes m to path. It waits up to lockTimeout, or until ctx is done,
// for concurrent writers in the same directory.
func Write(ctx context.Context, path string, m *measurement.Measurement, overwrite bool) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create entry directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock entry %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("lock entry %s: not acquired", path)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat entry: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write entry %s: %w", path, err)
	}
	return nil
}

// Read loads the entry stored at path.
func Read(path string) (*measurement.Measurement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}
	return measurement.Decode(data)
}
