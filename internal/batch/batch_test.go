package batch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"testing"
	"testing/fstest"

	"luqy/internal/batch"
	"luqy/internal/logging"
	"luqy/internal/measurement"
)

func exportWithBandgap(v float64) []byte {
	return fmt.Appendf(nil, "Bandgap (eV)\t%g\n---\nhdr\n700 1 2 3\n", v)
}

func TestRunKeepsInputOrderAndIsolatesFailures(t *testing.T) {
	fsys := fstest.MapFS{}
	var names []string
	for i := range 20 {
		name := fmt.Sprintf("runs/s%02d.txt", i)
		fsys[name] = &fstest.MapFile{Data: exportWithBandgap(1 + float64(i)/100)}
		names = append(names, name)
	}
	names = append(names[:5], append([]string{"runs/missing.txt"}, names[5:]...)...)

	outcomes := batch.Run(context.Background(), fsys, names, batch.Options{Workers: 4}, nil)
	if len(outcomes) != len(names) {
		t.Fatalf("expected %d outcomes, got %d", len(names), len(outcomes))
	}

	for i, o := range outcomes {
		if o.Name != names[i] {
			t.Fatalf("outcome %d is %q, want %q", i, o.Name, names[i])
		}
		if o.Name == "runs/missing.txt" {
			if !errors.Is(o.Err, measurement.ErrDataFile) || !errors.Is(o.Err, fs.ErrNotExist) {
				t.Fatalf("expected read failure, got %v", o.Err)
			}
			continue
		}
		if o.Err != nil {
			t.Fatalf("%s: %v", o.Name, o.Err)
		}
		if o.Parsed == nil || o.Parsed.Spectrum.Len() != 1 {
			t.Fatalf("%s: unexpected parse %+v", o.Name, o.Parsed)
		}
		bandgap := o.Measurement.Results[0].Bandgap
		if bandgap == nil {
			t.Fatalf("%s: bandgap missing", o.Name)
		}
	}

	if got := outcomes[0].Measurement.Name; got != "s00" {
		t.Fatalf("entry name = %q, want s00", got)
	}
}

func TestRunCancelled(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": &fstest.MapFile{Data: exportWithBandgap(1.5)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := batch.Run(ctx, fsys, []string{"a.txt", "a.txt"}, batch.Options{Workers: 1}, nil)
	for _, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", o.Err)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	if got := batch.Run(context.Background(), fstest.MapFS{}, nil, batch.Options{}, nil); len(got) != 0 {
		t.Fatalf("expected no outcomes, got %d", len(got))
	}
}

func TestRunLogsSummary(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": &fstest.MapFile{Data: exportWithBandgap(1.5)}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	batch.Run(context.Background(), fsys, []string{"a.txt", "b.txt"}, batch.Options{Workers: 2}, logger)

	var summary map[string]any
	for line := range bytes.Lines(buf.Bytes()) {
		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if record["msg"] == "batch finished" {
			summary = record
		}
	}
	if summary == nil {
		t.Fatalf("no summary in %s", buf.String())
	}
	if summary["files"] != 2.0 || summary["failed"] != 1.0 || summary[logging.FieldComponent] != "batch" {
		t.Fatalf("unexpected summary: %v", summary)
	}
	if _, ok := summary[logging.FieldElapsed].(float64); !ok {
		t.Fatalf("elapsed missing: %v", summary)
	}
}
