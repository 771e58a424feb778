// Package batch normalizes many instrument exports concurrently.
//
// Every file gets its own Measurement and parse; nothing is shared between
// workers except the read-only fs.FS and logger. A file that cannot be read
// is reported on its Outcome and does not stop the others.
package batch

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"luqy/internal/abspl"
	"luqy/internal/logging"
	"luqy/internal/measurement"
)

// Options tunes a batch run.
type Options struct {
	// Workers bounds concurrent parses. Values below 1 mean 1.
	Workers int
	// Charmap overrides the export code page; nil uses abspl.DefaultCharmap.
	Charmap *charmap.Charmap
}

// Outcome is the result for one input file.
type Outcome struct {
	Name        string
	Measurement *measurement.Measurement
	Parsed      *abspl.Result
	Err         error
	Elapsed     time.Duration
}

// Run normalizes names from fsys and returns one Outcome per name, in input
// order. Cancelling ctx stops scheduling further files; unscheduled files
// carry ctx.Err().
func Run(ctx context.Context, fsys fs.FS, names []string, opts Options, logger *slog.Logger) []Outcome {
	logger = logging.NewComponentLogger(logger, "batch")
	start := time.Now()
	workers := max(opts.Workers, 1)

	outcomes := make([]Outcome, len(names))
	for i, name := range names {
		outcomes[i] = Outcome{Name: name}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		if gctx.Err() != nil {
			outcomes[i].Err = gctx.Err()
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i] = processOne(fsys, name, opts.Charmap, logger)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	logger.Info("batch finished",
		logging.Int("files", len(names)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
		logging.Duration(logging.FieldElapsed, time.Since(start)),
	)
	return outcomes
}

func processOne(fsys fs.FS, name string, cm *charmap.Charmap, logger *slog.Logger) Outcome {
	start := time.Now()
	m := measurement.New(sampleName(name), name)
	parsed, err := m.Normalize(fsys, abspl.Parser{Charmap: cm, Logger: logger})
	elapsed := time.Since(start)
	logger.Debug("file processed",
		logging.String(logging.FieldFile, name),
		logging.Duration(logging.FieldElapsed, elapsed),
	)
	return Outcome{
		Name:        name,
		Measurement: m,
		Parsed:      parsed,
		Err:         err,
		Elapsed:     elapsed,
	}
}

// sampleName derives an entry name from the data file stem.
func sampleName(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
