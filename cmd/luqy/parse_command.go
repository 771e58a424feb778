package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"luqy/internal/abspl"
	"luqy/internal/archive"
	"luqy/internal/batch"
	"luqy/internal/logging"
	"luqy/internal/measurement"
)

// parseReport is the --json form of one parsed file.
type parseReport struct {
	File      string                   `json:"file"`
	Entry     *measurement.Measurement `json:"entry,omitempty"`
	Saved     string                   `json:"saved,omitempty"`
	Anomalies []abspl.Anomaly          `json:"anomalies,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var showAnomalies bool
	var save bool
	var workers int

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse instrument exports and summarize what was recovered",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cm, err := cfg.Parser.Charmap()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Batch.Workers
			}

			fsys, inputs, err := resolveInputs(args)
			if err != nil {
				return err
			}
			names := make([]string, len(inputs))
			for i, in := range inputs {
				names[i] = in.Name
			}

			outcomes := batch.Run(cmd.Context(), fsys, names, batch.Options{Workers: workers, Charmap: cm}, logger)

			reports := make([]parseReport, len(outcomes))
			failed := 0
			for i, o := range outcomes {
				reports[i] = parseReport{File: inputs[i].Arg}
				if o.Err != nil {
					reports[i].Error = o.Err.Error()
					failed++
					continue
				}
				o.Measurement.DataFile = inputs[i].Abs
				reports[i].Entry = o.Measurement
				reports[i].Anomalies = o.Parsed.Anomalies
				if save {
					path := archive.EntryPath(cfg.Paths.OutputDir, o.Measurement)
					if err := archive.Write(cmd.Context(), path, o.Measurement, cfg.Export.Overwrite); err != nil {
						logging.WarnWithContext(logger, "could not save entry", "entry_save_failed",
							logging.String(logging.FieldFile, inputs[i].Arg),
							logging.Error(err),
							logging.String(logging.FieldErrorHint, writeFailureHint(err, "set overwrite = true under [export] in the config or remove the existing entry")),
							logging.String(logging.FieldImpact, "entry not archived"),
						)
						reports[i].Error = err.Error()
						failed++
						continue
					}
					reports[i].Saved = path
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				printParseSummary(cmd, reports, outcomes, showAnomalies)
			}

			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print normalized entries as JSON")
	cmd.Flags().BoolVar(&showAnomalies, "anomalies", false, "List skipped header values and data rows")
	cmd.Flags().BoolVar(&save, "save", false, "Archive each entry as JSON in the configured output directory")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Files parsed concurrently (defaults to batch.workers)")
	return cmd
}

func printParseSummary(cmd *cobra.Command, reports []parseReport, outcomes []batch.Outcome, showAnomalies bool) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(reports))
	for i, r := range reports {
		if r.Entry == nil {
			rows = append(rows, []string{filepath.Base(r.File), "-", "-", "-", "-", "-", r.Error})
			continue
		}
		parsed := outcomes[i].Parsed
		status := "ok"
		if r.Saved != "" {
			status = "saved " + r.Saved
		}
		rows = append(rows, []string{
			filepath.Base(r.File),
			strconv.Itoa(parsed.Settings.Len()),
			strconv.Itoa(parsed.Results.Len()),
			strconv.Itoa(parsed.Spectrum.Len()),
			yesNo(parsed.HasData),
			strconv.Itoa(len(parsed.Anomalies)),
			status,
		})
	}
	fmt.Fprintln(out, renderTable("",
		[]string{"File", "Settings", "Results", "Points", "Data", "Anomalies", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft},
	))

	if !showAnomalies {
		return
	}
	var anomalyRows [][]string
	for _, r := range reports {
		for _, a := range r.Anomalies {
			line := "-"
			if a.Line > 0 {
				line = strconv.Itoa(a.Line)
			}
			anomalyRows = append(anomalyRows, []string{filepath.Base(r.File), line, string(a.Kind), a.Detail})
		}
	}
	if len(anomalyRows) == 0 {
		fmt.Fprintln(out, "No anomalies")
		return
	}
	fmt.Fprintln(out, renderTable("Anomalies",
		[]string{"File", "Line", "Kind", "Detail"},
		anomalyRows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
}
