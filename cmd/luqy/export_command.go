package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"luqy/internal/abspl"
	"luqy/internal/export"
	"luqy/internal/fileutil"
	"luqy/internal/logging"
	"luqy/internal/measurement"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outPath string
	var name string
	var overwrite bool
	var attach bool

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Normalize an instrument export and write it as JSON or xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "export")
			cm, err := cfg.Parser.Charmap()
			if err != nil {
				return err
			}

			if strings.TrimSpace(formatFlag) == "" {
				formatFlag = cfg.Export.Format
			}
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.Export.Overwrite
			}

			fsys, inputs, err := resolveInputs(args)
			if err != nil {
				return err
			}
			input := inputs[0]
			if strings.TrimSpace(name) == "" {
				base := filepath.Base(input.Abs)
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			m := measurement.New(name, input.Name)
			parsed, err := m.Normalize(fsys, abspl.Parser{Charmap: cm, Logger: logger})
			if err != nil {
				return err
			}
			m.DataFile = input.Abs

			target, err := resolveExportPath(outPath, cfg.Paths.OutputDir, m, format)
			if err != nil {
				return err
			}
			if err := export.Write(cmd.Context(), target, m, format, overwrite); err != nil {
				logging.ErrorWithContext(logger, "export failed", "export_write_failed",
					logging.String("path", target),
					logging.String("format", string(format)),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, writeFailureHint(err, "pass --overwrite or choose another --out path")),
				)
				return err
			}
			logger.Info("entry exported",
				logging.String(logging.FieldEntryID, m.ID),
				logging.String("format", string(format)),
				logging.String("path", target),
				logging.Int("anomalies", len(parsed.Anomalies)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s entry to %s\n", format, target)
			if n := len(parsed.Anomalies); n > 0 {
				fmt.Fprintf(out, "%d anomalies while parsing (run `luqy parse --anomalies %s` for details)\n", n, input.Arg)
			}

			if attach {
				dst := filepath.Join(filepath.Dir(target), filepath.Base(input.Abs))
				if dst == input.Abs {
					fmt.Fprintln(out, "Data file already next to the export; not copied")
					return nil
				}
				if !overwrite {
					if _, err := os.Stat(dst); err == nil {
						return fmt.Errorf("attach data file: %s already exists (use --overwrite to replace it)", dst)
					}
				}
				digest, err := fileutil.CopyFileVerified(input.Abs, dst)
				if err != nil {
					return fmt.Errorf("attach data file: %w", err)
				}
				logger.Debug("data file attached", logging.String("path", dst), logging.String("sha256", digest))
				fmt.Fprintf(out, "Copied data file to %s (sha256 %s)\n", dst, digest)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Export format: json or xlsx (defaults to export.format)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file or directory (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&name, "name", "", "Entry name (defaults to the data file name)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing export")
	cmd.Flags().BoolVar(&attach, "attach", false, "Copy the raw data file next to the export")
	return cmd
}

// resolveExportPath treats an existing directory or a trailing separator as
// a directory and derives the file name from the entry.
func resolveExportPath(outPath, defaultDir string, m *measurement.Measurement, format export.Format) (string, error) {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return export.DefaultPath(defaultDir, m, format), nil
	}
	if strings.HasSuffix(outPath, string(os.PathSeparator)) {
		return export.DefaultPath(outPath, m, format), nil
	}
	info, err := os.Stat(outPath)
	switch {
	case err == nil && info.IsDir():
		return export.DefaultPath(outPath, m, format), nil
	case err == nil, errors.Is(err, os.ErrNotExist):
		return outPath, nil
	default:
		return "", fmt.Errorf("resolve output path: %w", err)
	}
}
