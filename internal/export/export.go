// Package export writes normalized measurements to files other tools open:
// JSON entries (through the archive package) and Excel workbooks.
package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"luqy/internal/archive"
	"luqy/internal/measurement"
	"luqy/internal/textutil"
)

// Format selects the export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("export format: unsupported value %q (expected json or xlsx)", value)
	}
}

// DefaultPath returns the file path for m in dir for the given format.
func DefaultPath(dir string, m *measurement.Measurement, format Format) string {
	if format == FormatJSON {
		return archive.EntryPath(dir, m)
	}
	name := textutil.SanitizeFileName(m.Name)
	if name == "" {
		stem := filepath.Base(m.DataFile)
		name = textutil.SanitizeFileName(strings.TrimSuffix(stem, filepath.Ext(stem)))
	}
	if name == "" || name == "." {
		name = "measurement"
	}
	return filepath.Join(dir, name+".xlsx")
}

// Write exports m to path in the given format.
func Write(ctx context.Context, path string, m *measurement.Measurement, format Format, overwrite bool) error {
	switch format {
	case FormatJSON:
		return archive.Write(ctx, path, m, overwrite)
	case FormatXLSX:
		return WriteWorkbook(path, m, overwrite)
	default:
		return fmt.Errorf("export format: unsupported value %q", format)
	}
}
