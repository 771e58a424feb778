package abspl

import (
	"fmt"
	"log/slog"
	"strings"

	"luqy/internal/logging"
)

// columnCount is the number of numeric columns read from each data row.
const columnCount = 4

// TableResult is the outcome of scanning the data section.
type TableResult struct {
	Spectrum  Spectrum
	Anomalies []Anomaly
}

// ExtractTable parses data rows from lines[start:]. An out-of-range start
// yields an empty spectrum.
func ExtractTable(lines []string, start int, logger *slog.Logger) TableResult {
	logger = parserLogger(logger)
	res := TableResult{Spectrum: newSpectrum()}
	if start < 0 || start >= len(lines) {
		return res
	}

	for i := start; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			logger.Debug("skipping data row",
				logging.Int(logging.FieldLine, i+1),
				logging.Error(err),
			)
			res.Anomalies = append(res.Anomalies, Anomaly{Kind: AnomalyRow, Line: i + 1, Detail: err.Error()})
			continue
		}
		res.Spectrum.appendRow(row)
	}

	if dropped := len(res.Anomalies); dropped > 0 {
		logger.Info("dropped malformed data rows",
			logging.Int("dropped_rows", dropped),
			logging.Int("kept_rows", res.Spectrum.Len()),
		)
	}
	return res
}

// parseRow reads the first four whitespace-separated tokens as numbers.
// Extra tokens are ignored.
func parseRow(line string) ([columnCount]float64, error) {
	var row [columnCount]float64
	tokens := strings.Fields(line)
	if len(tokens) < columnCount {
		return row, fmt.Errorf("expected %d columns, found %d", columnCount, len(tokens))
	}
	for i := range row {
		v, ok := parseNumber(tokens[i])
		if !ok {
			return row, fmt.Errorf("column %d: %q is not a number", i+1, tokens[i])
		}
		row[i] = v
	}
	return row, nil
}
