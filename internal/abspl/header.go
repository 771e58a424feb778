package abspl

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"luqy/internal/logging"
)

// sentinelPrefix starts the separator line between header and data.
const sentinelPrefix = "---"

// columnHeaderLines is the number of lines between the sentinel and the first
// data row.
const columnHeaderLines = 1

// HeaderResult is the outcome of scanning the header section.
type HeaderResult struct {
	Settings Settings
	Results  Results
	// DataStart is the index of the first candidate data line. Only
	// meaningful when HasData is true.
	DataStart int
	HasData   bool
	Anomalies []Anomaly
}

// ExtractHeader scans lines from the top until the sentinel, collecting
// recognised settings and results.
func ExtractHeader(lines []string, logger *slog.Logger) HeaderResult {
	logger = parserLogger(logger)
	res := HeaderResult{
		Settings: newSettings(),
		Results:  newResults(),
	}

	for i, line := range lines {
		if isSentinel(line) {
			res.DataStart = i + 1 + columnHeaderLines
			res.HasData = true
			return res
		}
		key, value, ok := splitHeaderLine(line)
		if !ok {
			continue
		}
		if field, ok := LookupSetting(key); ok {
			if field.IsText() {
				res.Settings.setSubcell(value)
				continue
			}
			v, ok := parseNumber(value)
			if !ok {
				res.Anomalies = append(res.Anomalies, headerAnomaly(logger, i, key, value))
				continue
			}
			res.Settings.setFloat(field, v)
			continue
		}
		if field, ok := LookupResult(key); ok {
			v, ok := parseNumber(value)
			if !ok {
				res.Anomalies = append(res.Anomalies, headerAnomaly(logger, i, key, value))
				continue
			}
			res.Results.set(field, v)
		}
	}

	logger.Debug("no data separator found; spectrum will be empty",
		logging.Int(logging.FieldLineCount, len(lines)),
	)
	res.Anomalies = append(res.Anomalies, Anomaly{
		Kind:   AnomalyMissingSentinel,
		Detail: "no line starting with " + strconv.Quote(sentinelPrefix),
	})
	return res
}

func isSentinel(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), sentinelPrefix)
}

// splitHeaderLine splits on the first tab and trims both halves.
func splitHeaderLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "\t")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// parseNumber accepts decimal, signed, and exponent notation. Values beyond
// float64 range saturate to ±Inf rather than failing. Hexadecimal floats
// are not decimal and are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func headerAnomaly(logger *slog.Logger, index int, key, value string) Anomaly {
	logging.WarnWithContext(logger, "header value is not numeric; field left unset", "header_value_invalid",
		logging.Int(logging.FieldLine, index+1),
		logging.String("label", key),
		logging.String("value", value),
		logging.String(logging.FieldErrorHint, "check the export for a corrupted header line"),
		logging.String(logging.FieldImpact, "field missing from the measurement"),
	)
	return Anomaly{
		Kind:   AnomalyHeaderValue,
		Line:   index + 1,
		Detail: key + ": " + strconv.Quote(value),
	}
}
