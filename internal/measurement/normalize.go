package measurement

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"luqy/internal/abspl"
	"luqy/internal/logging"
)

// ErrDataFile wraps failures to read a measurement's data file.
var ErrDataFile = errors.New("could not read data file")

// Normalize parses DataFile from fsys and populates Settings and Results[0].
//
// A missing or unreadable data file is logged as a warning, leaves the entry
// unchanged, and is returned wrapped in ErrDataFile. A readable file always
// applies whatever the parser recovered; settings and results absent from the
// export keep their prior values. Both return values are nil when no data
// file is attached.
func (m *Measurement) Normalize(fsys fs.FS, parser abspl.Parser) (*abspl.Result, error) {
	logger := parser.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldEntryID, m.ID))
	logger.Debug("normalizing measurement", logging.String(logging.FieldFile, m.DataFile))

	if m.Settings == nil {
		m.Settings = &Settings{}
	}
	if m.Method == "" {
		m.Method = MethodAbsolutePL
	}
	if m.DataFile == "" {
		logger.Debug("no data file attached; nothing to parse")
		return nil, nil
	}

	parser.Logger = logger
	parsed, err := parser.ParseFile(fsys, m.DataFile)
	if err != nil {
		logging.WarnWithContext(logger, "could not parse the data file", "data_file_unreadable",
			logging.String(logging.FieldFile, m.DataFile),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the data file exists and is readable"),
			logging.String(logging.FieldImpact, "entry left unchanged"),
		)
		return nil, fmt.Errorf("%w: %w", ErrDataFile, err)
	}

	m.Apply(parsed, logger)
	return parsed, nil
}

// Apply copies a parse result into the entry.
func (m *Measurement) Apply(parsed *abspl.Result, logger *slog.Logger) {
	if parsed == nil {
		return
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if m.Settings == nil {
		m.Settings = &Settings{}
	}
	applySettings(m.Settings, parsed.Settings)

	if len(m.Results) == 0 {
		m.Results = []Result{{}}
	}
	result := &m.Results[0]
	applyResults(result, parsed.Results)

	result.Wavelength = Series(slices.Clone(parsed.Spectrum.Wavelength))
	result.LuminescenceFluxDensity = Series(slices.Clone(parsed.Spectrum.LuminescenceFluxDensity))
	result.RawSpectrumCounts = Series(slices.Clone(parsed.Spectrum.RawCounts))
	result.DarkSpectrumCounts = Series(slices.Clone(parsed.Spectrum.DarkCounts))

	logger.Info("measurement populated from data file",
		logging.Int("settings", parsed.Settings.Len()),
		logging.Int("results", parsed.Results.Len()),
		logging.Int("points", result.Points()),
		logging.Int("anomalies", len(parsed.Anomalies)),
	)
}

func applySettings(dst *Settings, src abspl.Settings) {
	for _, field := range src.Fields() {
		if field.IsText() {
			if text, ok := src.Subcell(); ok {
				dst.SubcellDescription = &text
			}
			continue
		}
		entry, ok := settingSlots[field]
		if !ok {
			continue
		}
		value, _ := src.Float(field)
		*entry.slot(dst) = &Quantity{Value: value, Unit: entry.unit}
	}
}

func applyResults(dst *Result, src abspl.Results) {
	for _, field := range src.Fields() {
		entry, ok := resultSlots[field]
		if !ok {
			continue
		}
		value, _ := src.Float(field)
		*entry.slot(dst) = &Quantity{Value: value, Unit: entry.unit}
	}
}
