package abspl

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"golang.org/x/text/encoding/charmap"

	"luqy/internal/logging"
)

// Result is everything recovered from one export.
type Result struct {
	Settings Settings `json:"settings"`
	Results  Results  `json:"results"`
	Spectrum Spectrum `json:"spectrum"`
	// HasData is false when the export has no separator line; Spectrum is
	// then empty regardless of the file contents.
	HasData   bool      `json:"has_data"`
	Lines     int       `json:"lines"`
	Anomalies []Anomaly `json:"anomalies,omitempty"`
}

// Parser decodes and parses exports. The zero value uses DefaultCharmap and
// discards log output.
type Parser struct {
	Charmap *charmap.Charmap
	Logger  *slog.Logger
}

// Parse decodes data and extracts header and table.
func (p Parser) Parse(data []byte) *Result {
	logger := parserLogger(p.Logger)
	lines := DecodeLinesWith(p.Charmap, data)

	header := ExtractHeader(lines, logger)
	res := &Result{
		Settings:  header.Settings,
		Results:   header.Results,
		Spectrum:  newSpectrum(),
		HasData:   header.HasData,
		Lines:     len(lines),
		Anomalies: header.Anomalies,
	}
	if header.HasData {
		table := ExtractTable(lines, header.DataStart, logger)
		res.Spectrum = table.Spectrum
		res.Anomalies = append(res.Anomalies, table.Anomalies...)
	}

	logger.Debug("parsed absolute PL export",
		logging.Int(logging.FieldLineCount, res.Lines),
		logging.Int("settings", res.Settings.Len()),
		logging.Int("results", res.Results.Len()),
		logging.Int("points", res.Spectrum.Len()),
		logging.Int("anomalies", len(res.Anomalies)),
	)
	return res
}

// ParseReader reads r to EOF and parses the bytes.
func (p Parser) ParseReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return p.Parse(data), nil
}

// ParseFile reads name from fsys and parses it. The file is closed before
// parsing starts.
func (p Parser) ParseFile(fsys fs.FS, name string) (*Result, error) {
	data, err := readAll(fsys, name)
	if err != nil {
		return nil, err
	}
	logger := parserLogger(p.Logger).With(logging.String(logging.FieldFile, name))
	return Parser{Charmap: p.Charmap, Logger: logger}.Parse(data), nil
}

func readAll(fsys fs.FS, name string) ([]byte, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open data file %q: %w", name, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read data file %q: %w", name, err)
	}
	return data, nil
}

// Parse parses data with the default code page.
func Parse(data []byte, logger *slog.Logger) *Result {
	return Parser{Logger: logger}.Parse(data)
}

// ParseReader parses r with the default code page.
func ParseReader(r io.Reader, logger *slog.Logger) (*Result, error) {
	return Parser{Logger: logger}.ParseReader(r)
}

// ParseFile parses name from fsys with the default code page.
func ParseFile(fsys fs.FS, name string, logger *slog.Logger) (*Result, error) {
	return Parser{Logger: logger}.ParseFile(fsys, name)
}

func parserLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.NewNop()
	}
	return logger
}
