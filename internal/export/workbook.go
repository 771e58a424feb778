package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"luqy/internal/abspl"
	"luqy/internal/archive"
	"luqy/internal/measurement"
)

// Sheet names in exported workbooks.
const (
	SheetSettings = "Settings"
	SheetResults  = "Results"
	SheetSpectrum = "Spectrum"
)

var (
	fieldHeader    = []any{"Field", "Label", "Value", "Unit"}
	spectrumHeader = []any{
		"Wavelength (" + measurement.UnitWavelength + ")",
		"Luminescence flux density (" + measurement.UnitLuminescenceFluxDensity + ")",
		"Raw spectrum counts",
		"Dark spectrum counts",
	}
)

// WriteWorkbook writes m to an .xlsx file with one sheet each for settings,
// results, and the spectrum of the first result. Unset fields are omitted.
func WriteWorkbook(path string, m *measurement.Measurement, overwrite bool) error {
	if m == nil {
		return errors.New("write workbook: nil measurement")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, archive.ErrExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSettings); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetResults, SheetSpectrum} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetSettings, settingRows(m.Settings)); err != nil {
		return err
	}
	var first *measurement.Result
	if len(m.Results) > 0 {
		first = &m.Results[0]
	}
	if err := writeRows(f, SheetResults, resultRows(first)); err != nil {
		return err
	}
	if err := writeRows(f, SheetSpectrum, spectrumRows(first)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func settingRows(s *measurement.Settings) [][]any {
	rows := [][]any{fieldHeader}
	if s == nil {
		return rows
	}
	for _, field := range abspl.SettingFields() {
		if field.IsText() {
			if s.SubcellDescription != nil {
				rows = append(rows, []any{field.Name(), field.Label(), *s.SubcellDescription, ""})
			}
			continue
		}
		if q := s.Setting(field); q != nil {
			rows = append(rows, []any{field.Name(), field.Label(), cellValue(q.Value), q.Unit})
		}
	}
	return rows
}

func resultRows(r *measurement.Result) [][]any {
	rows := [][]any{fieldHeader}
	if r == nil {
		return rows
	}
	for _, field := range abspl.ResultFields() {
		if q := r.Value(field); q != nil {
			rows = append(rows, []any{field.Name(), field.Label(), cellValue(q.Value), q.Unit})
		}
	}
	return rows
}

func spectrumRows(r *measurement.Result) [][]any {
	rows := [][]any{spectrumHeader}
	if r == nil {
		return rows
	}
	n := min(len(r.Wavelength), len(r.LuminescenceFluxDensity), len(r.RawSpectrumCounts), len(r.DarkSpectrumCounts))
	for i := range n {
		rows = append(rows, []any{
			cellValue(r.Wavelength[i]),
			cellValue(r.LuminescenceFluxDensity[i]),
			cellValue(r.RawSpectrumCounts[i]),
			cellValue(r.DarkSpectrumCounts[i]),
		})
	}
	return rows
}

// cellValue keeps finite numbers numeric. Spreadsheets have no NaN or
// infinity, so those become text cells.
func cellValue(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return v
}
