package abspl

import (
	"encoding/json"
	"sort"
)

// Settings holds the instrument settings recognised in a header. Fields the
// header did not provide, or provided with an unparseable value, are absent.
type Settings struct {
	numbers map[SettingField]float64
	subcell *string
}

func newSettings() Settings {
	return Settings{numbers: make(map[SettingField]float64)}
}

// Float returns a numeric setting.
func (s Settings) Float(f SettingField) (float64, bool) {
	v, ok := s.numbers[f]
	return v, ok
}

// Subcell returns the free-text subcell description.
func (s Settings) Subcell() (string, bool) {
	if s.subcell == nil {
		return "", false
	}
	return *s.subcell, true
}

// Has reports whether the field was populated.
func (s Settings) Has(f SettingField) bool {
	if f.IsText() {
		return s.subcell != nil
	}
	_, ok := s.numbers[f]
	return ok
}

// Len returns the number of populated fields.
func (s Settings) Len() int {
	n := len(s.numbers)
	if s.subcell != nil {
		n++
	}
	return n
}

// Fields returns the populated fields in declaration order.
func (s Settings) Fields() []SettingField {
	out := make([]SettingField, 0, s.Len())
	for _, f := range SettingFields() {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s *Settings) setFloat(f SettingField, v float64) {
	if s.numbers == nil {
		s.numbers = make(map[SettingField]float64)
	}
	s.numbers[f] = v
}

func (s *Settings) setSubcell(v string) {
	s.subcell = &v
}

// MarshalJSON encodes populated fields keyed by canonical name.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, s.Len())
	for f, v := range s.numbers {
		out[f.Name()] = jsonFloat(v)
	}
	if s.subcell != nil {
		out[SubcellDescription.Name()] = *s.subcell
	}
	return json.Marshal(out)
}

// Results holds the computed results recognised in a header.
type Results struct {
	numbers map[ResultField]float64
}

func newResults() Results {
	return Results{numbers: make(map[ResultField]float64)}
}

// Float returns a result value.
func (r Results) Float(f ResultField) (float64, bool) {
	v, ok := r.numbers[f]
	return v, ok
}

// Len returns the number of populated fields.
func (r Results) Len() int { return len(r.numbers) }

// Fields returns the populated fields in declaration order.
func (r Results) Fields() []ResultField {
	out := make([]ResultField, 0, len(r.numbers))
	for f := range r.numbers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Results) set(f ResultField, v float64) {
	if r.numbers == nil {
		r.numbers = make(map[ResultField]float64)
	}
	r.numbers[f] = v
}

// MarshalJSON encodes populated fields keyed by canonical name.
func (r Results) MarshalJSON() ([]byte, error) {
	out := make(map[string]jsonFloat, len(r.numbers))
	for f, v := range r.numbers {
		out[f.Name()] = jsonFloat(v)
	}
	return json.Marshal(out)
}

// Spectrum is the numeric table of an export. Index i of every slice refers
// to the same sample point; the slices always have equal length.
type Spectrum struct {
	Wavelength              []float64 `json:"wavelength"`
	LuminescenceFluxDensity []float64 `json:"luminescence_flux_density"`
	RawCounts               []float64 `json:"raw_spectrum_counts"`
	DarkCounts              []float64 `json:"dark_spectrum_counts"`
}

// MarshalJSON encodes the four columns under their canonical names.
func (s Spectrum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Wavelength              []jsonFloat `json:"wavelength"`
		LuminescenceFluxDensity []jsonFloat `json:"luminescence_flux_density"`
		RawCounts               []jsonFloat `json:"raw_spectrum_counts"`
		DarkCounts              []jsonFloat `json:"dark_spectrum_counts"`
	}{
		jsonFloats(s.Wavelength),
		jsonFloats(s.LuminescenceFluxDensity),
		jsonFloats(s.RawCounts),
		jsonFloats(s.DarkCounts),
	})
}

func newSpectrum() Spectrum {
	return Spectrum{
		Wavelength:              []float64{},
		LuminescenceFluxDensity: []float64{},
		RawCounts:               []float64{},
		DarkCounts:              []float64{},
	}
}

// Len returns the number of sample points.
func (s Spectrum) Len() int { return len(s.Wavelength) }

func (s *Spectrum) appendRow(row [4]float64) {
	s.Wavelength = append(s.Wavelength, row[0])
	s.LuminescenceFluxDensity = append(s.LuminescenceFluxDensity, row[1])
	s.RawCounts = append(s.RawCounts, row[2])
	s.DarkCounts = append(s.DarkCounts, row[3])
}
