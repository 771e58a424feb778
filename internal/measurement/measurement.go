package measurement

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MethodAbsolutePL is the method name recorded on every entry.
const MethodAbsolutePL = "Absolute Photoluminescence"

// Quantity is a number tagged with its unit. An empty Unit means dimensionless.
// See number.go for its JSON form.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Settings are the instrument settings of a measurement. Nil fields are unset.
type Settings struct {
	LaserIntensitySuns *Quantity `json:"laser_intensity_suns,omitempty"`
	BiasVoltage        *Quantity `json:"bias_voltage,omitempty"`
	SMUCurrentDensity  *Quantity `json:"smu_current_density,omitempty"`
	IntegrationTime    *Quantity `json:"integration_time,omitempty"`
	DelayTime          *Quantity `json:"delay_time,omitempty"`
	EQELaserWavelength *Quantity `json:"eqe_laser_wavelength,omitempty"`
	LaserSpotSize      *Quantity `json:"laser_spot_size,omitempty"`
	SubcellArea        *Quantity `json:"subcell_area,omitempty"`
	SubcellDescription *string   `json:"subcell_description,omitempty"`
}

// Result holds header results and the measured spectrum.
type Result struct {
	LuminescenceQuantumYield *Quantity `json:"luminescence_quantum_yield,omitempty"`
	QuasiFermiLevelSplitting *Quantity `json:"quasi_fermi_level_splitting,omitempty"`
	Bandgap                  *Quantity `json:"bandgap,omitempty"`
	DerivedJsc               *Quantity `json:"derived_jsc,omitempty"`

	Wavelength              Series `json:"wavelength,omitempty"`
	LuminescenceFluxDensity Series `json:"luminescence_flux_density,omitempty"`
	RawSpectrumCounts       Series `json:"raw_spectrum_counts,omitempty"`
	DarkSpectrumCounts      Series `json:"dark_spectrum_counts,omitempty"`
}

// Points returns the number of spectral sample points.
func (r Result) Points() int { return len(r.Wavelength) }

// Measurement is one absolute PL entry.
type Measurement struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Method    string    `json:"method"`
	DataFile  string    `json:"data_file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Settings  *Settings `json:"settings,omitempty"`
	Results   []Result  `json:"results,omitempty"`
}

// New returns an entry for dataFile with a fresh ID.
func New(name, dataFile string) *Measurement {
	return &Measurement{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Method:    MethodAbsolutePL,
		DataFile:  strings.TrimSpace(dataFile),
		CreatedAt: time.Now().UTC(),
	}
}

// Encode serialises the entry to indented JSON.
func (m *Measurement) Encode() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode measurement: nil entry")
	}
	return json.MarshalIndent(m, "", "  ")
}

// Decode loads an entry from JSON. Blank input yields an error since an
// entry without an ID cannot be addressed.
func Decode(data []byte) (*Measurement, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("decode measurement: empty document")
	}
	var m Measurement
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode measurement: %w", err)
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		return nil, fmt.Errorf("decode measurement: invalid id %q: %w", m.ID, err)
	}
	if m.Method == "" {
		m.Method = MethodAbsolutePL
	}
	return &m, nil
}
