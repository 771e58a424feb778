package abspl

// SettingField identifies an instrument setting recognised in the header.
type SettingField int

const (
	LaserIntensitySuns SettingField = iota
	BiasVoltage
	SMUCurrentDensity
	IntegrationTime
	DelayTime
	EQELaserWavelength
	LaserSpotSize
	SubcellArea
	SubcellDescription
)

// ResultField identifies a computed result recognised in the header.
type ResultField int

const (
	LuminescenceQuantumYield ResultField = iota
	QuasiFermiLevelSplitting
	Bandgap
	DerivedJsc
)

type fieldInfo struct {
	name  string
	label string
}

var settingInfo = [...]fieldInfo{
	LaserIntensitySuns: {"laser_intensity_suns", "Laser intensity (suns)"},
	BiasVoltage:        {"bias_voltage", "Bias Voltage (V)"},
	SMUCurrentDensity:  {"smu_current_density", "SMU current density (mA/cm2)"},
	IntegrationTime:    {"integration_time", "Integration Time (ms)"},
	DelayTime:          {"delay_time", "Delay time (s)"},
	EQELaserWavelength: {"eqe_laser_wavelength", "EQE @ laser wavelength"},
	LaserSpotSize:      {"laser_spot_size", "Laser spot size (cm²)"},
	SubcellArea:        {"subcell_area", "Subcell area (cm²)"},
	SubcellDescription: {"subcell_description", "Subcell"},
}

var resultInfo = [...]fieldInfo{
	LuminescenceQuantumYield: {"luminescence_quantum_yield", "LuQY (%)"},
	QuasiFermiLevelSplitting: {"quasi_fermi_level_splitting", "iVoc (V)"},
	Bandgap:                  {"bandgap", "Bandgap (eV)"},
	DerivedJsc:               {"derived_jsc", "Jsc (mA/cm2)"},
}

// settingLabels and resultLabels map exact header labels to fields. A label
// absent from both tables is ignored.
var (
	settingLabels = labelIndex[SettingField](settingInfo[:])
	resultLabels  = labelIndex[ResultField](resultInfo[:])
)

func labelIndex[F ~int](infos []fieldInfo) map[string]F {
	out := make(map[string]F, len(infos))
	for i, info := range infos {
		out[info.label] = F(i)
	}
	return out
}

// SettingFields lists every setting field in declaration order.
func SettingFields() []SettingField {
	out := make([]SettingField, len(settingInfo))
	for i := range settingInfo {
		out[i] = SettingField(i)
	}
	return out
}

// ResultFields lists every result field in declaration order.
func ResultFields() []ResultField {
	out := make([]ResultField, len(resultInfo))
	for i := range resultInfo {
		out[i] = ResultField(i)
	}
	return out
}

func (f SettingField) valid() bool { return f >= 0 && int(f) < len(settingInfo) }

func (f ResultField) valid() bool { return f >= 0 && int(f) < len(resultInfo) }

// Name returns the canonical identifier, e.g. "bias_voltage".
func (f SettingField) Name() string {
	if !f.valid() {
		return "unknown"
	}
	return settingInfo[f].name
}

// Label returns the header label the instrument writes for the field.
func (f SettingField) Label() string {
	if !f.valid() {
		return ""
	}
	return settingInfo[f].label
}

// IsText reports whether the field keeps its header value as free text.
func (f SettingField) IsText() bool { return f == SubcellDescription }

func (f SettingField) String() string { return f.Name() }

// Name returns the canonical identifier, e.g. "bandgap".
func (f ResultField) Name() string {
	if !f.valid() {
		return "unknown"
	}
	return resultInfo[f].name
}

// Label returns the header label the instrument writes for the field.
func (f ResultField) Label() string {
	if !f.valid() {
		return ""
	}
	return resultInfo[f].label
}

func (f ResultField) String() string { return f.Name() }

// LookupSetting returns the setting field for an exact header label.
func LookupSetting(label string) (SettingField, bool) {
	f, ok := settingLabels[label]
	return f, ok
}

// LookupResult returns the result field for an exact header label.
func LookupResult(label string) (ResultField, bool) {
	f, ok := resultLabels[label]
	return f, ok
}
