package measurement

import "luqy/internal/abspl"

// Units of the spectral arrays.
const (
	UnitWavelength              = "nm"
	UnitLuminescenceFluxDensity = "s / (cm**2 * nm)"
)

// settingSlots maps each numeric setting to its unit and the entry field it
// populates. SubcellDescription is text and handled separately.
var settingSlots = map[abspl.SettingField]struct {
	unit string
	slot func(*Settings) **Quantity
}{
	abspl.LaserIntensitySuns: {"", func(s *Settings) **Quantity { return &s.LaserIntensitySuns }},
	abspl.BiasVoltage:        {"V", func(s *Settings) **Quantity { return &s.BiasVoltage }},
	abspl.SMUCurrentDensity:  {"mA/cm**2", func(s *Settings) **Quantity { return &s.SMUCurrentDensity }},
	abspl.IntegrationTime:    {"ms", func(s *Settings) **Quantity { return &s.IntegrationTime }},
	abspl.DelayTime:          {"s", func(s *Settings) **Quantity { return &s.DelayTime }},
	abspl.EQELaserWavelength: {"", func(s *Settings) **Quantity { return &s.EQELaserWavelength }},
	abspl.LaserSpotSize:      {"cm**2", func(s *Settings) **Quantity { return &s.LaserSpotSize }},
	abspl.SubcellArea:        {"cm**2", func(s *Settings) **Quantity { return &s.SubcellArea }},
}

var resultSlots = map[abspl.ResultField]struct {
	unit string
	slot func(*Result) **Quantity
}{
	abspl.LuminescenceQuantumYield: {"", func(r *Result) **Quantity { return &r.LuminescenceQuantumYield }},
	abspl.QuasiFermiLevelSplitting: {"eV", func(r *Result) **Quantity { return &r.QuasiFermiLevelSplitting }},
	abspl.Bandgap:                  {"eV", func(r *Result) **Quantity { return &r.Bandgap }},
	abspl.DerivedJsc:               {"mA/cm**2", func(r *Result) **Quantity { return &r.DerivedJsc }},
}

// Setting returns the stored quantity for a numeric setting.
func (s *Settings) Setting(f abspl.SettingField) *Quantity {
	if s == nil {
		return nil
	}
	entry, ok := settingSlots[f]
	if !ok {
		return nil
	}
	return *entry.slot(s)
}

// Value returns the stored quantity for a result field.
func (r *Result) Value(f abspl.ResultField) *Quantity {
	if r == nil {
		return nil
	}
	entry, ok := resultSlots[f]
	if !ok {
		return nil
	}
	return *entry.slot(r)
}
