package finance

// Financing is the rate and leverage applied to a building, both in percent units.
type Financing struct {
	RatePct     float64 `json:"rate_pct"`
	LeveragePct float64 `json:"leverage_pct"`
}

// Override replaces some or all of the default financing for one building.
type Override struct {
	RatePct     *float64 `json:"rate_pct,omitempty"`
	LeveragePct *float64 `json:"leverage_pct,omitempty"`
}

// Empty reports whether the override no longer changes anything.
func (o Override) Empty() bool {
	return o.RatePct == nil && o.LeveragePct == nil
}

// Settings is the global financing defaults plus sparse per-building overrides.
type Settings struct {
	Defaults  Financing          `json:"defaults"`
	Overrides map[int64]Override `json:"overrides"`
}

// DefaultFinancing matches the figures the analysis screen starts with.
var DefaultFinancing = Financing{RatePct: 4.5, LeveragePct: 80}

// NewSettings returns settings with the given defaults and no overrides.
func NewSettings(defaults Financing) Settings {
	return Settings{Defaults: defaults, Overrides: map[int64]Override{}}
}

// Resolve returns the financing for a building: override fields first, defaults otherwise.
func (s Settings) Resolve(buildingID int64) Financing {
	f := s.Defaults
	o, ok := s.Overrides[buildingID]
	if !ok {
		return f
	}
	if o.RatePct != nil {
		f.RatePct = *o.RatePct
	}
	if o.LeveragePct != nil {
		f.LeveragePct = *o.LeveragePct
	}
	return f
}
