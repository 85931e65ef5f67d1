package model

// MonthlyArrays holds the 36-month series of a stored business plan. Cost series
// carry their own sign.
type MonthlyArrays struct {
	Ca         []float64 `json:"ca" yaml:"ca"`
	CaAssoc    []float64 `json:"caAssoc" yaml:"caAssoc"`
	CaIndep    []float64 `json:"caIndep" yaml:"caIndep"`
	CaInterne  []float64 `json:"caInterne" yaml:"caInterne"`
	CaSage     []float64 `json:"caSage" yaml:"caSage"`
	Result     []float64 `json:"result" yaml:"result"`
	Cashflow   []float64 `json:"cashflow" yaml:"cashflow"` // cumulative, no delay
	Treso1m    []float64 `json:"treso1m" yaml:"treso1m"`
	Treso3m    []float64 `json:"treso3m" yaml:"treso3m"`
	Admin      []float64 `json:"admin" yaml:"admin"`
	Opex       []float64 `json:"opex" yaml:"opex"`
	Lab        []float64 `json:"lab" yaml:"lab"`
	FteAssoc   []float64 `json:"fteAssoc" yaml:"fteAssoc"`
	FteIndep   []float64 `json:"fteIndep" yaml:"fteIndep"`
	FteInterne []float64 `json:"fteInterne" yaml:"fteInterne"`
	FteAdmin   []float64 `json:"fteAdmin" yaml:"fteAdmin"`
	FteTotal   []float64 `json:"fteTotal" yaml:"fteTotal"`
}

// BusinessPlanConstants are the scalar assumptions stored with a plan. Assoc and
// Extra feed the per-partner ratios and may be left at zero.
type BusinessPlanConstants struct {
	ConsultDay float64 `json:"consultDay" yaml:"consultDay"`
	Fee        float64 `json:"fee" yaml:"fee"`
	DaysYear   float64 `json:"daysYear" yaml:"daysYear"`
	RevSpec    float64 `json:"revSpec" yaml:"revSpec"`
	Capex      float64 `json:"capex" yaml:"capex"`
	Assoc      float64 `json:"assoc,omitempty" yaml:"assoc,omitempty"` // partner doctors
	Extra      float64 `json:"extra,omitempty" yaml:"extra,omitempty"` // unbudgeted charges per year
}

// BusinessPlanData is a stored or imported plan.
type BusinessPlanData struct {
	MonthlyArrays         `yaml:",inline"`
	BusinessPlanConstants `yaml:",inline"`
}

// NamedSeries lists every monthly series with its JSON name, in declaration order.
func (a *MonthlyArrays) NamedSeries() []NamedSeries {
	return []NamedSeries{
		{"ca", a.Ca},
		{"caAssoc", a.CaAssoc},
		{"caIndep", a.CaIndep},
		{"caInterne", a.CaInterne},
		{"caSage", a.CaSage},
		{"result", a.Result},
		{"cashflow", a.Cashflow},
		{"treso1m", a.Treso1m},
		{"treso3m", a.Treso3m},
		{"admin", a.Admin},
		{"opex", a.Opex},
		{"lab", a.Lab},
		{"fteAssoc", a.FteAssoc},
		{"fteIndep", a.FteIndep},
		{"fteInterne", a.FteInterne},
		{"fteAdmin", a.FteAdmin},
		{"fteTotal", a.FteTotal},
	}
}

// NamedSeries is a plan series paired with its JSON name.
type NamedSeries struct {
	Name   string
	Values []float64
}
