package model

// SimulatorParams drives the Simulator Engine. Percentages are whole numbers
// (occup 60 means 60 %).
type SimulatorParams struct {
	Consult   float64  `json:"consult" yaml:"consult"`     // consultations per day
	Fee       float64  `json:"fee" yaml:"fee"`             // CHF per consultation
	Days      float64  `json:"days" yaml:"days"`           // working days per year
	Assoc     float64  `json:"assoc" yaml:"assoc"`         // partner doctors
	Indep     float64  `json:"indep" yaml:"indep"`         // independent doctors
	Interne   float64  `json:"interne" yaml:"interne"`     // salaried doctors
	Start     int      `json:"start" yaml:"start"`         // first operating month, 1-12
	Occup     float64  `json:"occup" yaml:"occup"`         // year-1 occupancy target, %
	CashPct   float64  `json:"cashPct" yaml:"cashPct"`     // cash patients, %
	Delay     int      `json:"delay" yaml:"delay"`         // insurer payment delay, months
	Factoring bool     `json:"factoring" yaml:"factoring"` // sell receivables immediately
	Extra     float64  `json:"extra" yaml:"extra"`         // unbudgeted charges per year
	RC        float64  `json:"rc" yaml:"rc"`               // professional liability per year
	Retro     *float64 `json:"retro,omitempty" yaml:"retro,omitempty"`
}

// DefaultSimulatorParams returns the reference scenario of the business plan.
func DefaultSimulatorParams() SimulatorParams {
	retro := 40.0
	return SimulatorParams{
		Consult:   16,
		Fee:       225,
		Days:      220,
		Assoc:     2,
		Indep:     2,
		Interne:   1,
		Start:     4,
		Occup:     60,
		CashPct:   10,
		Delay:     3,
		Factoring: false,
		Extra:     50000,
		RC:        20000,
		Retro:     &retro,
	}
}

// TeamSize is the total doctor headcount.
func (p SimulatorParams) TeamSize() float64 {
	return p.Assoc + p.Indep + p.Interne
}

// Bound is the documented input range of a simulator parameter.
type Bound struct {
	Param string  `json:"param"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ParamBounds are the ranges accepted by the scenario editor. The engine itself
// runs outside them.
var ParamBounds = []Bound{
	{"consult", 8, 24},
	{"fee", 120, 350},
	{"days", 180, 250},
	{"assoc", 1, 4},
	{"indep", 0, 6},
	{"interne", 0, 4},
	{"start", 1, 12},
	{"occup", 30, 100},
	{"cashPct", 0, 30},
	{"extra", 0, 400000},
	{"rc", 0, 120000},
	{"retro", 20, 60},
}

// BoundFor returns the range of param. ok is false for unknown names.
func BoundFor(param string) (b Bound, ok bool) {
	for _, b := range ParamBounds {
		if b.Param == param {
			return b, true
		}
	}
	return Bound{}, false
}

// Value returns the numeric value of param. ok is false for unknown names and
// for an unset retro.
func (p SimulatorParams) Value(param string) (v float64, ok bool) {
	switch param {
	case "consult":
		return p.Consult, true
	case "fee":
		return p.Fee, true
	case "days":
		return p.Days, true
	case "assoc":
		return p.Assoc, true
	case "indep":
		return p.Indep, true
	case "interne":
		return p.Interne, true
	case "start":
		return float64(p.Start), true
	case "occup":
		return p.Occup, true
	case "cashPct":
		return p.CashPct, true
	case "delay":
		return float64(p.Delay), true
	case "extra":
		return p.Extra, true
	case "rc":
		return p.RC, true
	case "retro":
		if p.Retro == nil {
			return 0, false
		}
		return *p.Retro, true
	}
	return 0, false
}
