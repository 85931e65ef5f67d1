package forecast

import "fmt"

// Constants are the business rates shared by the Simulator and the
// Scenario/Derived-Metrics engines. Callers pass them explicitly; the engines
// hold no global configuration.
type Constants struct {
	FactoringCostRate        float64 `json:"factoringCostRate" toml:"factoring_cost_rate"`
	BaselineCashShare        float64 `json:"baselineCashShare" toml:"baseline_cash_share"`
	DefaultRetrocessionRate  float64 `json:"defaultRetrocessionRate" toml:"default_retrocession_rate"`
	ReferenceTeamSize        float64 `json:"referenceTeamSize" toml:"reference_team_size"`
	AdminBaseMonthly         float64 `json:"adminBaseMonthly" toml:"admin_base_monthly"`
	AdminScaleFactor         float64 `json:"adminScaleFactor" toml:"admin_scale_factor"`
	OpexBaseMonthly          float64 `json:"opexBaseMonthly" toml:"opex_base_monthly"`
	OpexScaleFactor          float64 `json:"opexScaleFactor" toml:"opex_scale_factor"`
	SalariedCompensationRate float64 `json:"salariedCompensationRate" toml:"salaried_compensation_rate"`
	MidwifeMonthlyRevenue    float64 `json:"midwifeMonthlyRevenue" toml:"midwife_monthly_revenue"`
	RampMonths               float64 `json:"rampMonths" toml:"ramp_months"`
	Year2Recovery            float64 `json:"year2Recovery" toml:"year2_recovery"`
}

// DefaultConstants returns the rates of the reference business plan.
func DefaultConstants() Constants {
	return Constants{
		FactoringCostRate:        0.015,
		BaselineCashShare:        0.10,
		DefaultRetrocessionRate:  0.40,
		ReferenceTeamSize:        7,
		AdminBaseMonthly:         52650,
		AdminScaleFactor:         0.08,
		OpexBaseMonthly:          45584,
		OpexScaleFactor:          0.05,
		SalariedCompensationRate: 0.55,
		MidwifeMonthlyRevenue:    13333,
		RampMonths:               8,
		Year2Recovery:            0.6,
	}
}

// Validate rejects constants the engines cannot use.
func (c Constants) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"factoring_cost_rate", c.FactoringCostRate},
		{"baseline_cash_share", c.BaselineCashShare},
		{"default_retrocession_rate", c.DefaultRetrocessionRate},
		{"salaried_compensation_rate", c.SalariedCompensationRate},
		{"year2_recovery", c.Year2Recovery},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("constant %s must be within [0,1], got %v", r.name, r.v)
		}
	}
	if c.RampMonths <= 0 {
		return fmt.Errorf("constant ramp_months must be positive, got %v", c.RampMonths)
	}
	if c.ReferenceTeamSize <= 0 {
		return fmt.Errorf("constant reference_team_size must be positive, got %v", c.ReferenceTeamSize)
	}
	return nil
}
