package cashflow

import "bizplan-engine/internal/series"

// Policy describes how receivables are collected.
type Policy struct {
	CashShare   float64 // fraction of revenue paid in cash at consultation time
	DelayMonths int     // months until the insurer pays the receivable
	Factoring   bool    // receivables sold in the month they are billed
}

// Compute returns the cumulative cash position for revenue collected under p.
// The cost series are already signed and are added as-is. factoringCost is the
// discount applied to factored receivables.
func Compute(revenue, admin, opex, lab series.Series, p Policy, factoringCost float64) (series.Series, error) {
	for _, in := range []struct {
		name string
		s    series.Series
	}{
		{"revenue", revenue},
		{"admin", admin},
		{"opex", opex},
		{"lab", lab},
	} {
		if err := series.Check(in.name, in.s); err != nil {
			return nil, err
		}
	}

	delay := p.DelayMonths
	if delay < 0 {
		delay = 0
	}
	receivableShare := 1 - p.CashShare

	out := make(series.Series, series.Months)
	var cum float64
	for m := 0; m < series.Months; m++ {
		inflow := revenue[m] * p.CashShare
		if p.Factoring {
			inflow += revenue[m] * receivableShare * (1 - factoringCost)
		} else if m >= delay {
			// revenue billed before month 0 is not modelled
			inflow += revenue[m-delay] * receivableShare
		}
		cum += inflow + admin[m] + opex[m] + lab[m]
		out[m] = cum
	}
	return out, nil
}
