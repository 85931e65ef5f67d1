package forecast

import (
	"bizplan-engine/internal/cashflow"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

// Retrocession returns the share of partner and independent billings retained by
// the practice. An unset retro falls back to the default rate; an explicit 0 is
// a valid 0 %.
func Retrocession(p model.SimulatorParams, c Constants) float64 {
	if p.Retro == nil {
		return c.DefaultRetrocessionRate
	}
	return *p.Retro / 100
}

// Simulate generates a 36-month plan from p. It fails with *DivisionByZeroError
// when p has no partners, since the per-partner share is undefined.
func Simulate(p model.SimulatorParams, c Constants) (model.SimulationResult, error) {
	if p.Assoc == 0 {
		return model.SimulationResult{}, &DivisionByZeroError{Quantity: "perAssoc", Divisor: "assoc"}
	}

	perSpec := MonthlyRevenuePerSpecialist(p.Consult, p.Fee, p.Days)
	target := p.Occup / 100
	retro := Retrocession(p, c)
	team := Team{Assoc: p.Assoc, Indep: p.Indep, Interne: p.Interne}
	size := team.Size()

	ca := series.Zeros()
	result := series.Zeros()
	costs := series.Zeros()
	compensation := series.Zeros()
	occupancy := series.Zeros()
	bd := model.RevenueBreakdown{
		CaAssoc:   series.Zeros(),
		CaIndep:   series.Zeros(),
		CaInterne: series.Zeros(),
		CaSage:    series.Zeros(),
	}

	for m := 0; m < series.Months; m++ {
		occ := Occupancy(m, p.Start, target, c)
		rev := SplitRevenue(perSpec, team, occ, retro, c)
		cost := MonthlyCosts(size, occ, p.Extra, p.RC, c)
		sal := SalariedCompensation(perSpec, p.Interne, occ, c)

		ca[m] = rev.Total
		result[m] = rev.Total + cost - sal
		costs[m] = cost
		compensation[m] = -sal
		occupancy[m] = occ

		bd.CaAssoc[m] = rev.Assoc
		bd.CaIndep[m] = rev.Indep
		bd.CaInterne[m] = rev.Interne
		bd.CaSage[m] = rev.Sage
	}

	policy := cashflow.Policy{
		CashShare:   p.CashPct / 100,
		DelayMonths: p.Delay,
		Factoring:   p.Factoring,
	}
	cash, err := cashflow.Compute(ca, costs, compensation, series.Zeros(), policy, c.FactoringCostRate)
	if err != nil {
		return model.SimulationResult{}, err
	}

	bd.Costs = costs
	bd.SalInterne = compensation
	bd.Occupancy = occupancy

	resY3 := series.YearSum(result, 3)
	resAdj := resY3 - p.Extra - p.RC

	return model.SimulationResult{
		Ca:             ca,
		Result:         result,
		Cashflow:       cash,
		CaY1:           series.YearSum(ca, 1),
		CaY2:           series.YearSum(ca, 2),
		CaY3:           series.YearSum(ca, 3),
		ResY1:          series.YearSum(result, 1),
		ResY2:          series.YearSum(result, 2),
		ResY3:          resY3,
		ResAdj:         resAdj,
		PerAssoc:       resAdj / p.Assoc,
		BfrMin:         series.Min(cash),
		TresoFinal:     series.Last(cash),
		Breakdown:      bd,
		BreakEvenMonth: series.FirstSustainedNonNegative(result),
		PaybackMonth:   series.FirstSustainedNonNegative(cash),
	}, nil
}
