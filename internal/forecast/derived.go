package forecast

import (
	"fmt"

	"bizplan-engine/internal/cashflow"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

// trendWindow is the moving-average window of the revenue trend.
const trendWindow = 3

// CheckPlan verifies that every monthly series of plan holds 36 values.
func CheckPlan(plan *model.BusinessPlanData) error {
	for _, ns := range plan.NamedSeries() {
		if err := series.Check(ns.Name, ns.Values); err != nil {
			return fmt.Errorf("business plan: %w", err)
		}
	}
	return nil
}

// BuildPlan stores a simulation as a business plan: running costs go to admin
// and salaried compensation to opex, the cash series follow the cash share of p.
// Admin staff and capex are not modelled and stay at zero.
func BuildPlan(p model.SimulatorParams, res model.SimulationResult, c Constants) (model.BusinessPlanData, error) {
	cashShare := p.CashPct / 100
	zero := series.Zeros()
	bd := res.Breakdown

	immediate, err := cashflow.Compute(res.Ca, bd.Costs, bd.SalInterne, zero, cashflow.Policy{CashShare: cashShare}, c.FactoringCostRate)
	if err != nil {
		return model.BusinessPlanData{}, err
	}
	sc, err := ComputeScenarios(res.Ca, bd.Costs, bd.SalInterne, zero, cashShare, c)
	if err != nil {
		return model.BusinessPlanData{}, err
	}

	open := func(v float64) series.Series {
		s := series.Zeros()
		for m, occ := range bd.Occupancy {
			if occ > 0 {
				s[m] = v
			}
		}
		return s
	}
	fteTotal := open(p.TeamSize())

	return model.BusinessPlanData{
		MonthlyArrays: model.MonthlyArrays{
			Ca:         res.Ca,
			CaAssoc:    bd.CaAssoc,
			CaIndep:    bd.CaIndep,
			CaInterne:  bd.CaInterne,
			CaSage:     bd.CaSage,
			Result:     res.Result,
			Cashflow:   immediate,
			Treso1m:    sc.Cash1m,
			Treso3m:    sc.Cash3m,
			Admin:      bd.Costs,
			Opex:       bd.SalInterne,
			Lab:        zero,
			FteAssoc:   open(p.Assoc),
			FteIndep:   open(p.Indep),
			FteInterne: open(p.Interne),
			FteAdmin:   series.Zeros(),
			FteTotal:   fteTotal,
		},
		BusinessPlanConstants: model.BusinessPlanConstants{
			ConsultDay: p.Consult,
			Fee:        p.Fee,
			DaysYear:   p.Days,
			RevSpec:    MonthlyRevenuePerSpecialist(p.Consult, p.Fee, p.Days) * 12,
			Assoc:      p.Assoc,
			Extra:      p.Extra,
		},
	}, nil
}

// ComputeScenarios returns the cash positions of a plan under factoring, a
// 3-month and a 1-month insurer delay.
func ComputeScenarios(ca, admin, opex, lab series.Series, cashShare float64, c Constants) (model.CashflowScenarios, error) {
	fact, err := cashflow.Compute(ca, admin, opex, lab, cashflow.Policy{CashShare: cashShare, Factoring: true}, c.FactoringCostRate)
	if err != nil {
		return model.CashflowScenarios{}, err
	}
	cash3m, err := cashflow.Compute(ca, admin, opex, lab, cashflow.Policy{CashShare: cashShare, DelayMonths: 3}, c.FactoringCostRate)
	if err != nil {
		return model.CashflowScenarios{}, err
	}
	cash1m, err := cashflow.Compute(ca, admin, opex, lab, cashflow.Policy{CashShare: cashShare, DelayMonths: 1}, c.FactoringCostRate)
	if err != nil {
		return model.CashflowScenarios{}, err
	}
	return model.CashflowScenarios{Fact: fact, Cash3m: cash3m, Cash1m: cash1m}, nil
}

// ComputeDerived computes the annual aggregates, alternate cash trajectories and
// dashboard ratios of a stored plan. The plan's own treso3m series is the
// canonical worst case.
func ComputeDerived(plan model.BusinessPlanData, c Constants) (model.DerivedMetrics, error) {
	if err := CheckPlan(&plan); err != nil {
		return model.DerivedMetrics{}, err
	}

	sc, err := ComputeScenarios(plan.Ca, plan.Admin, plan.Opex, plan.Lab, c.BaselineCashShare, c)
	if err != nil {
		return model.DerivedMetrics{}, err
	}

	var worstByYear [3]float64
	for y := range worstByYear {
		worstByYear[y] = series.Min(plan.Treso3m[y*12 : (y+1)*12])
	}

	d := model.DerivedMetrics{
		CaY1:           series.YearSum(plan.Ca, 1),
		CaY2:           series.YearSum(plan.Ca, 2),
		CaY3:           series.YearSum(plan.Ca, 3),
		ResY1:          series.YearSum(plan.Result, 1),
		ResY2:          series.YearSum(plan.Result, 2),
		ResY3:          series.YearSum(plan.Result, 3),
		TresoFact:      sc.Fact,
		TresoCash3m:    sc.Cash3m,
		TresoCash1m:    sc.Cash1m,
		BfrWorst:       series.Min(plan.Treso3m),
		BfrFact:        series.Min(sc.Fact),
		BfrCash3m:      series.Min(sc.Cash3m),
		BfrCash1m:      series.Min(sc.Cash1m),
		CaTrend:        series.MovingAverage(plan.Ca, trendWindow),
		BfrWorstByYear: worstByYear,
	}
	fillRatios(&d, &plan)
	return d, nil
}
