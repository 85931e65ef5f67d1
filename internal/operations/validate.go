package operations

import (
	"math"

	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

const fteTolerance = 1e-9

var headcounts = []string{"assoc", "indep", "interne"}

// planConstantBounds are the ranges accepted when a plan is stored.
var planConstantBounds = []model.Bound{
	{Param: "consultDay", Min: 1, Max: 50},
	{Param: "fee", Min: 50, Max: 1000},
	{Param: "daysYear", Min: 100, Max: 365},
	{Param: "revSpec", Min: 0, Max: 10000000},
	{Param: "capex", Min: 0, Max: 5000000},
	{Param: "assoc", Min: 1, Max: 4},
	{Param: "extra", Min: 0, Max: 400000},
}

// checkParams validates simulator inputs. Values outside the editor ranges only
// warn since stress scenarios run beyond them; a practice without partners is
// critical.
func checkParams(label string, p model.SimulatorParams) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if p.Assoc == 0 {
		msgs = append(msgs, critical(model.CodeDivisionByZero, "%s: at least one partner is required", label))
		return msgs
	}

	for _, b := range model.ParamBounds {
		v, ok := p.Value(b.Param)
		if !ok {
			continue
		}
		if v < b.Min || v > b.Max {
			msgs = append(msgs, warning(model.CodeOutOfRange, "%s: %s = %g is outside [%g, %g]", label, b.Param, v, b.Min, b.Max))
		}
	}

	for _, name := range headcounts {
		v, _ := p.Value(name)
		if v != math.Trunc(v) {
			msgs = append(msgs, warning(model.CodeNotInteger, "%s: %s = %g is not a whole headcount", label, name, v))
		}
	}

	msgs = append(msgs, checkDelay(label, p.Delay)...)
	return msgs
}

func checkDelay(label string, delay int) []model.CalculationMessage {
	switch delay {
	case 0, 1, 3:
		return nil
	}
	return []model.CalculationMessage{
		warning(model.CodeInvalidDelay, "%s: payment delay %d is not one of 0, 1 or 3 months", label, delay),
	}
}

// checkRisks warns about ratings outside 1-5.
func checkRisks(risks []model.Risk) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	for i, r := range risks {
		if r.Prob < 1 || r.Prob > 5 || r.Impact < 1 || r.Impact > 5 {
			msgs = append(msgs, warning(model.CodeOutOfRange, "risks[%d] %s: probability %d and impact %d must be within 1-5", i, r.ID, r.Prob, r.Impact))
		}
	}
	return msgs
}

// checkPlan validates a stored plan: every series must span 36 months.
func checkPlan(plan *model.BusinessPlanData) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	for _, ns := range plan.NamedSeries() {
		if err := series.Check(ns.Name, ns.Values); err != nil {
			msgs = append(msgs, errorMessages(err)...)
		}
	}
	if len(msgs) > 0 {
		return msgs
	}

	values := map[string]float64{
		"consultDay": plan.ConsultDay,
		"fee":        plan.Fee,
		"daysYear":   plan.DaysYear,
		"revSpec":    plan.RevSpec,
		"capex":      plan.Capex,
		"assoc":      plan.Assoc,
		"extra":      plan.Extra,
	}
	for _, b := range planConstantBounds {
		v := values[b.Param]
		if v == 0 && b.Min > 0 {
			// unset plan constants are optional
			continue
		}
		if v < b.Min || v > b.Max {
			msgs = append(msgs, warning(model.CodeOutOfRange, "plan: %s = %g is outside [%g, %g]", b.Param, v, b.Min, b.Max))
		}
		if v != math.Trunc(v) {
			msgs = append(msgs, warning(model.CodeNotInteger, "plan: %s = %g is not an integer", b.Param, v))
		}
	}

	for m := 0; m < series.Months; m++ {
		sum := plan.FteAssoc[m] + plan.FteIndep[m] + plan.FteInterne[m] + plan.FteAdmin[m]
		if math.Abs(sum-plan.FteTotal[m]) > fteTolerance {
			msgs = append(msgs, warning(model.CodeFteMismatch, "plan: fteTotal %g differs from staff sum %g in month %d", plan.FteTotal[m], sum, m+1))
			break
		}
	}
	return msgs
}
