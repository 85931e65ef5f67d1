package forecast

import (
	"fmt"
	"math"

	"bizplan-engine/internal/cashflow"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/money"
	"bizplan-engine/internal/series"
)

// PaymentPolicy is the receivables configuration being evaluated.
type PaymentPolicy struct {
	CashPct   float64 `json:"cashPct"`
	Delay     int     `json:"delay"`
	Factoring bool    `json:"factoring"`
}

// NormalizeDelay maps a collection delay onto the supported 0, 1 and 3 months.
// Anything else is read as 1 month.
func NormalizeDelay(delay int) int {
	switch delay {
	case 0, 1, 3:
		return delay
	default:
		return 1
	}
}

func paymentScenario(name string, plan *model.BusinessPlanData, pol PaymentPolicy, c Constants) (model.PaymentScenario, error) {
	treso, err := cashflow.Compute(plan.Ca, plan.Admin, plan.Opex, plan.Lab, cashflow.Policy{
		CashShare:   pol.CashPct / 100,
		DelayMonths: pol.Delay,
		Factoring:   pol.Factoring,
	}, c.FactoringCostRate)
	if err != nil {
		return model.PaymentScenario{}, err
	}
	return model.PaymentScenario{
		Name:      name,
		CashPct:   pol.CashPct,
		Delay:     pol.Delay,
		Factoring: pol.Factoring,
		Treso:     treso,
		Bfr:       series.Min(treso),
	}, nil
}

// OptimizePayment compares the current receivables policy of a plan with four
// fixed alternatives: no cash with a 3-month delay, cash with a 3-month delay,
// cash with a 1-month delay and cash with factoring.
func OptimizePayment(plan model.BusinessPlanData, pol PaymentPolicy, c Constants) (model.PaymentOptimization, error) {
	if err := CheckPlan(&plan); err != nil {
		return model.PaymentOptimization{}, err
	}
	pol.Delay = NormalizeDelay(pol.Delay)

	fixed := []struct {
		name string
		pol  PaymentPolicy
	}{
		{"worst", PaymentPolicy{CashPct: 0, Delay: 3}},
		{"cashOnly", PaymentPolicy{CashPct: pol.CashPct, Delay: 3}},
		{"cash1m", PaymentPolicy{CashPct: pol.CashPct, Delay: 1}},
		{"fact", PaymentPolicy{CashPct: pol.CashPct, Factoring: true}},
	}
	scenarios := make([]model.PaymentScenario, 0, len(fixed))
	for _, f := range fixed {
		sc, err := paymentScenario(f.name, &plan, f.pol, c)
		if err != nil {
			return model.PaymentOptimization{}, err
		}
		scenarios = append(scenarios, sc)
	}
	worst, fact := scenarios[0], scenarios[3]

	var current model.PaymentScenario
	if pol.Factoring {
		current = fact
		current.Name = "current"
	} else {
		var err error
		current, err = paymentScenario("current", &plan, pol, c)
		if err != nil {
			return model.PaymentOptimization{}, err
		}
	}

	saved := math.Abs(worst.Bfr) - math.Abs(current.Bfr)
	factCost := 0.0
	if pol.Factoring {
		factCost = series.YearSum(plan.Ca, 3) * (1 - pol.CashPct/100) * c.FactoringCostRate
	}
	roi := 0.0
	if factCost > 0 {
		roi = money.Round(saved/factCost, 1)
	}

	opt := model.PaymentOptimization{
		Scenarios:      scenarios,
		Current:        current,
		MatchIndex:     matchIndex(pol),
		BfrSaved:       saved,
		FactCostAnnual: factCost,
		ROI:            roi,
		Verdict:        Verdict(pol),
	}
	opt.Summary = summarize(pol, &opt, fact)
	return opt, nil
}

func matchIndex(pol PaymentPolicy) int {
	switch {
	case pol.Factoring:
		return 3
	case pol.Delay == 3 && pol.CashPct > 0:
		return 1
	case pol.Delay == 3:
		return 0
	case pol.Delay == 1:
		return 2
	default:
		return -1
	}
}

// Verdict grades a receivables policy: factoring is Green, a cash share of at
// least 10 % is Orange, a 3-month delay without either is Red.
func Verdict(pol PaymentPolicy) string {
	switch {
	case pol.Factoring:
		return model.VerdictGreen
	case pol.CashPct >= 10:
		return model.VerdictOrange
	case pol.Delay >= 3:
		return model.VerdictRed
	default:
		return model.VerdictOrange
	}
}

func summarize(pol PaymentPolicy, opt *model.PaymentOptimization, fact model.PaymentScenario) string {
	cur := opt.Current.Bfr
	var verdict string
	switch {
	case pol.Factoring && pol.CashPct >= 10:
		verdict = fmt.Sprintf("Optimal setup: factoring with %g%% cash. Buffer reduced by %s.",
			pol.CashPct, money.Format(math.Abs(opt.BfrSaved)))
	case pol.Factoring:
		verdict = "Factoring active: insurer receivables are collected immediately."
	case pol.CashPct >= 10:
		verdict = fmt.Sprintf("%g%% cash payments is good practice; factoring would lower the buffer by a further %s.",
			pol.CashPct, money.Format(math.Abs(cur)-math.Abs(fact.Bfr)))
	default:
		risk := "Moderate"
		if pol.Delay >= 3 {
			risk = "High"
		}
		verdict = fmt.Sprintf("%s risk: %d-month insurer delay without factoring. Current buffer %s.",
			risk, pol.Delay, money.Format(cur))
	}

	var reco string
	if pol.Factoring {
		reco = fmt.Sprintf("Estimated factoring cost ~%s/year. Buffer saved %s",
			money.Format(opt.FactCostAnnual), money.Format(math.Abs(opt.BfrSaved)))
		if opt.ROI > 0 {
			reco += fmt.Sprintf(", ROI %gx", opt.ROI)
		}
		reco += "."
	} else {
		reco = fmt.Sprintf("Current buffer %s, with factoring %s. Potential saving %s.",
			money.Format(cur), money.Format(fact.Bfr), money.Format(math.Max(0, math.Abs(cur)-math.Abs(fact.Bfr))))
	}
	return verdict + " " + reco
}
