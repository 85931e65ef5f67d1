package forecast

import (
	"math"

	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

// ratio divides a by b, or returns 0 when b is not positive.
func ratio(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}

func mean(s series.Series) float64 {
	return series.Sum(s, 0, series.Months) / series.Months
}

func absSum(s series.Series) float64 {
	var total float64
	for _, v := range s {
		total += math.Abs(v)
	}
	return total
}

// fillRatios sets the profitability, staffing and coverage ratios of d. The
// annual sums of d must already be set.
func fillRatios(d *model.DerivedMetrics, plan *model.BusinessPlanData) {
	d.CaGrowth = ratio(d.CaY3-d.CaY1, d.CaY1)
	d.Margin = [3]float64{
		ratio(d.ResY1, d.CaY1),
		ratio(d.ResY2, d.CaY2),
		ratio(d.ResY3, d.CaY3),
	}
	d.CumRes = d.ResY1 + d.ResY2 + d.ResY3
	d.CapexReturn = ratio(d.CumRes, plan.Capex)

	d.CapexPerAssoc = ratio(plan.Capex, plan.Assoc)
	d.ChargesPerAssoc = ratio(plan.Extra, plan.Assoc)
	if plan.Assoc > 0 {
		// a first-year loss is not carried by the partners
		y1 := math.Max(0, d.ResY1/plan.Assoc-d.ChargesPerAssoc)
		y2 := d.ResY2/plan.Assoc - d.ChargesPerAssoc
		y3 := d.ResY3/plan.Assoc - d.ChargesPerAssoc
		d.CumAdjPerAssoc = y1 + y2 + y3
	}
	d.AssocReturn = ratio(d.CumAdjPerAssoc, d.CapexPerAssoc)

	doctors := series.Zeros()
	for m := range doctors {
		doctors[m] = plan.FteAssoc[m] + plan.FteIndep[m] + plan.FteInterne[m]
	}
	d.CaPerFte = ratio(series.Sum(plan.Ca, 0, series.Months), mean(plan.FteTotal))
	d.AdminRatio = ratio(mean(plan.FteAdmin), mean(doctors))

	costs := absSum(plan.Admin) + absSum(plan.Opex) + absSum(plan.Lab)
	d.Coverage = ratio(series.Sum(plan.Ca, 0, series.Months), costs)
}
