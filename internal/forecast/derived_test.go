package forecast

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

func defaultPlan(t *testing.T) model.BusinessPlanData {
	t.Helper()
	p := model.DefaultSimulatorParams()
	res := simulate(t, p)
	plan, err := BuildPlan(p, res, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return plan
}

func TestBuildPlanSeriesComplete(t *testing.T) {
	plan := defaultPlan(t)
	if err := CheckPlan(&plan); err != nil {
		t.Fatalf("expected a complete plan, got %v", err)
	}
	if plan.FteTotal[35] != 5 {
		t.Fatalf("expected 5 doctors in year 3, got %v", plan.FteTotal[35])
	}
	if plan.FteTotal[0] != 0 {
		t.Fatalf("expected no staff before opening, got %v", plan.FteTotal[0])
	}
	if plan.RevSpec != 792000 {
		t.Fatalf("expected annual revenue per specialist 792000, got %v", plan.RevSpec)
	}
}

func TestComputeDerivedAnnualSums(t *testing.T) {
	plan := defaultPlan(t)
	res := simulate(t, model.DefaultSimulatorParams())

	d, err := ComputeDerived(plan, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.CaY1 != res.CaY1 || d.CaY2 != res.CaY2 || d.CaY3 != res.CaY3 {
		t.Fatalf("expected revenue sums %v/%v/%v, got %v/%v/%v",
			res.CaY1, res.CaY2, res.CaY3, d.CaY1, d.CaY2, d.CaY3)
	}
	if d.ResY3 != res.ResY3 {
		t.Fatalf("expected resY3 %v, got %v", res.ResY3, d.ResY3)
	}
}

func TestComputeDerivedScenarios(t *testing.T) {
	plan := defaultPlan(t)

	d, err := ComputeDerived(plan, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the default plan collects 10 % in cash, same as the baseline share
	if !reflect.DeepEqual(d.TresoCash3m, plan.Treso3m) {
		t.Fatal("expected recomputed 3-month trajectory to match the stored one")
	}
	if d.BfrWorst != series.Min(plan.Treso3m) {
		t.Fatalf("expected bfrWorst %v, got %v", series.Min(plan.Treso3m), d.BfrWorst)
	}
	if d.BfrCash1m < d.BfrCash3m {
		t.Fatalf("expected 1-month trough %v >= 3-month trough %v", d.BfrCash1m, d.BfrCash3m)
	}
	if d.BfrFact != series.Min(d.TresoFact) {
		t.Fatalf("expected bfrFact to be the minimum of tresoFact")
	}
}

func TestComputeDerivedWorstByYear(t *testing.T) {
	plan := defaultPlan(t)

	d, err := ComputeDerived(plan, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lowest := math.Min(d.BfrWorstByYear[0], math.Min(d.BfrWorstByYear[1], d.BfrWorstByYear[2]))
	if lowest != d.BfrWorst {
		t.Fatalf("expected yearly minima to contain %v, got %v", d.BfrWorst, d.BfrWorstByYear)
	}
}

func TestComputeDerivedTrend(t *testing.T) {
	plan := defaultPlan(t)

	d, err := ComputeDerived(plan, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (plan.Ca[10] + plan.Ca[11] + plan.Ca[12]) / 3
	if math.Abs(d.CaTrend[12]-want) > 1e-6*want {
		t.Fatalf("expected trend %v, got %v", want, d.CaTrend[12])
	}
}

func TestComputeDerivedRejectsShortSeries(t *testing.T) {
	plan := defaultPlan(t)
	plan.Lab = plan.Lab[:35]

	_, err := ComputeDerived(plan, DefaultConstants())
	var se *series.ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if se.Series != "lab" || se.Got != 35 {
		t.Fatalf("expected lab with 35 values, got %s with %d", se.Series, se.Got)
	}
}

func TestComputeDerivedDoesNotMutatePlan(t *testing.T) {
	plan := defaultPlan(t)
	ca := append([]float64(nil), plan.Ca...)
	treso := append([]float64(nil), plan.Treso3m...)

	if _, err := ComputeDerived(plan, DefaultConstants()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ca, plan.Ca) || !reflect.DeepEqual(treso, plan.Treso3m) {
		t.Fatal("expected plan series to be left untouched")
	}
}

func derived(t *testing.T, plan model.BusinessPlanData) model.DerivedMetrics {
	t.Helper()
	d, err := ComputeDerived(plan, DefaultConstants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestComputeDerivedProfitRatios(t *testing.T) {
	plan := defaultPlan(t)
	plan.Capex = 600000

	d := derived(t, plan)
	if d.CaGrowth != (d.CaY3-d.CaY1)/d.CaY1 {
		t.Fatalf("expected growth %v, got %v", (d.CaY3-d.CaY1)/d.CaY1, d.CaGrowth)
	}
	if d.Margin[2] != d.ResY3/d.CaY3 {
		t.Fatalf("expected year-3 margin %v, got %v", d.ResY3/d.CaY3, d.Margin[2])
	}
	if d.CumRes != d.ResY1+d.ResY2+d.ResY3 {
		t.Fatalf("expected cumulative result %v, got %v", d.ResY1+d.ResY2+d.ResY3, d.CumRes)
	}
	if d.CapexReturn != d.CumRes/600000 {
		t.Fatalf("expected capex return %v, got %v", d.CumRes/600000, d.CapexReturn)
	}
}

func TestComputeDerivedPartnerRatios(t *testing.T) {
	plan := defaultPlan(t)
	plan.Capex = 600000

	d := derived(t, plan)
	if d.CapexPerAssoc != 300000 || d.ChargesPerAssoc != 25000 {
		t.Fatalf("expected 300000/25000 per partner, got %v/%v", d.CapexPerAssoc, d.ChargesPerAssoc)
	}
	want := math.Max(0, d.ResY1/2-25000) + (d.ResY2/2 - 25000) + (d.ResY3/2 - 25000)
	if d.CumAdjPerAssoc != want {
		t.Fatalf("expected partner return %v, got %v", want, d.CumAdjPerAssoc)
	}
	if d.AssocReturn != want/300000 {
		t.Fatalf("expected return multiple %v, got %v", want/300000, d.AssocReturn)
	}
}

func TestComputeDerivedFirstYearLossNotCharged(t *testing.T) {
	plan := defaultPlan(t)
	plan.Extra = 4000000

	d := derived(t, plan)
	// year 1 is floored at 0, later years carry the charges
	want := (d.ResY2/2 - 2000000) + (d.ResY3/2 - 2000000)
	if d.CumAdjPerAssoc != want {
		t.Fatalf("expected %v, got %v", want, d.CumAdjPerAssoc)
	}
}

func TestComputeDerivedZeroDivisors(t *testing.T) {
	plan := defaultPlan(t)
	plan.Capex = 0
	plan.Assoc = 0
	plan.FteTotal = series.Zeros()
	plan.Admin = series.Zeros()
	plan.Opex = series.Zeros()

	d := derived(t, plan)
	if d.CapexReturn != 0 || d.CapexPerAssoc != 0 || d.AssocReturn != 0 {
		t.Fatalf("expected capex ratios 0 without capex, got %v/%v/%v", d.CapexReturn, d.CapexPerAssoc, d.AssocReturn)
	}
	if d.ChargesPerAssoc != 0 || d.CumAdjPerAssoc != 0 {
		t.Fatalf("expected partner ratios 0 without partners, got %v/%v", d.ChargesPerAssoc, d.CumAdjPerAssoc)
	}
	if d.CaPerFte != 0 {
		t.Fatalf("expected revenue per FTE 0 without staff, got %v", d.CaPerFte)
	}
	if d.Coverage != 0 {
		t.Fatalf("expected coverage 0 without costs, got %v", d.Coverage)
	}

	plan.Ca = series.Zeros()
	d = derived(t, plan)
	if d.CaGrowth != 0 || d.Margin != [3]float64{} {
		t.Fatalf("expected growth and margins 0 without revenue, got %v/%v", d.CaGrowth, d.Margin)
	}
}

func TestComputeDerivedStaffRatios(t *testing.T) {
	plan := defaultPlan(t)

	d := derived(t, plan)
	if d.AdminRatio != 0 {
		t.Fatalf("expected admin ratio 0 without admin staff, got %v", d.AdminRatio)
	}

	var ca, fte float64
	for m := range plan.Ca {
		ca += plan.Ca[m]
		fte += plan.FteTotal[m]
	}
	want := ca / (fte / 36)
	if math.Abs(d.CaPerFte-want) > 1e-9*want {
		t.Fatalf("expected revenue per FTE %v, got %v", want, d.CaPerFte)
	}

	plan.FteAdmin = series.Zeros()
	for m := range plan.FteAdmin {
		plan.FteAdmin[m] = plan.FteTotal[m] / 5
	}
	d = derived(t, plan)
	if math.Abs(d.AdminRatio-0.2) > 1e-12 {
		t.Fatalf("expected one admin per five doctors, got %v", d.AdminRatio)
	}
}

func TestComputeDerivedCoverage(t *testing.T) {
	plan := defaultPlan(t)

	d := derived(t, plan)
	var ca, costs float64
	for m := range plan.Ca {
		ca += plan.Ca[m]
		costs += math.Abs(plan.Admin[m]) + math.Abs(plan.Opex[m]) + math.Abs(plan.Lab[m])
	}
	if math.Abs(d.Coverage-ca/costs) > 1e-12 {
		t.Fatalf("expected coverage %v, got %v", ca/costs, d.Coverage)
	}
	if d.Coverage <= 1 {
		t.Fatalf("expected the reference plan to cover its costs, got %v", d.Coverage)
	}
}
