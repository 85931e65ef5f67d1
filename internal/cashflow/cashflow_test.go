package cashflow

import (
	"errors"
	"math"
	"testing"

	"bizplan-engine/internal/series"
)

const factCost = 0.015

func flat(v float64) series.Series {
	s := series.Zeros()
	for i := range s {
		s[i] = v
	}
	return s
}

func TestComputeDelayZeroReceivesSameMonth(t *testing.T) {
	rev := flat(1000)
	zero := series.Zeros()

	got, err := Compute(rev, zero, zero, zero, Policy{CashShare: 0.1, DelayMonths: 0}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for m, v := range got {
		want := 1000 * float64(m+1)
		if math.Abs(v-want) > 1e-6 {
			t.Fatalf("month %d: expected %v, got %v", m, want, v)
		}
	}
}

func TestComputeDelayShiftsReceivables(t *testing.T) {
	rev := flat(1000)
	zero := series.Zeros()

	got, err := Compute(rev, zero, zero, zero, Policy{CashShare: 0.1, DelayMonths: 3}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// months 0-2 only see the cash share
	for m := 0; m < 3; m++ {
		want := 100 * float64(m+1)
		if math.Abs(got[m]-want) > 1e-6 {
			t.Fatalf("month %d: expected %v, got %v", m, want, got[m])
		}
	}
	// month 3 receives the receivable billed in month 0
	if math.Abs(got[3]-(300+1000)) > 1e-6 {
		t.Fatalf("month 3: expected 1300, got %v", got[3])
	}
	// final position misses exactly three months of receivables
	want := 36*1000.0 - 3*900.0
	if math.Abs(got[35]-want) > 1e-6 {
		t.Fatalf("month 35: expected %v, got %v", want, got[35])
	}
}

func TestComputeReceivableComesFromBillingMonth(t *testing.T) {
	rev := series.Zeros()
	rev[5] = 1000
	zero := series.Zeros()

	got, err := Compute(rev, zero, zero, zero, Policy{CashShare: 0, DelayMonths: 1}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[5] != 0 {
		t.Fatalf("expected nothing collected in billing month, got %v", got[5])
	}
	if got[6] != 1000 {
		t.Fatalf("expected receivable collected one month later, got %v", got[6])
	}
}

func TestComputeFactoringAppliesDiscount(t *testing.T) {
	rev := flat(1000)
	zero := series.Zeros()

	got, err := Compute(rev, zero, zero, zero, Policy{CashShare: 0.2, DelayMonths: 3, Factoring: true}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perMonth := 200 + 800*(1-factCost)
	if math.Abs(got[0]-perMonth) > 1e-6 {
		t.Fatalf("expected factoring to ignore the delay; got %v want %v", got[0], perMonth)
	}
	if math.Abs(got[35]-36*perMonth) > 1e-6 {
		t.Fatalf("expected %v, got %v", 36*perMonth, got[35])
	}
}

func TestComputeAddsSignedCosts(t *testing.T) {
	rev := flat(1000)
	admin := flat(-300)
	opex := flat(-200)
	lab := flat(-100)

	got, err := Compute(rev, admin, opex, lab, Policy{CashShare: 1}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 400 || got[35] != 400*36 {
		t.Fatalf("expected 400 per month, got first=%v last=%v", got[0], got[35])
	}
}

func TestComputeExtremeDelays(t *testing.T) {
	rev := flat(1000)
	zero := series.Zeros()

	long, err := Compute(rev, zero, zero, zero, Policy{DelayMonths: 48}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if long[35] != 0 {
		t.Fatalf("expected no collection when the delay exceeds the horizon, got %v", long[35])
	}

	negative, err := Compute(rev, zero, zero, zero, Policy{DelayMonths: -2}, factCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same, _ := Compute(rev, zero, zero, zero, Policy{DelayMonths: 0}, factCost)
	for m := range same {
		if negative[m] != same[m] {
			t.Fatalf("month %d: negative delay should behave as 0", m)
		}
	}
}

func TestComputeRejectsWrongLength(t *testing.T) {
	zero := series.Zeros()
	_, err := Compute(make(series.Series, 12), zero, zero, zero, Policy{}, factCost)

	var shapeErr *series.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if shapeErr.Series != "revenue" {
		t.Fatalf("expected revenue to be reported, got %s", shapeErr.Series)
	}

	_, err = Compute(zero, zero, zero, nil, Policy{}, factCost)
	if !errors.As(err, &shapeErr) || shapeErr.Series != "lab" {
		t.Fatalf("expected lab ShapeError, got %v", err)
	}
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	rev := flat(1000)
	admin := flat(-10)
	zero := series.Zeros()

	if _, err := Compute(rev, admin, zero, zero, Policy{CashShare: 0.1, DelayMonths: 1}, factCost); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for m := range rev {
		if rev[m] != 1000 || admin[m] != -10 {
			t.Fatalf("input mutated at month %d", m)
		}
	}
}
