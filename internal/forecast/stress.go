package forecast

import (
	"math"
	"sort"

	"bizplan-engine/internal/model"
)

const (
	pessimisticFactor = 0.75
	optimisticFactor  = 1.25
	startSlip         = 2
	maxStressScore    = 50
	maxMatrixScore    = 50

	// the matrix score is scaled on the seven reference risks at 5x5
	referenceExposure = 7 * 25

	redScore    = 60
	orangeScore = 35
)

// DefaultRisks returns the reference risk matrix of a new practice.
func DefaultRisks() []model.Risk {
	return []model.Risk{
		{ID: "r1", Label: "Low year-1 occupancy", Prob: 3, Impact: 5},
		{ID: "r2", Label: "Late insurer payments", Prob: 3, Impact: 4},
		{ID: "r3", Label: "Doctor turnover", Prob: 3, Impact: 4},
		{ID: "r4", Label: "Increased competition", Prob: 3, Impact: 3},
		{ID: "r5", Label: "Capex overrun", Prob: 3, Impact: 2},
		{ID: "r6", Label: "Pandemic or closure", Prob: 1, Impact: 5},
		{ID: "r7", Label: "Rising fixed costs", Prob: 3, Impact: 3},
	}
}

// roundHalfUp rounds to the nearest integer with halves towards +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// editorBound returns the editor range of a simulator parameter.
func editorBound(param string) model.Bound {
	b, ok := model.BoundFor(param)
	if !ok {
		panic("forecast: no editor range for " + param)
	}
	return b
}

func degradeConsult(p model.SimulatorParams) model.SimulatorParams {
	p.Consult = math.Max(editorBound("consult").Min, roundHalfUp(p.Consult*pessimisticFactor))
	return p
}

func degradeFee(p model.SimulatorParams) model.SimulatorParams {
	p.Fee = math.Max(editorBound("fee").Min, roundHalfUp(p.Fee*pessimisticFactor))
	return p
}

func degradeOccup(p model.SimulatorParams) model.SimulatorParams {
	p.Occup = math.Max(editorBound("occup").Min, roundHalfUp(p.Occup*pessimisticFactor))
	return p
}

func delayStart(p model.SimulatorParams) model.SimulatorParams {
	p.Start = min(int(editorBound("start").Max), p.Start+startSlip)
	return p
}

// Pessimistic degrades activity drivers by a quarter and delays the opening by
// two months, clamped to the input bounds.
func Pessimistic(p model.SimulatorParams) model.SimulatorParams {
	return delayStart(degradeOccup(degradeFee(degradeConsult(p))))
}

// Optimistic improves activity drivers by a quarter and opens one month earlier,
// clamped to the input bounds.
func Optimistic(p model.SimulatorParams) model.SimulatorParams {
	p.Consult = math.Min(editorBound("consult").Max, roundHalfUp(p.Consult*optimisticFactor))
	p.Fee = math.Min(editorBound("fee").Max, roundHalfUp(p.Fee*optimisticFactor))
	p.Occup = math.Min(editorBound("occup").Max, roundHalfUp(p.Occup*optimisticFactor))
	p.Start = max(int(editorBound("start").Min), p.Start-1)
	return p
}

var sensitivityDrivers = []struct {
	param   string
	degrade func(model.SimulatorParams) model.SimulatorParams
}{
	{"consult", degradeConsult},
	{"fee", degradeFee},
	{"occup", degradeOccup},
	{"start", delayStart},
}

// Stress runs the base, pessimistic and optimistic simulations of p, measures
// how much each activity driver alone moves the year-3 result and combines the
// stress score with the exposure of risks. A nil risks uses DefaultRisks.
func Stress(p model.SimulatorParams, risks []model.Risk, c Constants) (model.StressResult, error) {
	if risks == nil {
		risks = DefaultRisks()
	}

	base, err := Simulate(p, c)
	if err != nil {
		return model.StressResult{}, err
	}
	pessParams := Pessimistic(p)
	pess, err := Simulate(pessParams, c)
	if err != nil {
		return model.StressResult{}, err
	}
	optParams := Optimistic(p)
	opt, err := Simulate(optParams, c)
	if err != nil {
		return model.StressResult{}, err
	}

	sens := make([]model.SensitivityDriver, 0, len(sensitivityDrivers))
	maxSens := 1.0
	for _, d := range sensitivityDrivers {
		r, err := Simulate(d.degrade(p), c)
		if err != nil {
			return model.StressResult{}, err
		}
		delta := math.Abs(base.ResY3 - r.ResY3)
		maxSens = math.Max(maxSens, delta)
		sens = append(sens, model.SensitivityDriver{Param: d.param, ResY3Delta: delta})
	}
	for i := range sens {
		sens[i].Share = sens[i].ResY3Delta / maxSens
	}
	sort.SliceStable(sens, func(i, j int) bool {
		return sens[i].ResY3Delta > sens[j].ResY3Delta
	})

	stress := StressScore(base, pess)
	matrix := MatrixScore(risks)

	return model.StressResult{
		Base:        base,
		Pessimistic: pess,
		Optimistic:  opt,
		PessParams:  pessParams,
		OptParams:   optParams,
		Sensitivity: sens,
		StressScore: stress,
		Risks:       risks,
		MatrixScore: matrix,
		Score:       stress + matrix,
		Verdict:     RiskVerdict(stress + matrix),
	}, nil
}

// StressScore rates on 0-50 how much of the base year-3 revenue and result the
// pessimistic scenario wipes out.
func StressScore(base, pess model.SimulationResult) int {
	caBase := base.CaY3
	if caBase <= 0 {
		caBase = 1
	}
	dCa := math.Abs(base.CaY3-pess.CaY3) / caBase
	dRes := 1.0
	if base.ResY3 != 0 {
		dRes = math.Abs(base.ResY3-pess.ResY3) / math.Abs(base.ResY3)
	}
	return int(math.Min(maxStressScore, roundHalfUp((dCa+dRes)/2*maxStressScore)))
}

// MatrixScore rates on 0-50 the total probability x impact exposure of risks.
func MatrixScore(risks []model.Risk) int {
	exposure := 0
	for _, r := range risks {
		exposure += r.Exposure()
	}
	return int(math.Min(maxMatrixScore, roundHalfUp(float64(exposure)/referenceExposure*maxMatrixScore)))
}

// RiskVerdict grades a composite risk score out of 100.
func RiskVerdict(score int) string {
	switch {
	case score >= redScore:
		return model.VerdictRed
	case score >= orangeScore:
		return model.VerdictOrange
	}
	return model.VerdictGreen
}
