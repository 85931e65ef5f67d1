package model

// SimulationResult is the output of the Simulator Engine.
type SimulationResult struct {
	Ca       []float64 `json:"ca"`
	Result   []float64 `json:"result"`
	Cashflow []float64 `json:"cashflow"`

	CaY1       float64 `json:"caY1"`
	CaY2       float64 `json:"caY2"`
	CaY3       float64 `json:"caY3"`
	ResY1      float64 `json:"resY1"`
	ResY2      float64 `json:"resY2"`
	ResY3      float64 `json:"resY3"`
	ResAdj     float64 `json:"resAdj"`   // year-3 result net of extra charges and RC
	PerAssoc   float64 `json:"perAssoc"` // ResAdj per partner
	BfrMin     float64 `json:"bfrMin"`
	TresoFinal float64 `json:"tresoFinal"`

	Breakdown      RevenueBreakdown `json:"breakdown"`
	BreakEvenMonth *int             `json:"breakEvenMonth"` // nil if the monthly result never stays positive
	PaybackMonth   *int             `json:"paybackMonth"`   // nil if cash never stays positive
}

// RevenueBreakdown carries the per-source revenue and cost series behind a
// simulation.
type RevenueBreakdown struct {
	CaAssoc    []float64 `json:"caAssoc"`
	CaIndep    []float64 `json:"caIndep"`
	CaInterne  []float64 `json:"caInterne"`
	CaSage     []float64 `json:"caSage"`
	Costs      []float64 `json:"costs"`
	SalInterne []float64 `json:"salInterne"`
	Occupancy  []float64 `json:"occupancy"`
}

// CashflowScenarios are cumulative cash positions under alternate payment policies.
type CashflowScenarios struct {
	Fact   []float64 `json:"fact"`
	Cash3m []float64 `json:"cash3m"`
	Cash1m []float64 `json:"cash1m"`
}

// DerivedMetrics are the aggregates computed from a stored plan.
type DerivedMetrics struct {
	CaY1  float64 `json:"caY1"`
	CaY2  float64 `json:"caY2"`
	CaY3  float64 `json:"caY3"`
	ResY1 float64 `json:"resY1"`
	ResY2 float64 `json:"resY2"`
	ResY3 float64 `json:"resY3"`

	TresoFact   []float64 `json:"tresoFact"`
	TresoCash3m []float64 `json:"tresoCash3m"`
	TresoCash1m []float64 `json:"tresoCash1m"`

	BfrWorst  float64 `json:"bfrWorst"`
	BfrFact   float64 `json:"bfrFact"`
	BfrCash3m float64 `json:"bfrCash3m"`
	BfrCash1m float64 `json:"bfrCash1m"`

	CaTrend        []float64  `json:"caTrend"`        // 3-month trailing average of revenue
	BfrWorstByYear [3]float64 `json:"bfrWorstByYear"` // minimum of treso3m within each year

	// Ratios are 0 when their divisor is not positive.
	CaGrowth        float64    `json:"caGrowth"`        // (caY3 - caY1) / caY1
	Margin          [3]float64 `json:"margin"`          // result / revenue per year
	CumRes          float64    `json:"cumRes"`          // resY1 + resY2 + resY3
	CapexReturn     float64    `json:"capexReturn"`     // cumRes / capex
	CapexPerAssoc   float64    `json:"capexPerAssoc"`   // investment per partner
	ChargesPerAssoc float64    `json:"chargesPerAssoc"` // annual extra charges per partner
	CumAdjPerAssoc  float64    `json:"cumAdjPerAssoc"`  // 3-year partner result net of charges
	AssocReturn     float64    `json:"assocReturn"`     // cumAdjPerAssoc / capexPerAssoc
	CaPerFte        float64    `json:"caPerFte"`        // 3-year revenue per average FTE
	AdminRatio      float64    `json:"adminRatio"`      // admin FTE per doctor FTE
	Coverage        float64    `json:"coverage"`        // revenue / total costs
}

// StressResult compares the base simulation with pessimistic and optimistic variants.
type StressResult struct {
	Base        SimulationResult    `json:"base"`
	Pessimistic SimulationResult    `json:"pessimistic"`
	Optimistic  SimulationResult    `json:"optimistic"`
	PessParams  SimulatorParams     `json:"pessParams"`
	OptParams   SimulatorParams     `json:"optParams"`
	Sensitivity []SensitivityDriver `json:"sensitivity"`
	StressScore int                 `json:"stressScore"` // 0-50, higher is more fragile
	Risks       []Risk              `json:"risks"`
	MatrixScore int                 `json:"matrixScore"` // 0-50 from the risk matrix exposure
	Score       int                 `json:"score"`       // StressScore + MatrixScore
	Verdict     string              `json:"verdict"`
}

// SensitivityDriver is the year-3 result swing caused by degrading one input.
type SensitivityDriver struct {
	Param      string  `json:"param"`
	ResY3Delta float64 `json:"resY3Delta"`
	Share      float64 `json:"share"` // relative to the largest driver
}

// PaymentScenario is one receivables policy evaluated on a plan.
type PaymentScenario struct {
	Name      string    `json:"name"`
	CashPct   float64   `json:"cashPct"`
	Delay     int       `json:"delay"`
	Factoring bool      `json:"factoring"`
	Treso     []float64 `json:"treso"`
	Bfr       float64   `json:"bfr"`
}

// PaymentOptimization is the comparison of receivables policies for a plan.
type PaymentOptimization struct {
	Scenarios      []PaymentScenario `json:"scenarios"`
	Current        PaymentScenario   `json:"current"`
	MatchIndex     int               `json:"matchIndex"` // scenario equal to Current, -1 if none
	BfrSaved       float64           `json:"bfrSaved"`   // |worst| - |current|
	FactCostAnnual float64           `json:"factCostAnnual"`
	ROI            float64           `json:"roi"`
	Verdict        string            `json:"verdict"`
	Summary        string            `json:"summary"`
}

// ScenarioComparison describes how a variant differs from a base scenario.
type ScenarioComparison struct {
	Patch   []map[string]interface{} `json:"patch"`  // base to variant
	Revert  []map[string]interface{} `json:"revert"` // variant to base
	Deltas  map[string]float64       `json:"deltas"`
	Base    SimulationResult         `json:"base"`
	Variant SimulationResult         `json:"variant"`
}

const (
	VerdictGreen  = "Green"
	VerdictOrange = "Orange"
	VerdictRed    = "Red"
)
