package operations

import (
	"context"

	"github.com/rs/zerolog"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

// stressProps are simulator parameters plus an optional risk matrix.
type stressProps struct {
	model.SimulatorParams
	Risks []model.Risk `json:"risks"`
}

func decodeStressProps(calc *model.Calculation) (stressProps, error) {
	props := stressProps{SimulatorParams: model.DefaultSimulatorParams()}
	err := decodeProps(calc.CalculationProperties, &props)
	return props, err
}

// StressTestHandler runs the pessimistic and optimistic scenarios and scores the
// risk profile of the practice.
type StressTestHandler struct{}

func (h *StressTestHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	props, err := decodeStressProps(calc)
	if err != nil {
		return invalidProps(calc, err)
	}
	msgs := checkParams("params", props.SimulatorParams)
	return append(msgs, checkRisks(props.Risks)...)
}

func (h *StressTestHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	props, err := decodeStressProps(calc)
	if err != nil {
		return nil, invalidProps(calc, err)
	}

	st, err := forecast.Stress(props.SimulatorParams, props.Risks, c)
	if err != nil {
		return nil, errorMessages(err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("stress_score", st.StressScore).
		Int("matrix_score", st.MatrixScore).
		Str("verdict", st.Verdict).
		Msg("stress test complete")
	return st, nil
}
