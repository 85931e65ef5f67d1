package operations

import (
	"context"

	"github.com/rs/zerolog"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

// RunSimulationHandler generates a 36-month plan from simulator parameters.
type RunSimulationHandler struct{}

// simulatorProps decodes calculation properties over the reference scenario so
// omitted fields keep their default.
func simulatorProps(calc *model.Calculation) (model.SimulatorParams, error) {
	p := model.DefaultSimulatorParams()
	err := decodeProps(calc.CalculationProperties, &p)
	return p, err
}

func (h *RunSimulationHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	p, err := simulatorProps(calc)
	if err != nil {
		return invalidProps(calc, err)
	}
	return checkParams("params", p)
}

func (h *RunSimulationHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	p, err := simulatorProps(calc)
	if err != nil {
		return nil, invalidProps(calc, err)
	}

	res, err := forecast.Simulate(p, c)
	if err != nil {
		return nil, errorMessages(err)
	}

	zerolog.Ctx(ctx).Debug().
		Float64("ca_y3", res.CaY3).
		Float64("res_y3", res.ResY3).
		Float64("bfr_min", res.BfrMin).
		Msg("simulation complete")
	return res, nil
}
