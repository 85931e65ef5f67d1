package operations

import (
	"context"

	"github.com/rs/zerolog"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

// ComputeDerivedHandler computes the aggregates and ratios of a stored plan.
type ComputeDerivedHandler struct{}

func (h *ComputeDerivedHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	var plan model.BusinessPlanData
	if err := decodeProps(calc.CalculationProperties, &plan); err != nil {
		return invalidProps(calc, err)
	}
	return checkPlan(&plan)
}

func (h *ComputeDerivedHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	var plan model.BusinessPlanData
	if err := decodeProps(calc.CalculationProperties, &plan); err != nil {
		return nil, invalidProps(calc, err)
	}

	d, err := forecast.ComputeDerived(plan, c)
	if err != nil {
		return nil, errorMessages(err)
	}

	zerolog.Ctx(ctx).Debug().
		Float64("bfr_worst", d.BfrWorst).
		Float64("bfr_fact", d.BfrFact).
		Msg("derived metrics complete")
	return d, nil
}
