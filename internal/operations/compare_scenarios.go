package operations

import (
	"context"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

type compareProps struct {
	Base    model.SimulatorParams `json:"base"`
	Variant model.SimulatorParams `json:"variant"`
}

// CompareScenariosHandler diffs two parameter sets and their key results.
type CompareScenariosHandler struct{}

func compareScenarioProps(calc *model.Calculation) (compareProps, error) {
	props := compareProps{
		Base:    model.DefaultSimulatorParams(),
		Variant: model.DefaultSimulatorParams(),
	}
	err := decodeProps(calc.CalculationProperties, &props)
	return props, err
}

func (h *CompareScenariosHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	props, err := compareScenarioProps(calc)
	if err != nil {
		return invalidProps(calc, err)
	}
	msgs := checkParams("base", props.Base)
	return append(msgs, checkParams("variant", props.Variant)...)
}

func (h *CompareScenariosHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	props, err := compareScenarioProps(calc)
	if err != nil {
		return nil, invalidProps(calc, err)
	}

	cmp, err := forecast.Compare(props.Base, props.Variant, c)
	if err != nil {
		return nil, errorMessages(err)
	}
	return cmp, nil
}
