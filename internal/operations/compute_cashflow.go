package operations

import (
	"context"

	"bizplan-engine/internal/cashflow"
	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

type cashflowProps struct {
	Revenue     []float64 `json:"revenue"`
	Admin       []float64 `json:"admin"`
	Opex        []float64 `json:"opex"`
	Lab         []float64 `json:"lab"`
	CashShare   float64   `json:"cashShare"` // fraction, 0.1 is 10 %
	DelayMonths int       `json:"delayMonths"`
	Factoring   bool      `json:"factoring"`
}

// ComputeCashflowHandler applies a payment policy to revenue and cost series.
type ComputeCashflowHandler struct{}

func (h *ComputeCashflowHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	var props cashflowProps
	if err := decodeProps(calc.CalculationProperties, &props); err != nil {
		return invalidProps(calc, err)
	}

	var msgs []model.CalculationMessage
	for _, s := range []struct {
		name string
		v    []float64
	}{
		{"revenue", props.Revenue},
		{"admin", props.Admin},
		{"opex", props.Opex},
		{"lab", props.Lab},
	} {
		if err := series.Check(s.name, s.v); err != nil {
			msgs = append(msgs, errorMessages(err)...)
		}
	}
	if props.CashShare < 0 || props.CashShare > 1 {
		msgs = append(msgs, warning(model.CodeOutOfRange, "cashShare = %g is outside [0, 1]", props.CashShare))
	}
	msgs = append(msgs, checkDelay("cashflow", props.DelayMonths)...)
	return msgs
}

func (h *ComputeCashflowHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	var props cashflowProps
	if err := decodeProps(calc.CalculationProperties, &props); err != nil {
		return nil, invalidProps(calc, err)
	}

	out, err := cashflow.Compute(props.Revenue, props.Admin, props.Opex, props.Lab, cashflow.Policy{
		CashShare:   props.CashShare,
		DelayMonths: props.DelayMonths,
		Factoring:   props.Factoring,
	}, c.FactoringCostRate)
	if err != nil {
		return nil, errorMessages(err)
	}
	return out, nil
}
