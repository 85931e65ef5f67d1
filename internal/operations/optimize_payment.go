package operations

import (
	"context"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

type optimizeProps struct {
	Plan model.BusinessPlanData `json:"plan"`
	forecast.PaymentPolicy
}

// OptimizePaymentHandler compares receivables policies for a stored plan.
type OptimizePaymentHandler struct{}

func (h *OptimizePaymentHandler) Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage {
	var props optimizeProps
	if err := decodeProps(calc.CalculationProperties, &props); err != nil {
		return invalidProps(calc, err)
	}

	msgs := checkPlan(&props.Plan)
	if props.CashPct < 0 || props.CashPct > 30 {
		msgs = append(msgs, warning(model.CodeOutOfRange, "cashPct = %g is outside [0, 30]", props.CashPct))
	}
	msgs = append(msgs, checkDelay("payment", props.Delay)...)
	return msgs
}

func (h *OptimizePaymentHandler) Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage) {
	var props optimizeProps
	if err := decodeProps(calc.CalculationProperties, &props); err != nil {
		return nil, invalidProps(calc, err)
	}

	opt, err := forecast.OptimizePayment(props.Plan, props.PaymentPolicy, c)
	if err != nil {
		return nil, errorMessages(err)
	}
	return opt, nil
}
