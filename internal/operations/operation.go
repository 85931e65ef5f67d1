package operations

import (
	"context"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

// Handler defines the contract for all calculation implementations.
// Validate reports input problems; a CRITICAL message stops the batch before
// Apply runs. Apply computes the output with the caller's constants.
type Handler interface {
	Validate(ctx context.Context, calc *model.Calculation) []model.CalculationMessage
	Apply(ctx context.Context, calc *model.Calculation, c forecast.Constants) (interface{}, []model.CalculationMessage)
}
