package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/operations"
)

// Process runs the calculations of req in order with constants c. The batch
// stops at the first calculation that yields a CRITICAL message; source names
// where c came from and is echoed in the metadata.
func Process(ctx context.Context, req *model.CalculationRequest, c forecast.Constants, source string) *model.CalculationResponse {
	start := time.Now()
	calculationID := uuid.New().String()

	logger := log.With().
		Str("calculation_id", calculationID).
		Str("tenant_id", req.TenantID).
		Logger()
	ctx = logger.WithContext(ctx)

	var allMessages []model.CalculationMessage
	processed := []model.ProcessedCalculation{}
	outcome := model.OutcomeSuccess
	hasCritical := false

	appendMessages := func(msgs []model.CalculationMessage, indexes []int) []int {
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			indexes = append(indexes, m.ID)
			if m.Level == model.LevelCritical {
				hasCritical = true
			}
		}
		return indexes
	}

	for _, calc := range req.CalculationInstructions.Calculations {
		if err := ctx.Err(); err != nil {
			idx := appendMessages([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeCalculationFailed,
				Message: fmt.Sprintf("Calculation aborted: %v", err),
			}}, nil)
			processed = append(processed, model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: idx})
			break
		}

		handler, ok := operations.Get(calc.CalculationName)
		if !ok {
			idx := appendMessages([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeUnknownCalculation,
				Message: fmt.Sprintf("Unknown calculation: %s", calc.CalculationName),
			}}, nil)
			processed = append(processed, model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: idx})
			break
		}

		// Validate
		msgIndexes := appendMessages(handler.Validate(ctx, &calc), nil)
		if hasCritical {
			processed = append(processed, model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: msgIndexes})
			break
		}

		// Apply
		output, applyMsgs := handler.Apply(ctx, &calc, c)
		msgIndexes = appendMessages(applyMsgs, msgIndexes)

		pc := model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: msgIndexes}
		if !hasCritical {
			pc.Output = output
		}
		processed = append(processed, pc)

		if hasCritical {
			break
		}
	}

	if hasCritical {
		outcome = model.OutcomeFailure
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	logger.Info().
		Int("calculations", len(processed)).
		Int("messages", len(allMessages)).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("batch processed")

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calculationID,
			TenantID:               req.TenantID,
			ConstantsSource:        source,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Calculations: processed,
		},
	}
}
