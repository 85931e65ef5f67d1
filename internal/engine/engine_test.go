package engine

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

func request(calcs ...model.Calculation) *model.CalculationRequest {
	return &model.CalculationRequest{
		TenantID: "test-tenant",
		CalculationInstructions: model.CalculationInstructions{
			Calculations: calcs,
		},
	}
}

func process(req *model.CalculationRequest) *model.CalculationResponse {
	return Process(context.Background(), req, forecast.DefaultConstants(), "defaults")
}

func TestRunSimulation(t *testing.T) {
	resp := process(request(model.Calculation{
		CalculationID:         "a1",
		CalculationName:       "run_simulation",
		CalculationProperties: json.RawMessage(`{"consult": 18, "fee": 240}`),
	}))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if resp.CalculationMetadata.TenantID != "test-tenant" {
		t.Fatalf("expected tenant_id test-tenant, got %s", resp.CalculationMetadata.TenantID)
	}

	if resp.CalculationMetadata.ConstantsSource != "defaults" {
		t.Fatalf("expected constants source defaults, got %s", resp.CalculationMetadata.ConstantsSource)
	}

	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected a calculation id")
	}

	if len(resp.CalculationResult.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.CalculationResult.Messages))
	}

	if len(resp.CalculationResult.Calculations) != 1 {
		t.Fatalf("expected 1 calculation, got %d", len(resp.CalculationResult.Calculations))
	}

	res, ok := resp.CalculationResult.Calculations[0].Output.(model.SimulationResult)
	if !ok {
		t.Fatalf("expected SimulationResult, got %T", resp.CalculationResult.Calculations[0].Output)
	}
	if len(res.Ca) != 36 {
		t.Fatalf("expected 36 months, got %d", len(res.Ca))
	}
}

func TestWarningsDoNotStopBatch(t *testing.T) {
	resp := process(request(
		model.Calculation{
			CalculationID:         "a1",
			CalculationName:       "run_simulation",
			CalculationProperties: json.RawMessage(`{"fee": 400}`),
		},
		model.Calculation{
			CalculationID:         "a2",
			CalculationName:       "stress_test",
			CalculationProperties: json.RawMessage(`{}`),
		},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if len(resp.CalculationResult.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.CalculationResult.Messages))
	}

	msg := resp.CalculationResult.Messages[0]
	if msg.Level != "WARNING" || msg.Code != model.CodeOutOfRange {
		t.Fatalf("expected WARNING %s, got %s %s", model.CodeOutOfRange, msg.Level, msg.Code)
	}

	calcs := resp.CalculationResult.Calculations
	if len(calcs) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(calcs))
	}
	if len(calcs[0].CalculationMessageIndexes) != 1 || calcs[0].CalculationMessageIndexes[0] != 0 {
		t.Fatalf("expected message index 0 on first calculation, got %v", calcs[0].CalculationMessageIndexes)
	}
	if calcs[0].Output == nil || calcs[1].Output == nil {
		t.Fatal("expected outputs for both calculations")
	}
}

func TestCriticalStopsBatch(t *testing.T) {
	resp := process(request(
		model.Calculation{
			CalculationID:         "a1",
			CalculationName:       "run_simulation",
			CalculationProperties: json.RawMessage(`{"assoc": 0}`),
		},
		model.Calculation{
			CalculationID:         "a2",
			CalculationName:       "run_simulation",
			CalculationProperties: json.RawMessage(`{}`),
		},
	))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if len(resp.CalculationResult.Calculations) != 1 {
		t.Fatalf("expected processing to stop after 1 calculation, got %d", len(resp.CalculationResult.Calculations))
	}

	if resp.CalculationResult.Calculations[0].Output != nil {
		t.Fatal("expected no output for a failed calculation")
	}

	msg := resp.CalculationResult.Messages[0]
	if msg.Level != "CRITICAL" || msg.Code != model.CodeDivisionByZero {
		t.Fatalf("expected CRITICAL %s, got %s %s", model.CodeDivisionByZero, msg.Level, msg.Code)
	}
}

func TestUnknownCalculation(t *testing.T) {
	resp := process(request(model.Calculation{
		CalculationID:   "a1",
		CalculationName: "create_dossier",
	}))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if resp.CalculationResult.Messages[0].Code != model.CodeUnknownCalculation {
		t.Fatalf("expected %s, got %s", model.CodeUnknownCalculation, resp.CalculationResult.Messages[0].Code)
	}
}

func TestEmptyBatch(t *testing.T) {
	resp := process(request())

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if resp.CalculationResult.Messages == nil || resp.CalculationResult.Calculations == nil {
		t.Fatal("expected empty lists rather than null")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := Process(ctx, request(model.Calculation{
		CalculationID:   "a1",
		CalculationName: "run_simulation",
	}), forecast.DefaultConstants(), "defaults")

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if resp.CalculationResult.Messages[0].Code != model.CodeCalculationFailed {
		t.Fatalf("expected %s, got %s", model.CodeCalculationFailed, resp.CalculationResult.Messages[0].Code)
	}
}

func TestResponseMarshals(t *testing.T) {
	resp := process(request(model.Calculation{
		CalculationID:         "a1",
		CalculationName:       "compare_scenarios",
		CalculationProperties: json.RawMessage(`{"variant": {"occup": 70}}`),
	}))

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := decoded["calculation_result"]; !ok {
		t.Fatal("expected calculation_result in response")
	}
}
