package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	TenantID                string                  `json:"tenant_id"`
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Calculations []Calculation `json:"calculations"`
}

type Calculation struct {
	CalculationID         string          `json:"calculation_id"`
	CalculationName       string          `json:"calculation_name"`
	CalculationProperties json.RawMessage `json:"calculation_properties"`
}
