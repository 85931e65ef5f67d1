package forecast

import (
	"fmt"

	json "github.com/goccy/go-json"

	"bizplan-engine/internal/jsonpatch"
	"bizplan-engine/internal/model"
)

func toDocument(p model.SimulatorParams) (interface{}, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Compare simulates two parameter sets and reports the JSON patch between them
// together with the change of the headline figures.
func Compare(base, variant model.SimulatorParams, c Constants) (model.ScenarioComparison, error) {
	baseRes, err := Simulate(base, c)
	if err != nil {
		return model.ScenarioComparison{}, fmt.Errorf("base: %w", err)
	}
	varRes, err := Simulate(variant, c)
	if err != nil {
		return model.ScenarioComparison{}, fmt.Errorf("variant: %w", err)
	}

	baseDoc, err := toDocument(base)
	if err != nil {
		return model.ScenarioComparison{}, err
	}
	varDoc, err := toDocument(variant)
	if err != nil {
		return model.ScenarioComparison{}, err
	}
	patch, revert := jsonpatch.DiffBoth(baseDoc, varDoc, "")
	if patch == nil {
		patch = []jsonpatch.Op{}
	}
	if revert == nil {
		revert = []jsonpatch.Op{}
	}

	return model.ScenarioComparison{
		Patch:  patch,
		Revert: revert,
		Deltas: map[string]float64{
			"caY1":       varRes.CaY1 - baseRes.CaY1,
			"caY2":       varRes.CaY2 - baseRes.CaY2,
			"caY3":       varRes.CaY3 - baseRes.CaY3,
			"resY1":      varRes.ResY1 - baseRes.ResY1,
			"resY2":      varRes.ResY2 - baseRes.ResY2,
			"resY3":      varRes.ResY3 - baseRes.ResY3,
			"resAdj":     varRes.ResAdj - baseRes.ResAdj,
			"perAssoc":   varRes.PerAssoc - baseRes.PerAssoc,
			"bfrMin":     varRes.BfrMin - baseRes.BfrMin,
			"tresoFinal": varRes.TresoFinal - baseRes.TresoFinal,
		},
		Base:    baseRes,
		Variant: varRes,
	}, nil
}
