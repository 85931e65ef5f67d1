package operations

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/series"
)

var jsonNull = []byte("null")

// decodeProps unmarshals calculation properties onto v. Absent or null
// properties leave v untouched so callers can preset defaults.
func decodeProps(raw json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return nil
	}
	return json.Unmarshal(trimmed, v)
}

func critical(code, format string, args ...interface{}) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func warning(code, format string, args ...interface{}) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelWarning,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func invalidProps(calc *model.Calculation, err error) []model.CalculationMessage {
	return []model.CalculationMessage{
		critical(model.CodeInvalidProperties, "Invalid properties for %s: %v", calc.CalculationName, err),
	}
}

// errorMessages maps an engine failure onto a CRITICAL message.
func errorMessages(err error) []model.CalculationMessage {
	var shape *series.ShapeError
	if errors.As(err, &shape) {
		return []model.CalculationMessage{
			critical(model.CodeInvalidSeriesLength, "Series %s has %d months, expected %d", shape.Series, shape.Got, shape.Want),
		}
	}
	var dz *forecast.DivisionByZeroError
	if errors.As(err, &dz) {
		return []model.CalculationMessage{
			critical(model.CodeDivisionByZero, "Cannot compute %s: %s is zero", dz.Quantity, dz.Divisor),
		}
	}
	return []model.CalculationMessage{
		critical(model.CodeCalculationFailed, "Calculation failed: %v", err),
	}
}
