package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeUnknownCalculation  = "UNKNOWN_CALCULATION"
	CodeInvalidProperties   = "INVALID_PROPERTIES"
	CodeInvalidSeriesLength = "INVALID_SERIES_LENGTH"
	CodeDivisionByZero      = "DIVISION_BY_ZERO"
	CodeOutOfRange          = "PARAMETER_OUT_OF_RANGE"
	CodeNotInteger          = "PARAMETER_NOT_INTEGER"
	CodeInvalidDelay        = "INVALID_PAYMENT_DELAY"
	CodeFteMismatch         = "FTE_TOTAL_MISMATCH"
	CodeCalculationFailed   = "CALCULATION_FAILED"
)
