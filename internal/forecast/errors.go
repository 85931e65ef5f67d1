package forecast

import "fmt"

// DivisionByZeroError reports a ratio whose divisor is zero, such as the
// per-partner result of a practice without partners.
type DivisionByZeroError struct {
	Quantity string
	Divisor  string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s is zero", e.Quantity, e.Divisor)
}
