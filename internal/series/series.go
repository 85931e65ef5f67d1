package series

import "fmt"

// Months is the fixed horizon of every monthly series: index 0 is the first month
// of year 1, index 35 the last month of year 3.
const Months = 36

// Series is a chronological sequence of monthly values.
type Series []float64

// ShapeError reports a series whose length is not Months.
type ShapeError struct {
	Series string
	Got    int
	Want   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("series %s has length %d, want %d", e.Series, e.Got, e.Want)
}

// Check returns a *ShapeError when s does not hold exactly Months values.
func Check(name string, s Series) error {
	if len(s) != Months {
		return &ShapeError{Series: name, Got: len(s), Want: Months}
	}
	return nil
}

// Zeros returns a fresh series of Months zeros.
func Zeros() Series {
	return make(Series, Months)
}

// Sum adds s[from:to], clamping the bounds to the series.
func Sum(s Series, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	var total float64
	for i := from; i < to; i++ {
		total += s[i]
	}
	return total
}

// YearSum sums the twelve months of year 1, 2 or 3.
func YearSum(s Series, year int) float64 {
	return Sum(s, (year-1)*12, year*12)
}

// Min returns the smallest value of s, or 0 for an empty series.
func Min(s Series) float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Last returns the final value of s, or 0 for an empty series.
func Last(s Series) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// MovingAverage returns the trailing average over window months. The first
// window-1 points average over the months available so far.
func MovingAverage(s Series, window int) Series {
	out := make(Series, len(s))
	if window <= 1 {
		copy(out, s)
		return out
	}
	var acc float64
	for i, v := range s {
		acc += v
		n := window
		if i >= window {
			acc -= s[i-window]
		} else {
			n = i + 1
		}
		out[i] = acc / float64(n)
	}
	return out
}

// FirstSustainedNonNegative returns the first month from which s stays >= 0 up to
// its last month. It returns nil when the last month is negative.
func FirstSustainedNonNegative(s Series) *int {
	if len(s) == 0 || s[len(s)-1] < 0 {
		return nil
	}
	month := len(s) - 1
	for month > 0 && s[month-1] >= 0 {
		month--
	}
	return &month
}
