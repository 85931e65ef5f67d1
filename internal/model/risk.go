package model

// Risk is one entry of the risk matrix. Probability and impact are rated 1-5.
type Risk struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Prob   int    `json:"prob" yaml:"prob"`
	Impact int    `json:"impact" yaml:"impact"`
}

// Exposure is the product of probability and impact.
func (r Risk) Exposure() int {
	return r.Prob * r.Impact
}
