package operations

import "sort"

var registry = map[string]Handler{
	"run_simulation":    &RunSimulationHandler{},
	"compute_derived":   &ComputeDerivedHandler{},
	"compute_cashflow":  &ComputeCashflowHandler{},
	"stress_test":       &StressTestHandler{},
	"optimize_payment":  &OptimizePaymentHandler{},
	"compare_scenarios": &CompareScenariosHandler{},
}

func Get(name string) (Handler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Names lists the registered calculations in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
