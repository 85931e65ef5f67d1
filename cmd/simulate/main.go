// Command simulate runs the business plan engines from the command line.
//
// Input is read from -file or -data as YAML or JSON. Parameter modes start from
// the reference scenario, so an empty input simulates the defaults.
package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"bizplan-engine/internal/config"
	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
)

type stressInput struct {
	model.SimulatorParams `yaml:",inline"`
	Risks                 []model.Risk `yaml:"risks"`
}

type compareInput struct {
	Base    model.SimulatorParams `yaml:"base"`
	Variant model.SimulatorParams `yaml:"variant"`
}

func main() {
	mode := flag.String("mode", "simulate", "simulate, plan, derived, stress, optimize or compare")
	file := flag.String("file", "", "input file (YAML or JSON)")
	data := flag.String("data", "", "inline input (YAML or JSON)")
	constantsFile := flag.String("constants", "", "TOML constants file")
	cashPct := flag.Float64("cash-pct", 10, "cash patient share in % (optimize)")
	delay := flag.Int("delay", 3, "insurer payment delay in months (optimize)")
	factoring := flag.Bool("factoring", false, "sell receivables (optimize)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	c := forecast.DefaultConstants()
	if *constantsFile != "" {
		var err error
		if c, err = config.LoadConstants(*constantsFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load constants")
		}
	}

	input, err := readInput(*file, *data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	out, err := run(*mode, input, c, forecast.PaymentPolicy{CashPct: *cashPct, Delay: *delay, Factoring: *factoring})
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("Calculation failed")
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(b))
}

func readInput(file, data string) ([]byte, error) {
	switch {
	case file != "" && data != "":
		return nil, fmt.Errorf("use either -file or -data")
	case file != "":
		return os.ReadFile(file)
	default:
		return []byte(data), nil
	}
}

func run(mode string, input []byte, c forecast.Constants, pol forecast.PaymentPolicy) (interface{}, error) {
	switch mode {
	case "simulate", "plan", "stress":
		in := stressInput{SimulatorParams: model.DefaultSimulatorParams()}
		if err := yaml.Unmarshal(input, &in); err != nil {
			return nil, fmt.Errorf("parse params: %w", err)
		}
		p := in.SimulatorParams
		log.Debug().Interface("params", p).Msg("Parsed parameters")
		switch mode {
		case "stress":
			return forecast.Stress(p, in.Risks, c)
		case "plan":
			res, err := forecast.Simulate(p, c)
			if err != nil {
				return nil, err
			}
			return forecast.BuildPlan(p, res, c)
		default:
			return forecast.Simulate(p, c)
		}

	case "derived", "optimize":
		var plan model.BusinessPlanData
		if err := yaml.Unmarshal(input, &plan); err != nil {
			return nil, fmt.Errorf("parse plan: %w", err)
		}
		if mode == "optimize" {
			return forecast.OptimizePayment(plan, pol, c)
		}
		return forecast.ComputeDerived(plan, c)

	case "compare":
		in := compareInput{
			Base:    model.DefaultSimulatorParams(),
			Variant: model.DefaultSimulatorParams(),
		}
		if err := yaml.Unmarshal(input, &in); err != nil {
			return nil, fmt.Errorf("parse scenarios: %w", err)
		}
		return forecast.Compare(in.Base, in.Variant, c)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}
