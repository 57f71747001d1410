package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/mdp-sim/pkg/simulation"
)

// EnvPrefix prefixes environment overrides for prompted values
const EnvPrefix = "MDPSIM_"

// PromptForDeriveOptions asks for each derive parameter, offering defaults.
// With MDPSIM_SKIP_PROMPTS=true no prompt is shown and MDPSIM_<PARAM>
// variables or the defaults are used instead.
func PromptForDeriveOptions(defaults simulation.DeriveOptions) (simulation.DeriveOptions, error) {
	opts := defaults
	var err error

	if opts.SimTime, err = promptFloat("sim_time", "Target simulation time (0 keeps nsteps)", opts.SimTime, true); err != nil {
		return opts, err
	}
	if opts.Frames, err = promptInt("nb_frames", "Number of trajectory frames", opts.Frames); err != nil {
		return opts, err
	}
	if opts.LogFrequency, err = promptInt("log_write_freq", "Log write frequency (steps)", opts.LogFrequency); err != nil {
		return opts, err
	}
	if opts.EnergyRatio, err = promptFloat("energy_write_nb_frames_ratio", "Energy frames per trajectory frame", opts.EnergyRatio, false); err != nil {
		return opts, err
	}

	return opts, nil
}

func skipPrompts() bool {
	return os.Getenv(EnvPrefix+"SKIP_PROMPTS") == "true"
}

func envValue(name string) string {
	return os.Getenv(EnvPrefix + strings.ToUpper(name))
}

func promptInt(name, message string, def int) (int, error) {
	if v := envValue(name); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			if skipPrompts() {
				return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, strings.ToUpper(name), err)
			}
		} else {
			def = parsed
		}
	}
	if skipPrompts() {
		return def, nil
	}

	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(def),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required), survey.WithValidator(positiveInt)); err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return value, nil
}

func promptFloat(name, message string, def float64, allowZero bool) (float64, error) {
	if v := envValue(name); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if skipPrompts() {
				return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, strings.ToUpper(name), err)
			}
		} else {
			def = parsed
		}
	}
	if skipPrompts() {
		return def, nil
	}

	prompt := &survey.Input{
		Message: message,
		Default: strconv.FormatFloat(def, 'g', -1, 64),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required), survey.WithValidator(nonNegativeFloat(allowZero))); err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, nil
}

func positiveInt(val interface{}) error {
	v, err := strconv.Atoi(fmt.Sprint(val))
	if err != nil {
		return fmt.Errorf("please enter a whole number")
	}
	if v <= 0 {
		return fmt.Errorf("value must be greater than zero")
	}
	return nil
}

func nonNegativeFloat(allowZero bool) survey.Validator {
	return func(val interface{}) error {
		v, err := strconv.ParseFloat(fmt.Sprint(val), 64)
		if err != nil {
			return fmt.Errorf("please enter a number")
		}
		if v < 0 || (!allowZero && v == 0) {
			return fmt.Errorf("value must be greater than zero")
		}
		return nil
	}
}
