package simulation

import (
	"fmt"
	"math"

	"github.com/picogrid/mdp-sim/pkg/mdp"
)

// Default sampling parameters used when DeriveOptions fields are zero
const (
	DefaultFrames       = 1500
	DefaultLogFrequency = 5000
	DefaultEnergyRatio  = 0.1
)

// timeScale converts the target simulation time into the unit of dt
const timeScale = 1000

// DeriveOptions controls how timing and output fields are rederived.
// Zero values select the defaults; a zero SimTime keeps the file's nsteps.
type DeriveOptions struct {
	SimTime      float64 `yaml:"sim_time,omitempty"`
	Frames       int     `yaml:"nb_frames,omitempty"`
	LogFrequency int     `yaml:"log_write_freq,omitempty"`
	EnergyRatio  float64 `yaml:"energy_write_nb_frames_ratio,omitempty"`
}

// DefaultDeriveOptions returns the default sampling parameters
func DefaultDeriveOptions() DeriveOptions {
	return DeriveOptions{
		Frames:       DefaultFrames,
		LogFrequency: DefaultLogFrequency,
		EnergyRatio:  DefaultEnergyRatio,
	}
}

// withDefaults fills zero fields and rejects impossible values
func (o DeriveOptions) withDefaults() (DeriveOptions, error) {
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.LogFrequency == 0 {
		o.LogFrequency = DefaultLogFrequency
	}
	if o.EnergyRatio == 0 {
		o.EnergyRatio = DefaultEnergyRatio
	}

	switch {
	case o.SimTime < 0 || math.IsNaN(o.SimTime) || math.IsInf(o.SimTime, 0):
		return o, fmt.Errorf("simulation time must be a positive number, got %v", o.SimTime)
	case o.Frames < 0:
		return o, fmt.Errorf("number of frames must be positive, got %d", o.Frames)
	case o.LogFrequency < 0:
		return o, fmt.Errorf("log write frequency must be positive, got %d", o.LogFrequency)
	case o.EnergyRatio < 0 || math.IsNaN(o.EnergyRatio) || math.IsInf(o.EnergyRatio, 0):
		return o, fmt.Errorf("energy frames ratio must be positive, got %v", o.EnergyRatio)
	}
	return o, nil
}

// Derive rewrites the step count and output frequencies of an editable step
// so the run lasts opts.SimTime and samples opts.Frames trajectory frames.
// Non-editable steps are returned unchanged. Full-precision trajectory
// outputs (nstvout, nstxout, nstfout) are written once, at the last step.
// On error the settings are left untouched.
func (s *Step) Derive(opts DeriveOptions) (*Step, error) {
	if !s.Editable() {
		return s, nil
	}

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	nsteps, err := s.resolveSteps(opts.SimTime)
	if err != nil {
		return nil, err
	}

	frames := float64(opts.Frames)
	energyFreq := int64(float64(nsteps) / frames / opts.EnergyRatio)
	compressedFreq := int64(float64(nsteps) / frames)

	settings := s.settings
	settings.Set("nsteps", mdp.Int(nsteps))
	settings.Set("nstlog", mdp.Int(int64(opts.LogFrequency)))
	settings.Set("nstvout", mdp.Int(nsteps))
	settings.Set("nstxout", mdp.Int(nsteps))
	settings.Set("nstfout", mdp.Int(nsteps))
	settings.Set("nstcalcenergy", mdp.Int(energyFreq))
	settings.Set("nstenergy", mdp.Int(energyFreq))
	settings.Set("nstxout-compressed", mdp.Int(compressedFreq))

	return s, nil
}

// resolveSteps returns the integration step count for simTime, or the
// file's own nsteps when simTime is zero
func (s *Step) resolveSteps(simTime float64) (int64, error) {
	if simTime == 0 {
		v, _ := s.settings.Get("nsteps")
		n, ok := v.AsInt()
		if !ok {
			return 0, fmt.Errorf("%s step: nsteps must be numeric, got %q", s.Name(), v.String())
		}
		return n, nil
	}

	v, ok := s.settings.Get("dt")
	if !ok {
		return 0, fmt.Errorf("%s step: dt is required to derive nsteps from a simulation time", s.Name())
	}
	dt, ok := v.AsFloat()
	if !ok || dt <= 0 {
		return 0, fmt.Errorf("%s step: dt must be a positive number, got %q", s.Name(), v.String())
	}

	return int64(simTime * timeScale / dt), nil
}
