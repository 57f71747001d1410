package simulation

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Plan describes which MDP files make up a run and how to rederive them.
// It is loaded from a YAML file such as:
//
//	name: peptide-cg
//	output_dir: ./run
//	steps:
//	  mdp_minimization_basename: mini.mdp
//	  mdp_md_basename: md.mdp
//	derive:
//	  sim_time: 100
//	  nb_frames: 1500
type Plan struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	OutputDir   string            `yaml:"output_dir,omitempty"`
	Steps       map[string]string `yaml:"steps"`
	Derive      DeriveOptions     `yaml:"derive,omitempty"`

	// baseDir anchors relative step paths; set by LoadPlan
	baseDir string
}

// LoadPlan reads and validates a plan file. Relative step paths are
// resolved against the plan file's directory.
func LoadPlan(path string) (*Plan, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("plan file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("error parsing plan file: %w", err)
	}
	plan.baseDir = filepath.Dir(path)

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	return &plan, nil
}

// Validate checks that every step name is known and the derive options are sane
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan must list at least one step")
	}

	seen := make(map[Kind]string)
	for name, path := range p.Steps {
		kind, err := DefaultRegistry.Get(name)
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("step %s has an empty path", name)
		}
		if other, dup := seen[kind]; dup {
			return fmt.Errorf("steps %s and %s both configure the %s step", other, name, kind)
		}
		seen[kind] = name
	}

	if _, err := p.Derive.withDefaults(); err != nil {
		return err
	}
	return nil
}

// Path implements PathSource. A kind configured under its flag is also
// found by its source attribute and vice versa.
func (p *Plan) Path(name string) (string, bool) {
	path, ok := p.Steps[name]
	if !ok {
		kind, err := DefaultRegistry.Get(name)
		if err != nil {
			return "", false
		}
		if path, ok = p.Steps[kind.SourceAttr()]; !ok {
			path, ok = p.Steps[kind.Flag()]
		}
	}
	if !ok || path == "" {
		return "", false
	}

	if !filepath.IsAbs(path) && p.baseDir != "" {
		path = filepath.Join(p.baseDir, path)
	}
	return path, true
}

// StepNames returns the configured step names in execution order
func (p *Plan) StepNames() []string {
	var names []string
	for _, k := range Kinds() {
		for _, name := range []string{k.SourceAttr(), k.Flag()} {
			if _, ok := p.Steps[name]; ok {
				names = append(names, name)
				break
			}
		}
	}
	return names
}
