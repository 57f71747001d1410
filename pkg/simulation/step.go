package simulation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/picogrid/mdp-sim/pkg/mdp"
)

// Kind identifies one of the fixed simulation steps
type Kind int

const (
	Minimisation Kind = iota
	Equilibration
	Production
)

// profile holds the constants that distinguish one step kind from another
type profile struct {
	required   []string
	flag       string
	name       string
	outputTag  string
	sourceAttr string
	editable   bool
}

var profiles = [...]profile{
	Minimisation: {
		required:   []string{"nsteps", "nstlog"},
		flag:       "cg_sim_mdp_mini",
		name:       "minimisation",
		outputTag:  "mini",
		sourceAttr: "mdp_minimization_basename",
		editable:   false,
	},
	Equilibration: {
		required:   []string{"dt", "nsteps", "nstlog"},
		flag:       "cg_sim_mdp_equi",
		name:       "equilibration",
		outputTag:  "equi",
		sourceAttr: "mdp_equi_basename",
		editable:   false,
	},
	Production: {
		required:   []string{"dt", "nsteps", "nstlog"},
		flag:       "cg_sim_mdp_md",
		name:       "production",
		outputTag:  "md",
		sourceAttr: "mdp_md_basename",
		editable:   true,
	},
}

// Kinds lists every step kind in execution order
func Kinds() []Kind {
	return []Kind{Minimisation, Equilibration, Production}
}

func (k Kind) profile() profile {
	if k < Minimisation || k > Production {
		panic(fmt.Sprintf("simulation: unknown step kind %d", int(k)))
	}
	return profiles[k]
}

// Valid reports whether k is one of the fixed step kinds
func (k Kind) Valid() bool { return k >= Minimisation && k <= Production }

// String returns the human-readable step name
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return k.profile().name
}

// Flag returns the CLI flag name that routes a file to this step
func (k Kind) Flag() string { return k.profile().flag }

// SourceAttr returns the configuration attribute naming this step's source file
func (k Kind) SourceAttr() string { return k.profile().sourceAttr }

// OutputTag returns the tag used for the step's engine output files
func (k Kind) OutputTag() string { return k.profile().outputTag }

// Editable reports whether timing fields are rederived for this step
func (k Kind) Editable() bool { return k.profile().editable }

// Required returns the options a file must define for this step
func (k Kind) Required() []string {
	required := k.profile().required
	out := make([]string, len(required))
	copy(out, required)
	return out
}

// ParseKind resolves a step name, output tag, flag or source attribute
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		p := k.profile()
		if s == p.name || s == p.outputTag || s == p.flag || s == p.sourceAttr {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFlag, s)
}

// KindFromFileName guesses the step kind of an MDP file from the output
// tag embedded in its name, e.g. "equi.mdp" or "run_md.mdp".
func KindFromFileName(name string) (Kind, bool) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	tokens := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for _, tok := range tokens {
		for _, k := range Kinds() {
			p := k.profile()
			if tok == p.outputTag || tok == p.name {
				return k, true
			}
		}
	}
	return 0, false
}

// Step is a validated MDP file bound to a simulation step kind
type Step struct {
	kind     Kind
	settings *mdp.Settings
	baseName string
}

// Load reads and validates the MDP file at path for the given kind.
// No Step is returned unless every required option is present.
func Load(kind Kind, path string) (*Step, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid step kind %d", int(kind))
	}

	settings, err := mdp.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := mdp.Validate(settings, kind.Required(), kind.String()); err != nil {
		return nil, err
	}

	return &Step{
		kind:     kind,
		settings: settings,
		baseName: filepath.Base(path),
	}, nil
}

// Kind returns the step kind
func (s *Step) Kind() Kind { return s.kind }

// Name returns the human-readable step name
func (s *Step) Name() string { return s.kind.String() }

// Flag returns the CLI flag name for the step
func (s *Step) Flag() string { return s.kind.Flag() }

// SourceAttr returns the configuration attribute for the step's source file
func (s *Step) SourceAttr() string { return s.kind.SourceAttr() }

// OutputTag returns the engine output tag
func (s *Step) OutputTag() string { return s.kind.OutputTag() }

// Editable reports whether Derive changes this step
func (s *Step) Editable() bool { return s.kind.Editable() }

// Required returns the options the step requires
func (s *Step) Required() []string { return s.kind.Required() }

// Settings returns the step's settings. Changes made through the returned
// mapping are reflected when the step is written.
func (s *Step) Settings() *mdp.Settings { return s.settings }

// BaseName returns the source file name without its directory
func (s *Step) BaseName() string { return s.baseName }

// String renders the step's settings in MDP form
func (s *Step) String() string {
	return mdp.Render(s.settings)
}

// Save writes the step to dir under its base name and returns the path
func (s *Step) Save(dir string) (string, error) {
	path := filepath.Join(dir, s.baseName)
	if err := mdp.WriteFile(path, s.settings); err != nil {
		return "", fmt.Errorf("failed to write %s step: %w", s.Name(), err)
	}
	return path, nil
}
