package simulation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/mdp-sim/pkg/logger"
)

// ManifestFileName is written next to the prepared MDP files
const ManifestFileName = "manifest.yaml"

// Manifest records what Prepare wrote into an output directory
type Manifest struct {
	RunID     string        `yaml:"run_id"`
	CreatedAt time.Time     `yaml:"created_at"`
	Derive    DeriveOptions `yaml:"derive"`
	Steps     []StepRecord  `yaml:"steps"`
}

// StepRecord describes one prepared step
type StepRecord struct {
	Name      string `yaml:"name"`
	Flag      string `yaml:"flag"`
	OutputTag string `yaml:"output_tag"`
	Source    string `yaml:"source"`
	Output    string `yaml:"output"`
	Editable  bool   `yaml:"editable"`
	NSteps    int64  `yaml:"nsteps"`
}

var now = time.Now

// Prepare loads each named step from src, rederives editable steps with
// opts and writes the results plus a manifest into outDir. Every step is
// loaded and derived before anything is written.
func Prepare(src PathSource, names []string, opts DeriveOptions, outDir string) (*Manifest, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no simulation steps selected")
	}

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	log := logger.WithPrefix("prepare")

	type loaded struct {
		step   *Step
		source string
	}
	steps := make([]loaded, 0, len(names))
	seen := make(map[Kind]string)

	for _, name := range names {
		step, err := Select(name, src)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		if other, dup := seen[step.Kind()]; dup {
			return nil, fmt.Errorf("%s and %s both select the %s step", other, name, step.Kind())
		}
		seen[step.Kind()] = name

		if step.Editable() {
			log.Debugf("deriving %s: sim_time=%v frames=%d log_freq=%d energy_ratio=%v",
				step.Name(), opts.SimTime, opts.Frames, opts.LogFrequency, opts.EnergyRatio)
		}
		if _, err := step.Derive(opts); err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", step.Name(), err)
		}

		source, _ := src.Path(name)
		steps = append(steps, loaded{step: step, source: source})
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := &Manifest{
		RunID:     uuid.New().String(),
		CreatedAt: now().UTC(),
		Derive:    opts,
		Steps:     make([]StepRecord, 0, len(steps)),
	}

	for _, l := range steps {
		out, err := l.step.Save(outDir)
		if err != nil {
			return nil, err
		}

		nsteps, _ := l.step.Settings().Get("nsteps")
		n, _ := nsteps.AsInt()

		log.WithField("step", l.step.Name()).Infof("wrote %s", out)
		manifest.Steps = append(manifest.Steps, StepRecord{
			Name:      l.step.Name(),
			Flag:      l.step.Flag(),
			OutputTag: l.step.OutputTag(),
			Source:    l.source,
			Output:    out,
			Editable:  l.step.Editable(),
			NSteps:    n,
		})
	}

	if err := writeManifest(filepath.Join(outDir, ManifestFileName), manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// ReadManifest loads a manifest written by Prepare
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func writeManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
