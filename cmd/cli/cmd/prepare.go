package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/picogrid/mdp-sim/pkg/config"
	"github.com/picogrid/mdp-sim/pkg/logger"
	"github.com/picogrid/mdp-sim/pkg/simulation"
	"github.com/picogrid/mdp-sim/pkg/utils"
)

const outputDirKey = "output_dir"

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Validate, rederive and write a run's MDP files",
	Long: `Prepare loads the MDP file of each configured step, validates it,
rederives the production step's nsteps and output frequencies and writes
the results plus a manifest.yaml to the output directory.

Step files come from --plan, or from --mini/--equi/--md, the config file
keys mdp_minimization_basename/mdp_equi_basename/mdp_md_basename, or the
matching MDPSIM_* environment variables.`,
	RunE: runPrepare,
}

func init() {
	for _, k := range simulation.Kinds() {
		prepareCmd.Flags().String(k.OutputTag(), "", fmt.Sprintf("%s MDP file", k))
		_ = viper.BindPFlag(k.SourceAttr(), prepareCmd.Flags().Lookup(k.OutputTag()))
	}

	prepareCmd.Flags().String("plan", "", "run plan file (YAML)")
	prepareCmd.Flags().String("preset", "", "named derive preset")
	prepareCmd.Flags().Float64("sim-time", 0, "target simulation time; 0 keeps the file's nsteps")
	prepareCmd.Flags().Int("frames", simulation.DefaultFrames, "number of trajectory frames")
	prepareCmd.Flags().Int("log-freq", simulation.DefaultLogFrequency, "log write frequency in steps")
	prepareCmd.Flags().Float64("energy-ratio", simulation.DefaultEnergyRatio, "energy frames per trajectory frame")
	prepareCmd.Flags().StringP("output", "o", "prepared", "output directory")
	prepareCmd.Flags().BoolP("interactive", "i", false, "prompt for derive parameters")

	_ = viper.BindPFlag(outputDirKey, prepareCmd.Flags().Lookup("output"))
}

// viperPaths resolves step paths from flags, config file and environment
type viperPaths struct{}

func (viperPaths) Path(name string) (string, bool) {
	if p := viper.GetString(name); p != "" {
		return p, true
	}
	kind, err := simulation.DefaultRegistry.Get(name)
	if err != nil {
		return "", false
	}
	p := viper.GetString(kind.SourceAttr())
	return p, p != ""
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	var (
		src    simulation.PathSource
		names  []string
		opts   = simulation.DefaultDeriveOptions()
		outDir = viper.GetString(outputDirKey)
	)

	planPath, _ := cmd.Flags().GetString("plan")
	if planPath != "" {
		plan, err := simulation.LoadPlan(planPath)
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		logger.Infof("Using plan %s", planPath)
		src = plan
		names = plan.StepNames()
		opts = mergeOptions(opts, plan.Derive)
		if plan.OutputDir != "" && !cmd.Flags().Changed("output") {
			outDir = plan.OutputDir
		}
	} else {
		src = viperPaths{}
		for _, k := range simulation.Kinds() {
			if _, ok := src.Path(k.SourceAttr()); ok {
				names = append(names, k.SourceAttr())
			}
		}
	}

	if len(names) == 0 {
		return fmt.Errorf("no MDP files given; use --plan or --%s/--%s/--%s",
			simulation.Minimisation.OutputTag(), simulation.Equilibration.OutputTag(), simulation.Production.OutputTag())
	}

	if presetName, _ := cmd.Flags().GetString("preset"); presetName != "" {
		presets, err := config.LoadPresets()
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		preset, ok := presets.Find(presetName)
		if !ok {
			return fmt.Errorf("preset %s not found", presetName)
		}
		opts = mergeOptions(opts, preset.Options())
	}

	opts, err := applyDeriveFlags(cmd, opts)
	if err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logger.Warn("stdin is not a terminal, skipping prompts")
		} else if opts, err = utils.PromptForDeriveOptions(opts); err != nil {
			return fmt.Errorf("failed to get derive parameters: %w", err)
		}
	}

	logger.LogSection("Preparing MDP files")
	logger.Progressf("Writing %d step(s) to %s", len(names), outDir)

	manifest, err := simulation.Prepare(src, names, opts, outDir)
	if err != nil {
		return err
	}

	printManifest(manifest)
	logger.Successf("Run %s prepared in %s", manifest.RunID, outDir)
	return nil
}

// mergeOptions overlays the non-zero fields of override onto base
func mergeOptions(base, override simulation.DeriveOptions) simulation.DeriveOptions {
	if override.SimTime != 0 {
		base.SimTime = override.SimTime
	}
	if override.Frames != 0 {
		base.Frames = override.Frames
	}
	if override.LogFrequency != 0 {
		base.LogFrequency = override.LogFrequency
	}
	if override.EnergyRatio != 0 {
		base.EnergyRatio = override.EnergyRatio
	}
	return base
}

// applyDeriveFlags lets explicitly set flags win over plan and preset values
func applyDeriveFlags(cmd *cobra.Command, opts simulation.DeriveOptions) (simulation.DeriveOptions, error) {
	flags := cmd.Flags()
	var err error

	if flags.Changed("sim-time") {
		if opts.SimTime, err = flags.GetFloat64("sim-time"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("frames") {
		if opts.Frames, err = flags.GetInt("frames"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("log-freq") {
		if opts.LogFrequency, err = flags.GetInt("log-freq"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("energy-ratio") {
		if opts.EnergyRatio, err = flags.GetFloat64("energy-ratio"); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func printManifest(m *simulation.Manifest) {
	table := logger.NewTable("STEP", "TAG", "NSTEPS", "DERIVED", "OUTPUT")
	for _, s := range m.Steps {
		derived := "no"
		if s.Editable {
			derived = "yes"
		}
		table.AddRow(s.Name, s.OutputTag, strconv.FormatInt(s.NSteps, 10), derived, s.Output)
	}
	table.Print()
}
