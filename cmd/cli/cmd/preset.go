package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/mdp-sim/pkg/config"
	"github.com/picogrid/mdp-sim/pkg/simulation"
	"github.com/picogrid/mdp-sim/pkg/utils"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage derive presets",
	Long:  `Manage named sets of derive parameters stored in $HOME/.mdp-sim/presets.yaml`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE:  listPresets,
}

var presetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new preset",
	RunE:  addPreset,
}

var presetRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a preset",
	RunE:  removePreset,
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRemoveCmd)
}

func listPresets(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	if len(cfg.Presets) == 0 {
		fmt.Println("No presets configured")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSIM TIME\tFRAMES\tLOG FREQ\tENERGY RATIO")
	_, _ = fmt.Fprintln(w, "----\t--------\t------\t--------\t------------")

	for _, p := range cfg.Presets {
		simTime := "keep nsteps"
		if p.SimTime != 0 {
			simTime = fmt.Sprintf("%g", p.SimTime)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\n", p.Name, simTime, p.Frames, p.LogFrequency, p.EnergyRatio)
	}

	return w.Flush()
}

func addPreset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	var name string
	namePrompt := &survey.Input{
		Message: "Preset name:",
	}
	if err := survey.AskOne(namePrompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Check if name already exists
	if _, exists := cfg.Find(name); exists {
		return fmt.Errorf("preset %s already exists", name)
	}

	opts, err := utils.PromptForDeriveOptions(simulation.DefaultDeriveOptions())
	if err != nil {
		return err
	}

	cfg.Presets = append(cfg.Presets, config.Preset{
		Name:         name,
		SimTime:      opts.SimTime,
		Frames:       opts.Frames,
		LogFrequency: opts.LogFrequency,
		EnergyRatio:  opts.EnergyRatio,
	})

	if err := config.SavePresets(cfg); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Printf("Preset %s added successfully\n", name)
	return nil
}

func removePreset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	if len(cfg.Presets) == 0 {
		fmt.Println("No presets to remove")
		return nil
	}

	names := make([]string, len(cfg.Presets))
	for i, p := range cfg.Presets {
		names[i] = p.Name
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select preset to remove:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	cfg.Remove(selected)

	if err := config.SavePresets(cfg); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Printf("Preset %s removed successfully\n", selected)
	return nil
}
