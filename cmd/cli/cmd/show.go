package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/picogrid/mdp-sim/pkg/logger"
	"github.com/picogrid/mdp-sim/pkg/mdp"
	"github.com/picogrid/mdp-sim/pkg/simulation"
)

var showCmd = &cobra.Command{
	Use:   "show <file|run-dir>",
	Short: "Show a parsed MDP file or a prepared run",
	Long: `Show prints the typed settings of an MDP file. With --kind the file is
validated against that step's required options. Given a directory written
by prepare, show prints its manifest instead.`,
	Args: cobra.ExactArgs(1),
	RunE: showTarget,
}

func init() {
	showCmd.Flags().StringP("kind", "k", "", "validate as step (mini, equi, md)")
	showCmd.Flags().Bool("raw", false, "print the normalised MDP text instead of a table")
}

func showTarget(cmd *cobra.Command, args []string) error {
	target := args[0]

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return showManifest(filepath.Join(target, simulation.ManifestFileName))
	}

	kindName, _ := cmd.Flags().GetString("kind")
	raw, _ := cmd.Flags().GetBool("raw")

	var settings *mdp.Settings
	if kindName != "" {
		kind, err := simulation.ParseKind(kindName)
		if err != nil {
			return err
		}
		step, err := simulation.Load(kind, target)
		if err != nil {
			return err
		}
		settings = step.Settings()
		defer logger.Successf("%s is a valid %s file", step.BaseName(), step.Name())
	} else {
		s, err := mdp.ReadFile(target)
		if err != nil {
			return err
		}
		settings = s
	}

	if raw {
		return mdp.Write(os.Stdout, settings)
	}

	table := logger.NewTable("KEY", "VALUE", "TYPE")
	for k, v := range settings.All() {
		table.AddRow(k, v.String(), v.Kind().String())
	}
	table.Print()
	return nil
}

func showManifest(path string) error {
	m, err := simulation.ReadManifest(path)
	if err != nil {
		return err
	}

	logger.LogKeyValue("Run", m.RunID)
	logger.LogKeyValue("Created", m.CreatedAt.Local().Format(time.RFC1123))
	logger.LogKeyValue("Sim time", m.Derive.SimTime)
	logger.LogKeyValue("Frames", m.Derive.Frames)
	printManifest(m)
	return nil
}
