package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/mdp-sim/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List MDP files",
	Long:  `List every MDP file below a directory with its guessed step and validation status`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  listMDPFiles,
}

func listMDPFiles(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	files, err := utils.DiscoverMDPFiles(root)
	if err != nil {
		return fmt.Errorf("failed to discover mdp files: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("No MDP files found")
		return nil
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tSTEP\tKEYS\tSTATUS")
	_, _ = fmt.Fprintln(w, "----\t----\t----\t------")

	for _, f := range files {
		step, status := "unknown", "-"
		if f.KnownKind {
			step = f.Kind.String()
			status = "ok"
			if len(f.Missing) > 0 {
				status = "missing " + strings.Join(f.Missing, ", ")
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Path, step, strconv.Itoa(f.Keys), status)
	}

	return w.Flush()
}
