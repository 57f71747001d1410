package mdp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// KeyWidth is the column width keys are padded to when rendered
const KeyWidth = 25

// Render returns the textual MDP form of settings
func Render(settings *Settings) string {
	var sb strings.Builder
	_ = Write(&sb, settings)
	return sb.String()
}

// Write renders settings to w, one "key = value" line per option in order
func Write(w io.Writer, settings *Settings) error {
	bw := bufio.NewWriter(w)
	for k, v := range settings.All() {
		if _, err := fmt.Fprintf(bw, "%-*s  = %s\n", KeyWidth, k, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes settings to path, replacing any existing file
func WriteFile(path string, settings *Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mdp file: %w", err)
	}

	if err := Write(f, settings); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write mdp file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close mdp file: %w", err)
	}
	return nil
}
