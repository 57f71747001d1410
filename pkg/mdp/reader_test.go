package mdp

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleMDP = `; Production run
integrator               = md
dt                       = 0.02   ; ps
nsteps                   = 50000

	; output control
nstlog   = 1000
tc-grps  = Protein Non-Protein
gen_vel  = no
title
nstlog = 2500
`

func TestParse(t *testing.T) {
	settings, err := Parse(strings.NewReader(sampleMDP))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	wantKeys := []string{"integrator", "dt", "nsteps", "nstlog", "tc-grps", "gen_vel"}
	if diff := cmp.Diff(wantKeys, settings.Keys()); diff != "" {
		t.Errorf("Unexpected keys (-want +got):\n%s", diff)
	}

	want := map[string]Value{
		"integrator": String("md"),
		"dt":         Float(0.02),
		"nsteps":     Int(50000),
		"nstlog":     Int(2500),
		"tc-grps":    String("ProteinNon-Protein"),
		"gen_vel":    Bool(false),
	}
	for k, v := range want {
		got, ok := settings.Get(k)
		if !ok {
			t.Errorf("Expected key %s to be present", k)
			continue
		}
		if got != v {
			t.Errorf("Expected %s = %v, got %v", k, v, got)
		}
	}
}

func TestParseLineHandling(t *testing.T) {
	tests := []struct {
		name  string
		input string
		keys  []string
	}{
		{"blank lines", "\n\n   \n", nil},
		{"comment only", "; nsteps = 10\n", nil},
		{"comment after key", "nsteps ; = 10\n", nil},
		{"empty key", " = 10\n", nil},
		{"empty value", "define =\n", []string{"define"}},
		{"tabs and spaces", "\tnst log\t=\t10 \n", []string{"nstlog"}},
		{"windows line endings", "nsteps = 10\r\ndt = 0.002\r\n", []string{"nsteps", "dt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if diff := cmp.Diff(tt.keys, settings.Keys(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSplitsOnFirstEquals(t *testing.T) {
	settings, err := Parse(strings.NewReader("define = -DPOSRES=1\n"))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	got, _ := settings.Get("define")
	if got != String("-DPOSRES=1") {
		t.Errorf("Expected -DPOSRES=1, got %v", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "nope.mdp"))
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}

	// A directory is not a regular file
	_, err = ReadFile(dir)
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile for directory, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "md.mdp")
	if err := os.WriteFile(path, []byte(sampleMDP), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	settings, err := ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if settings.Len() != 6 {
		t.Errorf("Expected 6 settings, got %d", settings.Len())
	}
}
