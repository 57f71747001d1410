package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/picogrid/mdp-sim/pkg/mdp"
)

const productionMDP = `; production
integrator = md
dt         = 0.02
nsteps     = 50000
nstlog     = 1000
nstxout    = 0
`

func writeMDP(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestKindProfiles(t *testing.T) {
	tests := []struct {
		kind       Kind
		required   []string
		editable   bool
		outputTag  string
		name       string
		flag       string
		sourceAttr string
	}{
		{Minimisation, []string{"nsteps", "nstlog"}, false, "mini", "minimisation", "cg_sim_mdp_mini", "mdp_minimization_basename"},
		{Equilibration, []string{"dt", "nsteps", "nstlog"}, false, "equi", "equilibration", "cg_sim_mdp_equi", "mdp_equi_basename"},
		{Production, []string{"dt", "nsteps", "nstlog"}, true, "md", "production", "cg_sim_mdp_md", "mdp_md_basename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.required, tt.kind.Required()); diff != "" {
				t.Errorf("Unexpected required fields (-want +got):\n%s", diff)
			}
			if tt.kind.Editable() != tt.editable {
				t.Errorf("Expected editable %v, got %v", tt.editable, tt.kind.Editable())
			}
			if tt.kind.OutputTag() != tt.outputTag {
				t.Errorf("Expected output tag %s, got %s", tt.outputTag, tt.kind.OutputTag())
			}
			if tt.kind.String() != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, tt.kind.String())
			}
			if tt.kind.Flag() != tt.flag {
				t.Errorf("Expected flag %s, got %s", tt.flag, tt.kind.Flag())
			}
			if tt.kind.SourceAttr() != tt.sourceAttr {
				t.Errorf("Expected source attribute %s, got %s", tt.sourceAttr, tt.kind.SourceAttr())
			}
		})
	}
}

func TestRequiredIsACopy(t *testing.T) {
	r := Production.Required()
	r[0] = "changed"
	if Production.Required()[0] != "dt" {
		t.Error("Expected Required to return an independent slice")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"production":                Production,
		"MD":                        Production,
		"equi":                      Equilibration,
		"cg_sim_mdp_mini":           Minimisation,
		"mdp_minimization_basename": Minimisation,
	} {
		got, err := ParseKind(in)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseKind("nvt"); !errors.Is(err, ErrUnknownFlag) {
		t.Errorf("Expected ErrUnknownFlag, got %v", err)
	}
}

func TestKindFromFileName(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		ok   bool
	}{
		{"mini.mdp", Minimisation, true},
		{"/data/run/equi.mdp", Equilibration, true},
		{"peptide_md.mdp", Production, true},
		{"production-long.mdp", Production, true},
		{"custom.mdp", 0, false},
		{"mdp.mdp", 0, false},
	}

	for _, tt := range tests {
		kind, ok := KindFromFileName(tt.name)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("KindFromFileName(%q): expected (%s, %v), got (%s, %v)", tt.name, tt.kind, tt.ok, kind, ok)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeMDP(t, dir, "md.mdp", productionMDP)

	step, err := Load(Production, path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if step.BaseName() != "md.mdp" {
		t.Errorf("Expected base name md.mdp, got %s", step.BaseName())
	}
	if step.Name() != "production" || step.OutputTag() != "md" || !step.Editable() {
		t.Errorf("Unexpected step identity: %s/%s/%v", step.Name(), step.OutputTag(), step.Editable())
	}
	if v, _ := step.Settings().Get("dt"); v != mdp.Float(0.02) {
		t.Errorf("Expected dt 0.02, got %v", v)
	}
}

func TestLoadMissingFile(t *testing.T) {
	step, err := Load(Minimisation, filepath.Join(t.TempDir(), "missing.mdp"))
	if !errors.Is(err, mdp.ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}
	if step != nil {
		t.Error("Expected no step on failure")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeMDP(t, dir, "md.mdp", "nsteps = 10\nnstlog = 5\n")

	step, err := Load(Production, path)
	if !errors.Is(err, mdp.ErrMalformedFile) {
		t.Fatalf("Expected ErrMalformedFile, got %v", err)
	}
	if step != nil {
		t.Error("Expected no step on failure")
	}

	var malformed *mdp.MalformedFileError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected *mdp.MalformedFileError, got %T", err)
	}
	if diff := cmp.Diff([]string{"dt"}, malformed.Missing); diff != "" {
		t.Errorf("Unexpected missing fields (-want +got):\n%s", diff)
	}
	if malformed.Step != "production" {
		t.Errorf("Expected step production, got %s", malformed.Step)
	}

	// The same file is a valid minimisation
	if _, err := Load(Minimisation, path); err != nil {
		t.Errorf("Expected minimisation to accept the file, got %v", err)
	}
}

func TestLoadInvalidKind(t *testing.T) {
	path := writeMDP(t, t.TempDir(), "md.mdp", productionMDP)
	if _, err := Load(Kind(42), path); err == nil {
		t.Error("Expected an error for an invalid kind")
	}
}

func TestSave(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := writeMDP(t, src, "md.mdp", productionMDP)

	step, err := Load(Production, path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	written, err := step.Save(out)
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if written != filepath.Join(out, "md.mdp") {
		t.Errorf("Unexpected output path %s", written)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != step.String() {
		t.Errorf("Expected file content to match String():\n%s\nvs\n%s", data, step.String())
	}

	reloaded, err := Load(Production, written)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if diff := cmp.Diff(step.Settings().Keys(), reloaded.Settings().Keys()); diff != "" {
		t.Errorf("Key order changed (-want +got):\n%s", diff)
	}
}
