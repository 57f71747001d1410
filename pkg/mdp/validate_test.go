package mdp

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	required := []string{"dt", "nsteps", "nstlog"}

	tests := []struct {
		name    string
		input   string
		missing []string
	}{
		{"complete", "dt=0.02\nnsteps=10\nnstlog=5\n", nil},
		{"missing dt", "nsteps=10\nnstlog=5\n", []string{"dt"}},
		{"missing all", "integrator=md\n", []string{"dt", "nsteps", "nstlog"}},
		{"keeps required order", "nsteps=10\n", []string{"dt", "nstlog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}

			err = Validate(settings, required, "production")
			if tt.missing == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrMalformedFile) {
				t.Fatalf("Expected ErrMalformedFile, got %v", err)
			}

			var malformed *MalformedFileError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected *MalformedFileError, got %T", err)
			}
			if diff := cmp.Diff(tt.missing, malformed.Missing); diff != "" {
				t.Errorf("Unexpected missing fields (-want +got):\n%s", diff)
			}

			msg := err.Error()
			if !strings.Contains(msg, strings.Join(tt.missing, ", ")) {
				t.Errorf("Expected message to list %v, got %q", tt.missing, msg)
			}
			if !strings.Contains(msg, "production") {
				t.Errorf("Expected message to name the step, got %q", msg)
			}
		})
	}
}
