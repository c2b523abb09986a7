package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("PANTRY_TEST_DIR", "/tmp/pantry-test")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty passes through", input: "", want: ""},
		{name: "plain path unchanged", input: "/var/lib/pantry.db", want: "/var/lib/pantry.db"},
		{name: "tilde alone", input: "~", want: home},
		{name: "tilde prefix", input: "~/data/pantry.db", want: filepath.Join(home, "data/pantry.db")},
		{name: "env var", input: "$PANTRY_TEST_DIR/pantry.db", want: "/tmp/pantry-test/pantry.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
