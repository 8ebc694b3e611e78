package cli

import (
	"testing"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unit add no args", []string{"unit", "add"}},
		{"unit add missing rent", []string{"unit", "add", "101", "Studio"}},
		{"unit delete no args", []string{"unit", "delete"}},
		{"unit list extra arg", []string{"unit", "list", "extra"}},
		{"tenant assign missing name", []string{"tenant", "assign", "101"}},
		{"tenant show no args", []string{"tenant", "show"}},
		{"tenant move one arg", []string{"tenant", "move", "1"}},
		{"payment record two args", []string{"payment", "record", "1", "8000"}},
		{"bill add no args", []string{"bill", "add"}},
		{"hash-password two args", []string{"hash-password", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testEnv(t)
			_, err := executeCommand(append(tt.args, "--db", path)...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRejectsNonNumericID(t *testing.T) {
	tests := [][]string{
		{"tenant", "show", "abc"},
		{"tenant", "remove", "abc"},
		{"tenant", "move-out", "0"},
		{"payment", "record", "x", "8000", "2025-12"},
		{"bill", "pay", "abc"},
	}

	for _, args := range tests {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			path := testEnv(t)
			_, err := executeCommand(append(args, "--db", path)...)
			if err == nil {
				t.Fatal("expected error for bad ID")
			}
		})
	}
}

func TestPaymentListFilterConflict(t *testing.T) {
	path := testEnv(t)
	_, err := executeCommand("payment", "list", "--period", "2025-12", "--tenant", "1", "--db", path)
	if err == nil {
		t.Fatal("expected error when combining --period and --tenant")
	}
}
