package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput(nil, args...)
}

func executeCommandWithInput(in io.Reader, args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// testEnv points HOME at a temp dir, clears the VV_ environment and
// returns a fresh database path.
func testEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"VV_DB", "VV_DEV_MODE", "VV_USERNAME", "VV_PASSWORD"} {
		t.Setenv(key, "")
	}
	return filepath.Join(home, "test.db")
}

// run executes args against the database at path and fails the test on error.
func run(t *testing.T, path string, args ...string) string {
	t.Helper()
	out, err := executeCommand(append(args, "--db", path)...)
	if err != nil {
		t.Fatalf("vv %s: %v\noutput: %s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	testEnv(t)
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"unit", "tenant", "payment", "bill", "report", "seed", "status"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help missing %q command", sub)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"db", "user"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestInvalidFormat(t *testing.T) {
	path := testEnv(t)
	_, err := executeCommand("unit", "list", "--format", "xml", "--db", path)
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "vv dev" {
		t.Errorf("version output = %q", out)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseID("tenant", tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseID(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseID(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
