package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"zero", "0", "₱0.00"},
		{"small", "999", "₱999.00"},
		{"thousands", "12500", "₱12,500.00"},
		{"centavos", "4520.75", "₱4,520.75"},
		{"rounds", "1234567.891", "₱1,234,567.89"},
		{"negative", "-1234.5", "-₱1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatMoney(decimal.RequireFromString(tt.amount))
			if result != tt.expected {
				t.Errorf("formatMoney(%s) = %q, want %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[string]string{
		"1":       "1",
		"100":     "100",
		"1000":    "1,000",
		"250000":  "250,000",
		"1000000": "1,000,000",
	}

	for in, want := range tests {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBar(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name       string
		value, max decimal.Decimal
		want       int
	}{
		{"half", d(50), d(100), 20},
		{"full", d(100), d(100), 40},
		{"tiny still shows", d(1), d(1000), 1},
		{"over max capped", d(200), d(100), 40},
		{"zero", d(0), d(100), 0},
		{"zero max", d(10), d(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bar(tt.value, tt.max, 40)
			if n := strings.Count(got, "█"); n != tt.want {
				t.Errorf("bar(%s, %s) has %d blocks, want %d", tt.value, tt.max, n, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short", "Ana Reyes", 30, "Ana Reyes"},
		{"exact", "Ana Reyes", 9, "Ana Reyes"},
		{"long", "Juan Dela Cruz", 8, "Juan ..."},
		{"multibyte", "Señora Peña Dela Cruz", 10, "Señora ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestOrDash(t *testing.T) {
	empty, set := "", "2025-12-01"
	if got := orDash(nil); got != "-" {
		t.Errorf("orDash(nil) = %q", got)
	}
	if got := orDash(&empty); got != "-" {
		t.Errorf("orDash(empty) = %q", got)
	}
	if got := orDash(&set); got != set {
		t.Errorf("orDash(set) = %q", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := newTable(&buf, "UNIT", "TYPE")
	tbl.row("101", "Studio")
	if err := tbl.flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "----") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "101") || !strings.Contains(lines[2], "Studio") {
		t.Errorf("row line = %q", lines[2])
	}
}
