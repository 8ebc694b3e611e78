package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes aligned columns. The first write error is kept and
// returned by flush.
type table struct {
	tw  *tabwriter.Writer
	err error
}

// newTable starts a table with a header row and a dashed separator.
func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	seps := make([]string, len(headers))
	for i, h := range headers {
		seps[i] = strings.Repeat("-", len(h))
	}
	t.row(seps...)
	return t
}

func (t *table) row(cols ...string) {
	if t.err != nil {
		return
	}
	if _, err := fmt.Fprintln(t.tw, strings.Join(cols, "\t")); err != nil {
		t.err = fmt.Errorf("writing table row: %w", err)
	}
}

func (t *table) flush() error {
	if t.err != nil {
		return t.err
	}
	if err := t.tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// formatMoney formats an amount in pesos with two decimals and commas,
// e.g. ₱12,500.00.
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-2:]
	out := "₱" + groupThousands(whole) + "." + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands adds commas to a string of digits.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

// bar renders value as a run of blocks scaled so max fills width.
func bar(value, max decimal.Decimal, width int) string {
	if !max.IsPositive() || !value.IsPositive() {
		return ""
	}
	n := int(value.Mul(decimal.NewFromInt(int64(width))).Div(max).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// orDash returns s, or "-" when s is nil or empty.
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
