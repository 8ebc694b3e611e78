package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"8000", 800000},
		{"8000.00", 800000},
		{"0.01", 1},
		{"12.345", 1235},
		{"12.344", 1234},
		{"-3.005", -301},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Cents(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFromCents(t *testing.T) {
	got := FromCents(2400000)
	assert.True(t, got.Equal(decimal.RequireFromString("24000.00")), "got %s", got)
	assert.Equal(t, "24000.00", got.StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "8000", "8000", false},
		{"decimals", "8000.50", "8000.5", false},
		{"commas", "12,500.00", "12500", false},
		{"peso sign", "₱9,000", "9000", false},
		{"spaces", "  42 ", "42", false},
		{"empty", "", "", true},
		{"letters", "eight thousand", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount("amount", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

type sampleInput struct {
	Name   string          `json:"name" validate:"required"`
	Email  string          `json:"email" validate:"omitempty,email"`
	Amount decimal.Decimal `json:"amount" validate:"amount"`
	Part   decimal.Decimal `json:"part" validate:"amount_part"`
	Date   string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidate(t *testing.T) {
	valid := sampleInput{Name: "John Doe", Amount: decimal.NewFromInt(8000)}

	tests := []struct {
		name      string
		mutate    func(in *sampleInput)
		wantField string
	}{
		{"valid", func(in *sampleInput) {}, ""},
		{"missing name", func(in *sampleInput) { in.Name = "" }, "name"},
		{"bad email", func(in *sampleInput) { in.Email = "not-an-email" }, "email"},
		{"zero amount", func(in *sampleInput) { in.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(in *sampleInput) { in.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"sub-cent amount", func(in *sampleInput) { in.Amount = decimal.RequireFromString("0.004") }, "amount"},
		{"half cent rounds up", func(in *sampleInput) { in.Amount = decimal.RequireFromString("0.005") }, ""},
		{"huge amount", func(in *sampleInput) { in.Amount = decimal.RequireFromString("1e17") }, "amount"},
		{"amount at ceiling", func(in *sampleInput) { in.Amount = MaxAmount }, ""},
		{"negative part", func(in *sampleInput) { in.Part = decimal.NewFromInt(-1) }, "part"},
		{"huge part", func(in *sampleInput) { in.Part = decimal.RequireFromString("1e17") }, "part"},
		{"positive part", func(in *sampleInput) { in.Part = decimal.NewFromInt(500) }, ""},
		{"bad date", func(in *sampleInput) { in.Date = "12/01/2025" }, "date"},
		{"good date", func(in *sampleInput) { in.Date = "2025-12-01" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := Validate(in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"8000", false},
		{"0.01", false},
		{"0.005", false},
		{"1000000000", false},
		{"0", true},
		{"0.004", true},
		{"-8000", true},
		{"1000000000.01", true},
		{"1e17", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := CheckAmount("monthly_rent", decimal.RequireFromString(tt.in))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "monthly_rent", ve.Field)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("monthly_rent", "must be a number")
	assert.Equal(t, "invalid monthly_rent: must be a number", err.Error())

	wrapped := fmt.Errorf("adding unit: %w", err)
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(ErrUnknownUnit))
}
