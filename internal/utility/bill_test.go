package utility

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

func TestAddAndGet(t *testing.T) {
	repo := testRepo(t)

	b, err := repo.Add(BillInput{
		Type:         " Electricity ",
		Amount:       decimal.RequireFromString("15432.10"),
		BillingMonth: "2025-12",
		DueDate:      "2026-01-10",
	})
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, "Electricity", b.Type)
	assert.Equal(t, "15432.10", b.Amount.StringFixed(2))
	require.NotNil(t, b.DueDate)
	assert.Equal(t, "2026-01-10", *b.DueDate)
	assert.False(t, b.Paid)

	_, err = repo.GetByID(9999)
	assert.ErrorIs(t, err, domain.ErrUnknownBill)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name      string
		in        BillInput
		wantField string
	}{
		{"missing type", BillInput{Amount: decimal.NewFromInt(100), BillingMonth: "2025-12"}, "bill_type"},
		{"zero amount", BillInput{Type: "Water", BillingMonth: "2025-12"}, "amount"},
		{"missing month", BillInput{Type: "Water", Amount: decimal.NewFromInt(100)}, "billing_month"},
		{"bad due date", BillInput{Type: "Water", Amount: decimal.NewFromInt(100), BillingMonth: "2025-12", DueDate: "soon"}, "due_date"},
		{"sub-cent amount", BillInput{Type: "Water", Amount: decimal.RequireFromString("0.004"), BillingMonth: "2025-12"}, "amount"},
		{"huge amount", BillInput{Type: "Water", Amount: decimal.RequireFromString("1e17"), BillingMonth: "2025-12"}, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testRepo(t).Add(tt.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestList(t *testing.T) {
	repo := testRepo(t)
	for _, in := range []BillInput{
		{Type: "Water", Amount: decimal.NewFromInt(3000), BillingMonth: "2025-11"},
		{Type: "Electricity", Amount: decimal.NewFromInt(15000), BillingMonth: "2025-12"},
		{Type: "Water", Amount: decimal.NewFromInt(3200), BillingMonth: "2025-12"},
	} {
		_, err := repo.Add(in)
		require.NoError(t, err)
	}

	all, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-12", all[0].BillingMonth)
	assert.Equal(t, "Water", all[0].Type, "newest first within a month")
	assert.Equal(t, "2025-11", all[2].BillingMonth)

	dec, err := repo.List("2025-12")
	require.NoError(t, err)
	assert.Len(t, dec, 2)

	none, err := repo.List("2020-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMarkPaidAndDelete(t *testing.T) {
	repo := testRepo(t)
	b, err := repo.Add(BillInput{Type: "Internet", Amount: decimal.NewFromInt(1999), BillingMonth: "2025-12"})
	require.NoError(t, err)

	require.NoError(t, repo.MarkPaid(b.ID))
	got, err := repo.GetByID(b.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)

	require.NoError(t, repo.Delete(b.ID))
	assert.ErrorIs(t, repo.Delete(b.ID), domain.ErrUnknownBill)
	assert.ErrorIs(t, repo.MarkPaid(b.ID), domain.ErrUnknownBill)
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}
