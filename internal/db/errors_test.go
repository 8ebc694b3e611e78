package db

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.Exec(`INSERT INTO units (unit_number) VALUES ('101')`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := d.Exec(`INSERT INTO units (unit_number) VALUES ('101')`)
	if err == nil {
		t.Fatal("expected duplicate unit_number to fail")
	}

	wrapped := fmt.Errorf("inserting unit: %w", err)
	if !IsUniqueViolation(wrapped) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", wrapped)
	}
	if IsForeignKeyViolation(wrapped) {
		t.Error("unique violation reported as foreign key violation")
	}
	if IsUniqueViolation(errors.New("UNIQUE constraint failed")) {
		t.Error("plain error should not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(`INSERT INTO payments (tenant_id, amount, payment_date, period_label, reference)
		VALUES (999, 100, '2025-12-01', '2025-12', 'r1')`)
	if err == nil {
		t.Fatal("expected payment for missing tenant to fail")
	}
	if !IsForeignKeyViolation(err) {
		t.Errorf("IsForeignKeyViolation(%v) = false, want true", err)
	}
}
