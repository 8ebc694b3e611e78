// Package tenant provides the tenant domain model and data access.
package tenant

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Tenant is a person leasing (or formerly leasing) a unit. UnitNumber and
// UnitType are joined from units for display and are empty when the tenant
// has no unit.
type Tenant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Email       string    `json:"email"`
	UnitID      *int64    `json:"unit_id,omitempty"`
	UnitNumber  string    `json:"unit_number,omitempty"`
	UnitType    string    `json:"unit_type,omitempty"`
	LeaseStart  string    `json:"lease_start"`
	LeaseEnd    *string   `json:"lease_end,omitempty"`
	Active      bool      `json:"is_active"`
	MoveOutDate *string   `json:"move_out_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Input holds the fields supplied when a tenant is assigned to a unit.
// Dates use the YYYY-MM-DD layout.
type Input struct {
	Name       string `json:"name" validate:"required,max=100"`
	Contact    string `json:"contact" validate:"max=50"`
	Email      string `json:"email" validate:"omitempty,email,max=100"`
	LeaseStart string `json:"lease_start" validate:"omitempty,datetime=2006-01-02"`
	LeaseEnd   string `json:"lease_end" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize trims surrounding whitespace from every field.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Email = strings.TrimSpace(in.Email)
	in.LeaseStart = strings.TrimSpace(in.LeaseStart)
	in.LeaseEnd = strings.TrimSpace(in.LeaseEnd)
	return in
}

// Validate checks the field rules and that the lease does not end before
// it starts.
func (in Input) Validate() error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	// Both dates are YYYY-MM-DD, so they order as strings.
	if in.LeaseEnd != "" && in.LeaseStart != "" && in.LeaseEnd < in.LeaseStart {
		return domain.NewValidationError("lease_end", "must not be before lease_start")
	}
	return nil
}

// scanTenant scans a tenant joined with its unit.
func scanTenant(row interface{ Scan(...interface{}) error }) (*Tenant, error) {
	var t Tenant
	var unitID sql.NullInt64
	var unitNumber, unitType, leaseEnd, moveOut sql.NullString

	err := row.Scan(
		&t.ID, &t.Name, &t.Contact, &t.Email, &unitID,
		&t.LeaseStart, &leaseEnd, &t.Active, &moveOut, &t.CreatedAt,
		&unitNumber, &unitType,
	)
	if err != nil {
		return nil, err
	}

	if unitID.Valid {
		t.UnitID = &unitID.Int64
	}
	if leaseEnd.Valid && leaseEnd.String != "" {
		t.LeaseEnd = &leaseEnd.String
	}
	if moveOut.Valid && moveOut.String != "" {
		t.MoveOutDate = &moveOut.String
	}
	t.UnitNumber = unitNumber.String
	t.UnitType = unitType.String

	return &t, nil
}
