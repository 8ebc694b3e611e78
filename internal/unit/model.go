// Package unit provides the rental unit domain model and data access.
package unit

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Unit is a rentable apartment. Occupied is derived from tenant state and
// is only written by the occupancy package.
type Unit struct {
	ID          int64           `json:"id"`
	Number      string          `json:"unit_number"`
	Type        string          `json:"unit_type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Occupied    bool            `json:"is_occupied"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Input holds the admin-supplied fields for a new unit.
type Input struct {
	Number      string          `json:"unit_number" validate:"required,max=20"`
	Type        string          `json:"unit_type" validate:"required,max=50"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"amount"`
}

func (in Input) normalize() Input {
	in.Number = strings.TrimSpace(in.Number)
	in.Type = strings.TrimSpace(in.Type)
	return in
}

// scanUnit scans a unit from a database row.
func scanUnit(row interface{ Scan(...interface{}) error }) (*Unit, error) {
	var u Unit
	var rent int64
	if err := row.Scan(&u.ID, &u.Number, &u.Type, &rent, &u.Occupied, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.MonthlyRent = domain.FromCents(rent)
	return &u, nil
}
