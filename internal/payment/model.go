// Package payment provides the rent payment ledger: model, data access,
// and the Recorder that appends to it.
package payment

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// StatusPaid is the default payment status.
const StatusPaid = "Paid"

// Payment is an immutable rent receipt. TenantName and UnitNumber are
// joined for display.
type Payment struct {
	ID            int64            `json:"id"`
	TenantID      int64            `json:"tenant_id"`
	TenantName    string           `json:"tenant_name,omitempty"`
	UnitNumber    string           `json:"unit_number,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	RentAmount    *decimal.Decimal `json:"rent_amount,omitempty"`
	UtilityAmount *decimal.Decimal `json:"utility_amount,omitempty"`
	PaymentDate   string           `json:"payment_date"`
	PeriodLabel   string           `json:"period_label"`
	Status        string           `json:"status"`
	Reference     string           `json:"reference"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Breakdown splits a payment into rent and utility components. The parts
// are informational and need not add up to the amount.
type Breakdown struct {
	Rent    decimal.Decimal
	Utility decimal.Decimal
}

// scanPayment scans a payment joined with tenant name and unit number.
func scanPayment(row interface{ Scan(...interface{}) error }) (*Payment, error) {
	var p Payment
	var amount int64
	var rent, utility sql.NullInt64
	var tenantName, unitNumber sql.NullString

	err := row.Scan(
		&p.ID, &p.TenantID, &amount, &rent, &utility,
		&p.PaymentDate, &p.PeriodLabel, &p.Status, &p.Reference, &p.Notes, &p.CreatedAt,
		&tenantName, &unitNumber,
	)
	if err != nil {
		return nil, err
	}

	p.Amount = domain.FromCents(amount)
	if rent.Valid {
		d := domain.FromCents(rent.Int64)
		p.RentAmount = &d
	}
	if utility.Valid {
		d := domain.FromCents(utility.Int64)
		p.UtilityAmount = &d
	}
	p.TenantName = tenantName.String
	p.UnitNumber = unitNumber.String

	return &p, nil
}
