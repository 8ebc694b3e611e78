package payment

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Repository provides read access and the raw insert for payments.
// Payments have no update or delete path.
type Repository struct {
	db db.Querier
}

// NewRepository creates a payment repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const selectJoined = `SELECT p.id, p.tenant_id, p.amount, p.rent_amount, p.utility_amount,
	p.payment_date, p.period_label, p.status, p.reference, p.notes, p.created_at,
	t.name, u.unit_number
	FROM payments p
	LEFT JOIN tenants t ON t.id = p.tenant_id
	LEFT JOIN units u ON u.id = t.unit_id`

// Insert writes p and returns the generated ID. Amounts are converted to cents.
func (r *Repository) Insert(p *Payment) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO payments
		(tenant_id, amount, rent_amount, utility_amount, payment_date, period_label, status, reference, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.TenantID, domain.Cents(p.Amount), optionalCents(p.RentAmount), optionalCents(p.UtilityAmount),
		p.PaymentDate, p.PeriodLabel, p.Status, p.Reference, p.Notes,
	)
	if db.IsForeignKeyViolation(err) {
		return 0, fmt.Errorf("tenant %d: %w", p.TenantID, domain.ErrUnknownTenant)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert id: %w", err)
	}
	return id, nil
}

// GetByID returns a payment by its ID.
func (r *Repository) GetByID(id int64) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRow(selectJoined+" WHERE p.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %d: %w", id, domain.ErrUnknownPayment)
	}
	if err != nil {
		return nil, fmt.Errorf("querying payment %d: %w", id, err)
	}
	return p, nil
}

// ListForPeriod returns payments for a period label, most recently
// recorded first.
func (r *Repository) ListForPeriod(periodLabel string) ([]*Payment, error) {
	return r.list(selectJoined+" WHERE p.period_label = ? ORDER BY p.id DESC", periodLabel)
}

// ListForTenant returns a tenant's payments, most recently recorded first.
func (r *Repository) ListForTenant(tenantID int64) ([]*Payment, error) {
	return r.list(selectJoined+" WHERE p.tenant_id = ? ORDER BY p.id DESC", tenantID)
}

// List returns the newest payments by payment date. A limit of 0 or less
// returns all of them.
func (r *Repository) List(limit int) ([]*Payment, error) {
	query := selectJoined + " ORDER BY p.payment_date DESC, p.id DESC"
	if limit > 0 {
		return r.list(query+" LIMIT ?", limit)
	}
	return r.list(query)
}

// TotalForTenant sums a tenant's payments. No payments sums to zero.
func (r *Repository) TotalForTenant(tenantID int64) (decimal.Decimal, error) {
	var cents int64
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE tenant_id = ?", tenantID,
	).Scan(&cents)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing payments for tenant %d: %w", tenantID, err)
	}
	return domain.FromCents(cents), nil
}

func (r *Repository) list(query string, args ...interface{}) (payments []*Payment, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

func optionalCents(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return domain.Cents(*d)
}
