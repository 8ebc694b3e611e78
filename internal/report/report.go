// Package report answers read-only aggregate questions about units,
// tenants, payments and utility bills for dashboards and trend output.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
)

// Reporter runs aggregate queries.
type Reporter struct {
	db  db.Querier
	now func() time.Time
}

// New creates a Reporter.
func New(q db.Querier) *Reporter {
	return &Reporter{db: q, now: time.Now}
}

// Summary is the dashboard overview.
type Summary struct {
	TotalUnits          int             `json:"total_units"`
	OccupiedUnits       int             `json:"occupied_units"`
	VacantUnits         int             `json:"vacant_units"`
	ActiveTenants       int             `json:"active_tenants"`
	PaymentCount        int             `json:"payment_count"`
	TotalCollected      decimal.Decimal `json:"total_collected"`
	AveragePayment      decimal.Decimal `json:"average_payment"`
	ExpectedMonthlyRent decimal.Decimal `json:"expected_monthly_rent"`
	CurrentMonth        string          `json:"current_month"`
	CurrentMonthIncome  decimal.Decimal `json:"current_month_income"`
	UnpaidUtilities     decimal.Decimal `json:"unpaid_utilities"`
}

// MonthlyTotal is the sum of payments for one period label.
type MonthlyTotal struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

// TenantTotal is a tenant ranked by what they have paid.
type TenantTotal struct {
	TenantID     int64           `json:"tenant_id"`
	Name         string          `json:"name"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	PaymentCount int             `json:"payment_count"`
	Total        decimal.Decimal `json:"total"`
}

// Summary computes the dashboard overview. Expected monthly rent is the
// rent of occupied units; current month income counts payments dated in
// the current calendar month.
func (r *Reporter) Summary() (*Summary, error) {
	var s Summary
	var occupiedRent int64
	err := r.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(is_occupied), 0),
		COALESCE(SUM(CASE WHEN is_occupied = 1 THEN monthly_rent ELSE 0 END), 0)
		FROM units`).Scan(&s.TotalUnits, &s.OccupiedUnits, &occupiedRent)
	if err != nil {
		return nil, fmt.Errorf("counting units: %w", err)
	}
	s.VacantUnits = s.TotalUnits - s.OccupiedUnits
	s.ExpectedMonthlyRent = domain.FromCents(occupiedRent)

	if err := r.db.QueryRow("SELECT COUNT(*) FROM tenants WHERE is_active = 1").Scan(&s.ActiveTenants); err != nil {
		return nil, fmt.Errorf("counting tenants: %w", err)
	}

	var collected int64
	err = r.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments").Scan(&s.PaymentCount, &collected)
	if err != nil {
		return nil, fmt.Errorf("summing payments: %w", err)
	}
	s.TotalCollected = domain.FromCents(collected)
	s.AveragePayment = decimal.Zero
	if s.PaymentCount > 0 {
		s.AveragePayment = s.TotalCollected.Div(decimal.NewFromInt(int64(s.PaymentCount))).Round(2)
	}

	s.CurrentMonth = r.now().Format("2006-01")
	var monthIncome int64
	err = r.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE substr(payment_date, 1, 7) = ?",
		s.CurrentMonth,
	).Scan(&monthIncome)
	if err != nil {
		return nil, fmt.Errorf("summing current month: %w", err)
	}
	s.CurrentMonthIncome = domain.FromCents(monthIncome)

	var unpaid int64
	if err := r.db.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM utility_bills WHERE paid = 0").Scan(&unpaid); err != nil {
		return nil, fmt.Errorf("summing unpaid bills: %w", err)
	}
	s.UnpaidUtilities = domain.FromCents(unpaid)

	return &s, nil
}

// MonthlyTotals returns payment sums for the latest limit periods, oldest
// first so they read left to right as a trend. A limit of 0 or less
// returns every period.
func (r *Reporter) MonthlyTotals(limit int) (totals []MonthlyTotal, err error) {
	query := `SELECT period_label, SUM(amount), COUNT(*) FROM payments
		GROUP BY period_label ORDER BY period_label DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying monthly totals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var mt MonthlyTotal
		var cents int64
		if err := rows.Scan(&mt.Period, &cents, &mt.Count); err != nil {
			return nil, fmt.Errorf("scanning monthly total: %w", err)
		}
		mt.Total = domain.FromCents(cents)
		totals = append(totals, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly totals: %w", err)
	}

	for i, j := 0, len(totals)-1; i < j; i, j = i+1, j-1 {
		totals[i], totals[j] = totals[j], totals[i]
	}
	return totals, nil
}

// TopTenants ranks tenants by total paid, highest first.
func (r *Reporter) TopTenants(limit int) (top []TenantTotal, err error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(`SELECT t.id, t.name, COALESCE(u.unit_number, ''), COUNT(p.id), SUM(p.amount)
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		LEFT JOIN units u ON u.id = t.unit_id
		GROUP BY t.id
		ORDER BY SUM(p.amount) DESC, t.name
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top tenants: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var tt TenantTotal
		var cents int64
		if err := rows.Scan(&tt.TenantID, &tt.Name, &tt.UnitNumber, &tt.PaymentCount, &cents); err != nil {
			return nil, fmt.Errorf("scanning tenant total: %w", err)
		}
		tt.Total = domain.FromCents(cents)
		top = append(top, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant totals: %w", err)
	}

	return top, nil
}

// RecentPayments returns the newest payments by payment date.
func (r *Reporter) RecentPayments(limit int) ([]*payment.Payment, error) {
	if limit <= 0 {
		limit = 10
	}
	return payment.NewRepository(r.db).List(limit)
}
