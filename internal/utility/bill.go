// Package utility tracks the utility bills the complex itself owes
// (electricity, water, internet) by billing month.
package utility

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Bill is one utility bill.
type Bill struct {
	ID           int64           `json:"id"`
	Type         string          `json:"bill_type"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month"`
	DueDate      *string         `json:"due_date,omitempty"`
	Paid         bool            `json:"paid"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BillInput holds the fields for a new bill. BillingMonth is a period
// label such as "2025-12".
type BillInput struct {
	Type         string          `json:"bill_type" validate:"required,max=50"`
	Amount       decimal.Decimal `json:"amount" validate:"amount"`
	BillingMonth string          `json:"billing_month" validate:"required,max=20"`
	DueDate      string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// Repository provides CRUD operations for utility bills.
type Repository struct {
	db db.Querier
}

// NewRepository creates a utility bill repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const selectColumns = `id, bill_type, amount, billing_month, due_date, paid, created_at`

// Add records a new unpaid bill.
func (r *Repository) Add(in BillInput) (*Bill, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.BillingMonth = strings.TrimSpace(in.BillingMonth)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	var due interface{}
	if in.DueDate != "" {
		due = in.DueDate
	}

	result, err := r.db.Exec(
		"INSERT INTO utility_bills (bill_type, amount, billing_month, due_date) VALUES (?, ?, ?, ?)",
		in.Type, domain.Cents(in.Amount), in.BillingMonth, due,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting utility bill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a bill by its ID.
func (r *Repository) GetByID(id int64) (*Bill, error) {
	query := fmt.Sprintf("SELECT %s FROM utility_bills WHERE id = ?", selectColumns)
	b, err := scanBill(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %d: %w", id, domain.ErrUnknownBill)
	}
	if err != nil {
		return nil, fmt.Errorf("querying bill %d: %w", id, err)
	}
	return b, nil
}

// List returns bills for a billing month, or every bill when month is
// empty. Newest months come first.
func (r *Repository) List(month string) (bills []*Bill, err error) {
	query := fmt.Sprintf("SELECT %s FROM utility_bills", selectColumns)
	var args []interface{}
	if month = strings.TrimSpace(month); month != "" {
		query += " WHERE billing_month = ?"
		args = append(args, month)
	}
	query += " ORDER BY billing_month DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing utility bills: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning utility bill: %w", err)
		}
		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating utility bills: %w", err)
	}

	return bills, nil
}

// MarkPaid flags a bill as paid.
func (r *Repository) MarkPaid(id int64) error {
	result, err := r.db.Exec("UPDATE utility_bills SET paid = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking bill paid: %w", err)
	}
	return expectOne(result, id)
}

// Delete removes a bill.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM utility_bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}
	return expectOne(result, id)
}

func expectOne(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bill %d: %w", id, domain.ErrUnknownBill)
	}
	return nil
}

func scanBill(row interface{ Scan(...interface{}) error }) (*Bill, error) {
	var b Bill
	var amount int64
	var due sql.NullString
	if err := row.Scan(&b.ID, &b.Type, &amount, &b.BillingMonth, &due, &b.Paid, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Amount = domain.FromCents(amount)
	if due.Valid {
		b.DueDate = &due.String
	}
	return &b, nil
}
