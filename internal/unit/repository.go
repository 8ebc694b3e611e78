package unit

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Repository provides data access for units. It accepts a db.Querier so the
// occupancy manager can use it inside a transaction.
type Repository struct {
	db db.Querier
}

// NewRepository creates a unit repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const selectColumns = `id, unit_number, unit_type, monthly_rent, is_occupied, created_at`

// Insert adds a new, unoccupied unit and returns it with its generated ID.
func (r *Repository) Insert(in Input) (*Unit, error) {
	in = in.normalize()
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		"INSERT INTO units (unit_number, unit_type, monthly_rent) VALUES (?, ?, ?)",
		in.Number, in.Type, domain.Cents(in.MonthlyRent),
	)
	if db.IsUniqueViolation(err) {
		return nil, fmt.Errorf("unit %s: %w", in.Number, domain.ErrDuplicateUnitNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting unit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a unit by its ID.
func (r *Repository) GetByID(id int64) (*Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM units WHERE id = ?", selectColumns)
	u, err := scanUnit(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unit %d: %w", id, domain.ErrUnknownUnit)
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit %d: %w", id, err)
	}
	return u, nil
}

// GetByNumber returns a unit by its unit number, e.g. "101".
func (r *Repository) GetByNumber(number string) (*Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM units WHERE unit_number = ?", selectColumns)
	u, err := scanUnit(r.db.QueryRow(query, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unit %s: %w", number, domain.ErrUnknownUnit)
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit %s: %w", number, err)
	}
	return u, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	AvailableOnly bool
}

// List returns units ordered by unit number.
func (r *Repository) List(opts ListOptions) (units []*Unit, err error) {
	query := fmt.Sprintf("SELECT %s FROM units", selectColumns)
	if opts.AvailableOnly {
		query += " WHERE is_occupied = 0"
	}
	query += " ORDER BY unit_number"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}

	return units, nil
}

// UpdateRent sets the monthly rent for a unit.
func (r *Repository) UpdateRent(id int64, rent decimal.Decimal) error {
	if err := domain.CheckAmount("monthly_rent", rent); err != nil {
		return err
	}

	result, err := r.db.Exec("UPDATE units SET monthly_rent = ? WHERE id = ?", domain.Cents(rent), id)
	if err != nil {
		return fmt.Errorf("updating rent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("unit %d: %w", id, domain.ErrUnknownUnit)
	}

	return nil
}
