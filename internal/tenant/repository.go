package tenant

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// Repository provides data access for tenants. It does not touch unit
// occupancy; lifecycle changes go through the occupancy manager.
type Repository struct {
	db db.Querier
}

// NewRepository creates a tenant repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const selectJoined = `SELECT t.id, t.name, t.contact, t.email, t.unit_id,
	t.lease_start, t.lease_end, t.is_active, t.move_out_date, t.created_at,
	u.unit_number, u.unit_type
	FROM tenants t
	LEFT JOIN units u ON u.id = t.unit_id`

// Insert creates an active tenant referencing unitID and returns its ID.
// Input is expected to be normalized and validated by the caller.
func (r *Repository) Insert(unitID int64, in Input) (int64, error) {
	var leaseEnd interface{}
	if in.LeaseEnd != "" {
		leaseEnd = in.LeaseEnd
	}

	result, err := r.db.Exec(
		`INSERT INTO tenants (name, contact, email, unit_id, lease_start, lease_end, is_active)
		VALUES (?, ?, ?, ?, ?, ?, 1)`,
		in.Name, in.Contact, in.Email, unitID, in.LeaseStart, leaseEnd,
	)
	if db.IsForeignKeyViolation(err) {
		return 0, fmt.Errorf("unit %d: %w", unitID, domain.ErrUnknownUnit)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting tenant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert id: %w", err)
	}
	return id, nil
}

// GetByID returns a tenant with its unit number and type.
func (r *Repository) GetByID(id int64) (*Tenant, error) {
	t, err := scanTenant(r.db.QueryRow(selectJoined+" WHERE t.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %d: %w", id, domain.ErrUnknownTenant)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tenant %d: %w", id, err)
	}
	return t, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	ActiveOnly bool
	UnitID     *int64
}

// List returns tenants joined with their unit, ordered by name.
func (r *Repository) List(opts ListOptions) (tenants []*Tenant, err error) {
	query := selectJoined
	var args []interface{}
	var conditions []string

	if opts.ActiveOnly {
		conditions = append(conditions, "t.is_active = 1")
	}
	if opts.UnitID != nil {
		conditions = append(conditions, "t.unit_id = ?")
		args = append(args, *opts.UnitID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.name, t.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenants: %w", err)
	}

	return tenants, nil
}

// UpdateUnit points a tenant at a different unit.
func (r *Repository) UpdateUnit(id, unitID int64) error {
	result, err := r.db.Exec("UPDATE tenants SET unit_id = ? WHERE id = ?", unitID, id)
	if err != nil {
		return fmt.Errorf("updating tenant unit: %w", err)
	}
	return expectOne(result, id)
}

// Deactivate marks a tenant as moved out on the given date. The unit
// reference is kept as history.
func (r *Repository) Deactivate(id int64, moveOutDate string) error {
	result, err := r.db.Exec(
		"UPDATE tenants SET is_active = 0, move_out_date = ? WHERE id = ?",
		moveOutDate, id,
	)
	if err != nil {
		return fmt.Errorf("deactivating tenant: %w", err)
	}
	return expectOne(result, id)
}

// Delete removes a tenant. Payments cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tenant: %w", err)
	}
	return expectOne(result, id)
}

// Exists reports whether a tenant with id exists.
func (r *Repository) Exists(id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM tenants WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking tenant %d: %w", id, err)
	}
	return exists, nil
}

func expectOne(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant %d: %w", id, domain.ErrUnknownTenant)
	}
	return nil
}
