// Package occupancy keeps each unit's occupied flag in step with its tenants.
//
// A unit is occupied exactly when an active tenant references it. Every
// tenant lifecycle change (assign, remove, move, move-out) and unit deletion
// goes through Manager, which applies the change and the flag update in one
// transaction. Nothing else writes units.is_occupied.
package occupancy

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/tenant"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/unit"
)

// Manager applies tenant lifecycle changes and maintains unit occupancy.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for default lease and move-out dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager backed by d.
func NewManager(d *sql.DB, opts ...Option) *Manager {
	m := &Manager{db: d, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AssignTenant creates a tenant in unitID and marks the unit occupied.
// Availability is checked again inside the write transaction, so a unit
// claimed since it was listed yields ErrUnitUnavailable.
func (m *Manager) AssignTenant(unitID int64, in tenant.Input) (int64, error) {
	in = in.Normalize()
	if in.LeaseStart == "" {
		in.LeaseStart = m.today()
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var tenantID int64
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		u, err := unit.NewRepository(tx).GetByID(unitID)
		if err != nil {
			return err
		}
		if u.Occupied {
			return fmt.Errorf("unit %s: %w", u.Number, domain.ErrUnitUnavailable)
		}

		tenantID, err = tenant.NewRepository(tx).Insert(unitID, in)
		if err != nil {
			return err
		}

		return claim(tx, u)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("tenant assigned", "tenant_id", tenantID, "unit_id", unitID, "name", in.Name)
	return tenantID, nil
}

// RemoveTenant deletes a tenant and its payments, freeing its unit.
func (m *Manager) RemoveTenant(tenantID int64) error {
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		tenants := tenant.NewRepository(tx)
		t, err := tenants.GetByID(tenantID)
		if err != nil {
			return err
		}

		if err := tenants.Delete(tenantID); err != nil {
			return err
		}

		if t.UnitID == nil {
			return nil
		}
		return resync(tx, *t.UnitID)
	})
	if err != nil {
		return err
	}

	slog.Info("tenant removed", "tenant_id", tenantID)
	return nil
}

// ReassignTenant moves an active tenant to newUnitID, freeing the old unit
// and claiming the new one. Moving a tenant to the unit it already holds
// does nothing.
func (m *Manager) ReassignTenant(tenantID, newUnitID int64) error {
	moved := false
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		tenants := tenant.NewRepository(tx)
		t, err := tenants.GetByID(tenantID)
		if err != nil {
			return err
		}
		if !t.Active {
			return domain.NewValidationError("tenant", fmt.Sprintf("%s has moved out", t.Name))
		}

		u, err := unit.NewRepository(tx).GetByID(newUnitID)
		if err != nil {
			return err
		}
		if t.UnitID != nil && *t.UnitID == newUnitID {
			return nil
		}
		if u.Occupied {
			return fmt.Errorf("unit %s: %w", u.Number, domain.ErrUnitUnavailable)
		}

		if err := tenants.UpdateUnit(tenantID, newUnitID); err != nil {
			return err
		}
		if t.UnitID != nil {
			if err := resync(tx, *t.UnitID); err != nil {
				return err
			}
		}
		moved = true
		return claim(tx, u)
	})
	if err != nil {
		return err
	}

	if moved {
		slog.Info("tenant reassigned", "tenant_id", tenantID, "unit_id", newUnitID)
	}
	return nil
}

// EndTenancy records a move-out: the tenant becomes inactive, keeps its
// payment history, and its unit is freed. An empty moveOutDate means today.
func (m *Manager) EndTenancy(tenantID int64, moveOutDate string) error {
	if moveOutDate == "" {
		moveOutDate = m.today()
	}
	if _, err := time.Parse(domain.DateLayout, moveOutDate); err != nil {
		return domain.NewValidationError("move_out_date", "must be a date in YYYY-MM-DD format")
	}

	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		tenants := tenant.NewRepository(tx)
		t, err := tenants.GetByID(tenantID)
		if err != nil {
			return err
		}
		if !t.Active {
			return domain.NewValidationError("tenant", fmt.Sprintf("%s has already moved out", t.Name))
		}
		if moveOutDate < t.LeaseStart {
			return domain.NewValidationError("move_out_date", "must not be before lease start "+t.LeaseStart)
		}

		if err := tenants.Deactivate(tenantID, moveOutDate); err != nil {
			return err
		}

		if t.UnitID == nil {
			return nil
		}
		return resync(tx, *t.UnitID)
	})
	if err != nil {
		return err
	}

	slog.Info("tenancy ended", "tenant_id", tenantID, "move_out_date", moveOutDate)
	return nil
}

// DeleteUnit removes a unit that no active tenant references. Former
// tenants keep their rows with the unit reference cleared.
func (m *Manager) DeleteUnit(unitID int64) error {
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		u, err := unit.NewRepository(tx).GetByID(unitID)
		if err != nil {
			return err
		}

		occupied, err := hasActiveTenant(tx, unitID)
		if err != nil {
			return err
		}
		if occupied {
			return fmt.Errorf("unit %s: %w", u.Number, domain.ErrUnitOccupied)
		}

		if _, err := tx.Exec("DELETE FROM units WHERE id = ?", unitID); err != nil {
			return fmt.Errorf("deleting unit: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("unit deleted", "unit_id", unitID)
	return nil
}

func (m *Manager) today() string {
	return m.now().Format(domain.DateLayout)
}

// claim marks u occupied. The update only matches a vacant unit, so a
// concurrent claim surfaces as ErrUnitUnavailable instead of an overwrite.
func claim(tx *sql.Tx, u *unit.Unit) error {
	result, err := tx.Exec("UPDATE units SET is_occupied = 1 WHERE id = ? AND is_occupied = 0", u.ID)
	if err != nil {
		return fmt.Errorf("claiming unit %s: %w", u.Number, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("unit %s: %w", u.Number, domain.ErrUnitUnavailable)
	}
	return nil
}

const resyncSQL = `UPDATE units SET is_occupied = EXISTS(
	SELECT 1 FROM tenants WHERE tenants.unit_id = units.id AND tenants.is_active = 1
) WHERE id = ?`

// resync re-derives one unit's flag from its tenants.
func resync(q db.Querier, unitID int64) error {
	if _, err := q.Exec(resyncSQL, unitID); err != nil {
		return fmt.Errorf("updating occupancy for unit %d: %w", unitID, err)
	}
	return nil
}

func hasActiveTenant(q db.Querier, unitID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM tenants WHERE unit_id = ? AND is_active = 1)", unitID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking tenants of unit %d: %w", unitID, err)
	}
	return exists, nil
}
