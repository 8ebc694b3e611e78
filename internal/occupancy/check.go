package occupancy

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
)

// Violation is a unit whose stored flag disagrees with its tenants.
type Violation struct {
	UnitID          int64  `json:"unit_id"`
	UnitNumber      string `json:"unit_number"`
	Flagged         bool   `json:"is_occupied"`
	HasActiveTenant bool   `json:"has_active_tenant"`
}

const violationsSQL = `SELECT id, unit_number, is_occupied, derived FROM (
	SELECT u.id, u.unit_number, u.is_occupied,
		EXISTS(SELECT 1 FROM tenants t WHERE t.unit_id = u.id AND t.is_active = 1) AS derived
	FROM units u
) WHERE is_occupied != derived
ORDER BY unit_number`

// CheckInvariant reports every unit whose occupied flag is wrong. It
// changes nothing; an empty result means the database is consistent.
func (m *Manager) CheckInvariant() ([]Violation, error) {
	return violations(m.db)
}

// Reconcile rewrites every wrong occupied flag from tenant state and
// returns the IDs of the units it fixed. Databases written by older
// versions, or seeded by hand, may need this once.
func (m *Manager) Reconcile() ([]int64, error) {
	var fixed []int64
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		found, err := violations(tx)
		if err != nil {
			return err
		}
		for _, v := range found {
			if err := resync(tx, v.UnitID); err != nil {
				return err
			}
			fixed = append(fixed, v.UnitID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(fixed) > 0 {
		slog.Info("occupancy reconciled", "units_fixed", len(fixed))
	}
	return fixed, nil
}

func violations(q db.Querier) (found []Violation, err error) {
	rows, err := q.Query(violationsSQL)
	if err != nil {
		return nil, fmt.Errorf("checking occupancy: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.UnitID, &v.UnitNumber, &v.Flagged, &v.HasActiveTenant); err != nil {
			return nil, fmt.Errorf("scanning occupancy row: %w", err)
		}
		found = append(found, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occupancy rows: %w", err)
	}

	return found, nil
}
