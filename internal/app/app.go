// Package app builds the database handle and the record services on top
// of it. Create one App at startup and Close it on exit.
package app

import (
	"database/sql"
	"fmt"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/occupancy"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/report"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/tenant"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/unit"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/utility"
)

// App holds the open database and every service that uses it.
type App struct {
	DB        *sql.DB
	Units     *unit.Repository
	Tenants   *tenant.Repository
	Occupancy *occupancy.Manager
	Payments  *payment.Recorder
	Bills     *utility.Repository
	Reports   *report.Reporter
}

// Open opens the database at path (creating and migrating it if needed)
// and wires the services.
func Open(path string) (*App, error) {
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

// New wires the services around an already open database.
func New(d *sql.DB) *App {
	return &App{
		DB:        d,
		Units:     unit.NewRepository(d),
		Tenants:   tenant.NewRepository(d),
		Occupancy: occupancy.NewManager(d),
		Payments:  payment.NewRecorder(d),
		Bills:     utility.NewRepository(d),
		Reports:   report.New(d),
	}
}

// Close releases the database.
func (a *App) Close() error {
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
