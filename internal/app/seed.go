package app

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/tenant"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/unit"
)

// ErrNotEmpty is returned by Seed when units already exist.
var ErrNotEmpty = errors.New("database already has units")

// SeedResult counts what Seed created.
type SeedResult struct {
	Units    int `json:"units"`
	Tenants  int `json:"tenants"`
	Payments int `json:"payments"`
}

var sampleUnits = []unit.Input{
	{Number: "101", Type: "Studio", MonthlyRent: decimal.NewFromInt(8000)},
	{Number: "102", Type: "1 Bedroom", MonthlyRent: decimal.NewFromInt(12000)},
	{Number: "103", Type: "2 Bedroom", MonthlyRent: decimal.NewFromInt(18000)},
	{Number: "201", Type: "Studio", MonthlyRent: decimal.NewFromInt(8500)},
	{Number: "202", Type: "1 Bedroom", MonthlyRent: decimal.NewFromInt(12500)},
	{Number: "203", Type: "2 Bedroom", MonthlyRent: decimal.NewFromInt(19000)},
	{Number: "301", Type: "Studio", MonthlyRent: decimal.NewFromInt(9000)},
	{Number: "302", Type: "1 Bedroom", MonthlyRent: decimal.NewFromInt(13000)},
}

var sampleTenants = []struct {
	unit     string
	input    tenant.Input
	payments []samplePayment
}{
	{
		unit:  "101",
		input: tenant.Input{Name: "Maria Santos", Contact: "09171234567", Email: "maria.santos@email.com", LeaseStart: "2024-02-01"},
		payments: []samplePayment{
			{"8000", "2024-02-01", "2024-02"},
			{"8000", "2024-03-01", "2024-03"},
			{"8000", "2024-04-01", "2024-04"},
			{"8000", "2024-11-01", "2024-11"},
		},
	},
	{
		unit:  "102",
		input: tenant.Input{Name: "Juan Dela Cruz", Contact: "09281234567", Email: "juan.delacruz@email.com", LeaseStart: "2024-02-15"},
		payments: []samplePayment{
			{"12000", "2024-03-01", "2024-03"},
			{"12000", "2024-04-01", "2024-04"},
			{"12000", "2024-11-01", "2024-11"},
		},
	},
	{
		unit:  "201",
		input: tenant.Input{Name: "Ana Reyes", Contact: "09391234567", Email: "ana.reyes@email.com", LeaseStart: "2024-03-01"},
		payments: []samplePayment{
			{"8500", "2024-03-15", "2024-03"},
			{"8500", "2024-04-15", "2024-04"},
			{"8500", "2024-11-15", "2024-11"},
		},
	},
}

type samplePayment struct {
	amount, date, period string
}

// Seed loads a small sample complex into an empty database. Tenants are
// assigned through the occupancy manager so unit flags come out right.
func (a *App) Seed() (*SeedResult, error) {
	existing, err := a.Units.List(unit.ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrNotEmpty
	}

	var res SeedResult
	unitIDs := make(map[string]int64, len(sampleUnits))
	for _, in := range sampleUnits {
		u, err := a.Units.Insert(in)
		if err != nil {
			return nil, fmt.Errorf("seeding unit %s: %w", in.Number, err)
		}
		unitIDs[u.Number] = u.ID
		res.Units++
	}

	for _, st := range sampleTenants {
		tenantID, err := a.Occupancy.AssignTenant(unitIDs[st.unit], st.input)
		if err != nil {
			return nil, fmt.Errorf("seeding tenant %s: %w", st.input.Name, err)
		}
		res.Tenants++

		for _, sp := range st.payments {
			_, err := a.Payments.Record(tenantID, decimal.RequireFromString(sp.amount), sp.period,
				payment.RecordOptions{PaymentDate: sp.date})
			if err != nil {
				return nil, fmt.Errorf("seeding payment for %s: %w", st.input.Name, err)
			}
			res.Payments++
		}
	}

	return &res, nil
}
