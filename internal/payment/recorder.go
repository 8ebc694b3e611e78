package payment

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/db"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/tenant"
)

// Recorder appends rent receipts to the ledger and answers per-tenant and
// per-period questions about it.
type Recorder struct {
	db           *sql.DB
	now          func() time.Time
	newReference func() string
}

// NewRecorder creates a Recorder backed by d.
func NewRecorder(d *sql.DB) *Recorder {
	return &Recorder{db: d, now: time.Now, newReference: uuid.NewString}
}

// RecordOptions carries the optional fields of a payment.
type RecordOptions struct {
	Breakdown   *Breakdown
	Status      string // default "Paid"
	Notes       string
	PaymentDate string // YYYY-MM-DD, default today
}

type recordInput struct {
	Amount      decimal.Decimal `json:"amount" validate:"amount"`
	Rent        decimal.Decimal `json:"rent_amount" validate:"amount_part"`
	Utility     decimal.Decimal `json:"utility_amount" validate:"amount_part"`
	PeriodLabel string          `json:"period_label" validate:"required,max=20"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Status      string          `json:"status" validate:"required,max=20"`
	Notes       string          `json:"notes" validate:"max=500"`
}

// RecordPayment records a payment of amount against tenantID for the given
// period label (e.g. "2025-12"). Several payments for the same period are
// allowed.
func (r *Recorder) RecordPayment(tenantID int64, amount decimal.Decimal, periodLabel string, breakdown *Breakdown) (int64, error) {
	return r.Record(tenantID, amount, periodLabel, RecordOptions{Breakdown: breakdown})
}

// Record is RecordPayment with the full set of options.
func (r *Recorder) Record(tenantID int64, amount decimal.Decimal, periodLabel string, opts RecordOptions) (int64, error) {
	in := recordInput{
		Amount:      amount,
		PeriodLabel: strings.TrimSpace(periodLabel),
		PaymentDate: strings.TrimSpace(opts.PaymentDate),
		Status:      strings.TrimSpace(opts.Status),
		Notes:       strings.TrimSpace(opts.Notes),
	}
	if b := opts.Breakdown; b != nil {
		in.Rent, in.Utility = b.Rent, b.Utility
	}
	if in.PaymentDate == "" {
		in.PaymentDate = r.now().Format(domain.DateLayout)
	}
	if in.Status == "" {
		in.Status = StatusPaid
	}
	if err := domain.Validate(in); err != nil {
		return 0, err
	}

	p := &Payment{
		TenantID:    tenantID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate,
		PeriodLabel: in.PeriodLabel,
		Status:      in.Status,
		Reference:   r.newReference(),
		Notes:       in.Notes,
	}
	if b := opts.Breakdown; b != nil {
		rent, utility := b.Rent, b.Utility
		p.RentAmount = &rent
		p.UtilityAmount = &utility
	}

	var id int64
	err := db.WithTx(r.db, func(tx *sql.Tx) error {
		exists, err := tenant.NewRepository(tx).Exists(tenantID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("tenant %d: %w", tenantID, domain.ErrUnknownTenant)
		}

		id, err = NewRepository(tx).Insert(p)
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("payment recorded",
		"payment_id", id,
		"tenant_id", tenantID,
		"amount", p.Amount.StringFixed(2),
		"period", p.PeriodLabel,
		"reference", p.Reference,
	)
	return id, nil
}

// TotalPaidByTenant sums every payment made by tenantID. A tenant with no
// payments has paid zero.
func (r *Recorder) TotalPaidByTenant(tenantID int64) (decimal.Decimal, error) {
	if err := r.requireTenant(tenantID); err != nil {
		return decimal.Zero, err
	}
	return NewRepository(r.db).TotalForTenant(tenantID)
}

// PaymentsForPeriod returns the payments recorded for a period label,
// most recently recorded first.
func (r *Recorder) PaymentsForPeriod(periodLabel string) ([]*Payment, error) {
	return NewRepository(r.db).ListForPeriod(strings.TrimSpace(periodLabel))
}

// PaymentsForTenant returns a tenant's payments, most recently recorded first.
func (r *Recorder) PaymentsForTenant(tenantID int64) ([]*Payment, error) {
	if err := r.requireTenant(tenantID); err != nil {
		return nil, err
	}
	return NewRepository(r.db).ListForTenant(tenantID)
}

// List returns the newest payments across all tenants.
func (r *Recorder) List(limit int) ([]*Payment, error) {
	return NewRepository(r.db).List(limit)
}

// Get returns a single payment.
func (r *Recorder) Get(id int64) (*Payment, error) {
	return NewRepository(r.db).GetByID(id)
}

func (r *Recorder) requireTenant(tenantID int64) error {
	exists, err := tenant.NewRepository(r.db).Exists(tenantID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("tenant %d: %w", tenantID, domain.ErrUnknownTenant)
	}
	return nil
}
