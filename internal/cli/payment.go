package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"pay"},
		Short:   "Record and list rent payments",
	}

	cmd.AddCommand(
		newPaymentRecordCmd(),
		newPaymentListCmd(),
	)

	return cmd
}

type recordFlags struct {
	rent    string
	utility string
	date    string
	status  string
	notes   string
}

func newPaymentRecordCmd() *cobra.Command {
	var f recordFlags

	cmd := &cobra.Command{
		Use:     "record <tenant-id> <amount> <period>",
		Short:   "Record a payment from a tenant",
		Long:    "Record a payment. Several payments for the same period are allowed.",
		Example: `  vv payment record 3 8000 2025-12 --rent 7500 --utility 500`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseID("tenant", args[0])
			if err != nil {
				return err
			}
			return runPaymentRecord(cmd.OutOrStdout(), tenantID, args[1], args[2], f)
		},
	}

	cmd.Flags().StringVar(&f.rent, "rent", "", "rent part of the amount")
	cmd.Flags().StringVar(&f.utility, "utility", "", "utility part of the amount")
	cmd.Flags().StringVar(&f.date, "date", "", "payment date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.status, "status", payment.StatusPaid, "payment status")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")

	return cmd
}

func runPaymentRecord(w io.Writer, tenantID int64, amountArg, period string, f recordFlags) error {
	amount, err := domain.ParseAmount("amount", amountArg)
	if err != nil {
		return err
	}
	breakdown, err := parseBreakdown(f.rent, f.utility)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	id, err := a.Payments.Record(tenantID, amount, period, payment.RecordOptions{
		Breakdown:   breakdown,
		Status:      f.status,
		Notes:       f.notes,
		PaymentDate: f.date,
	})
	if err != nil {
		return err
	}

	p, err := a.Payments.Get(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, p)
	}
	_, err = fmt.Fprintf(w, "Payment #%d recorded: %s from %s for %s (ref %s)\n",
		p.ID, formatMoney(p.Amount), p.TenantName, p.PeriodLabel, p.Reference)
	return err
}

// parseBreakdown builds a breakdown when either part is given. A missing
// part counts as zero.
func parseBreakdown(rent, utility string) (*payment.Breakdown, error) {
	if rent == "" && utility == "" {
		return nil, nil
	}

	var b payment.Breakdown
	if rent != "" {
		d, err := domain.ParseAmount("rent", rent)
		if err != nil {
			return nil, err
		}
		b.Rent = d
	}
	if utility != "" {
		d, err := domain.ParseAmount("utility", utility)
		if err != nil {
			return nil, err
		}
		b.Utility = d
	}
	return &b, nil
}

type paymentListFlags struct {
	period string
	tenant int64
	limit  int
}

func newPaymentListCmd() *cobra.Command {
	var f paymentListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.period != "" && f.tenant != 0 {
				return fmt.Errorf("--period and --tenant cannot be used together")
			}
			return runPaymentList(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVar(&f.period, "period", "", "only payments for this period, e.g. 2025-12")
	cmd.Flags().Int64Var(&f.tenant, "tenant", 0, "only payments from this tenant ID")
	cmd.Flags().IntVar(&f.limit, "limit", 50, "maximum payments to show (0 for all)")

	return cmd
}

func runPaymentList(w io.Writer, f paymentListFlags) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	var payments []*payment.Payment
	switch {
	case f.period != "":
		payments, err = a.Payments.PaymentsForPeriod(f.period)
	case f.tenant != 0:
		payments, err = a.Payments.PaymentsForTenant(f.tenant)
	default:
		payments, err = a.Payments.List(f.limit)
	}
	if err != nil {
		return err
	}

	if isJSON() {
		if payments == nil {
			payments = []*payment.Payment{}
		}
		return printJSON(w, payments)
	}

	if len(payments) == 0 {
		_, err := fmt.Fprintln(w, "No payments found.")
		return err
	}

	return printPaymentTable(w, payments)
}

func printPaymentTable(w io.Writer, payments []*payment.Payment) error {
	t := newTable(w, "ID", "DATE", "PERIOD", "TENANT", "UNIT", "AMOUNT", "STATUS")
	for _, p := range payments {
		unitNumber := p.UnitNumber
		if unitNumber == "" {
			unitNumber = "-"
		}
		t.row(strconv.FormatInt(p.ID, 10), p.PaymentDate, p.PeriodLabel, truncate(p.TenantName, 30),
			unitNumber, formatMoney(p.Amount), p.Status)
	}
	return t.flush()
}
