package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/report"
)

const trendBarWidth = 40

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries of occupancy and income",
	}

	cmd.AddCommand(
		newReportSummaryCmd(),
		newReportTrendCmd(),
		newReportTopCmd(),
		newReportRecentCmd(),
	)

	return cmd
}

func newReportSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportSummary(cmd.OutOrStdout())
		},
	}
}

func runReportSummary(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	s, err := a.Reports.Summary()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, s)
	}

	lines := []string{
		fmt.Sprintf("Units:              %d (%d occupied, %d vacant)", s.TotalUnits, s.OccupiedUnits, s.VacantUnits),
		fmt.Sprintf("Active tenants:     %d", s.ActiveTenants),
		fmt.Sprintf("Expected rent:      %s/month", formatMoney(s.ExpectedMonthlyRent)),
		fmt.Sprintf("Collected (%s): %s", s.CurrentMonth, formatMoney(s.CurrentMonthIncome)),
		fmt.Sprintf("Total collected:    %s in %d payment(s)", formatMoney(s.TotalCollected), s.PaymentCount),
		fmt.Sprintf("Average payment:    %s", formatMoney(s.AveragePayment)),
		fmt.Sprintf("Unpaid utilities:   %s", formatMoney(s.UnpaidUtilities)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newReportTrendCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show income per period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportTrend(cmd.OutOrStdout(), months)
		},
	}

	cmd.Flags().IntVar(&months, "months", 12, "number of most recent periods (0 for all)")

	return cmd
}

func runReportTrend(w io.Writer, months int) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	totals, err := a.Reports.MonthlyTotals(months)
	if err != nil {
		return err
	}

	if isJSON() {
		if totals == nil {
			totals = []report.MonthlyTotal{}
		}
		return printJSON(w, totals)
	}

	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, "No payments recorded.")
		return err
	}

	peak := decimal.Zero
	for _, mt := range totals {
		peak = decimal.Max(peak, mt.Total)
	}

	t := newTable(w, "PERIOD", "PAYMENTS", "TOTAL", "")
	for _, mt := range totals {
		t.row(mt.Period, strconv.Itoa(mt.Count), formatMoney(mt.Total), bar(mt.Total, peak, trendBarWidth))
	}
	return t.flush()
}

func newReportTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank tenants by total paid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportTop(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "number of tenants")

	return cmd
}

func runReportTop(w io.Writer, limit int) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	top, err := a.Reports.TopTenants(limit)
	if err != nil {
		return err
	}

	if isJSON() {
		if top == nil {
			top = []report.TenantTotal{}
		}
		return printJSON(w, top)
	}

	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No payments recorded.")
		return err
	}

	t := newTable(w, "#", "TENANT", "UNIT", "PAYMENTS", "TOTAL")
	for i, tt := range top {
		unitNumber := tt.UnitNumber
		if unitNumber == "" {
			unitNumber = "-"
		}
		t.row(strconv.Itoa(i+1), truncate(tt.Name, 30), unitNumber, strconv.Itoa(tt.PaymentCount), formatMoney(tt.Total))
	}
	return t.flush()
}

func newReportRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportRecent(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of payments")

	return cmd
}

func runReportRecent(w io.Writer, limit int) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	payments, err := a.Reports.RecentPayments(limit)
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
		_, err := fmt.Fprintln(w, "No payments recorded.")
		return err
	}
	return printPaymentTable(w, payments)
}
