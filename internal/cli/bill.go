package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/utility"
)

func newBillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Track the complex's utility bills",
	}

	cmd.AddCommand(
		newBillAddCmd(),
		newBillListCmd(),
		newBillPayCmd(),
		newBillDeleteCmd(),
	)

	return cmd
}

func newBillAddCmd() *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:     "add <type> <amount> <month>",
		Short:   "Add an unpaid utility bill",
		Example: `  vv bill add Electricity 4520.75 2025-12 --due 2026-01-10`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBillAdd(cmd.OutOrStdout(), args[0], args[1], args[2], due)
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")

	return cmd
}

func runBillAdd(w io.Writer, billType, amountArg, month, due string) error {
	amount, err := domain.ParseAmount("amount", amountArg)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	b, err := a.Bills.Add(utility.BillInput{Type: billType, Amount: amount, BillingMonth: month, DueDate: due})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, b)
	}
	_, err = fmt.Fprintf(w, "Bill #%d added: %s %s for %s\n", b.ID, b.Type, formatMoney(b.Amount), b.BillingMonth)
	return err
}

func newBillListCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List utility bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBillList(cmd.OutOrStdout(), month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only bills for this billing month, e.g. 2025-12")

	return cmd
}

func runBillList(w io.Writer, month string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	bills, err := a.Bills.List(month)
	if err != nil {
		return err
	}

	if isJSON() {
		if bills == nil {
			bills = []*utility.Bill{}
		}
		return printJSON(w, bills)
	}

	if len(bills) == 0 {
		_, err := fmt.Fprintln(w, "No bills found.")
		return err
	}

	t := newTable(w, "ID", "MONTH", "TYPE", "AMOUNT", "DUE", "STATUS")
	for _, b := range bills {
		status := "Unpaid"
		if b.Paid {
			status = "Paid"
		}
		t.row(strconv.FormatInt(b.ID, 10), b.BillingMonth, b.Type, formatMoney(b.Amount), orDash(b.DueDate), status)
	}
	return t.flush()
}

func newBillPayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a bill as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("bill", args[0])
			if err != nil {
				return err
			}
			return runBillPay(cmd.OutOrStdout(), id)
		},
	}
}

func runBillPay(w io.Writer, id int64) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := a.Bills.MarkPaid(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": id, "paid": true})
	}
	_, err = fmt.Fprintf(w, "Bill #%d marked paid.\n", id)
	return err
}

func newBillDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("bill", args[0])
			if err != nil {
				return err
			}
			return runBillDelete(cmd.OutOrStdout(), id)
		},
	}
}

func runBillDelete(w io.Writer, id int64) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := a.Bills.Delete(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": id, "deleted": true})
	}
	_, err = fmt.Fprintf(w, "Bill #%d deleted.\n", id)
	return err
}
