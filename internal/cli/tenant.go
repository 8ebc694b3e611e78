package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/payment"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/tenant"
)

func newTenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	cmd.AddCommand(
		newTenantAssignCmd(),
		newTenantListCmd(),
		newTenantShowCmd(),
		newTenantMoveCmd(),
		newTenantMoveOutCmd(),
		newTenantRemoveCmd(),
	)

	return cmd
}

func newTenantAssignCmd() *cobra.Command {
	var in tenant.Input

	cmd := &cobra.Command{
		Use:     "assign <unit> <name>",
		Short:   "Move a new tenant into a vacant unit",
		Example: `  vv tenant assign 101 "John Doe" --contact 09171234567 --lease-start 2025-12-01`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[1]
			return runTenantAssign(cmd.OutOrStdout(), args[0], in)
		},
	}

	cmd.Flags().StringVar(&in.Contact, "contact", "", "phone number")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.LeaseStart, "lease-start", "", "move-in date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&in.LeaseEnd, "lease-end", "", "lease end date, YYYY-MM-DD")

	return cmd
}

func runTenantAssign(w io.Writer, unitRef string, in tenant.Input) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := resolveUnit(a, unitRef)
	if err != nil {
		return err
	}

	id, err := a.Occupancy.AssignTenant(u.ID, in)
	if err != nil {
		return err
	}

	t, err := a.Tenants.GetByID(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, t)
	}
	_, err = fmt.Fprintf(w, "Tenant #%d %s assigned to unit %s.\n", t.ID, t.Name, u.Number)
	return err
}

func newTenantListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTenantList(cmd.OutOrStdout(), all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include tenants who have moved out")

	return cmd
}

func runTenantList(w io.Writer, all bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	tenants, err := a.Tenants.List(tenant.ListOptions{ActiveOnly: !all})
	if err != nil {
		return err
	}

	if isJSON() {
		if tenants == nil {
			tenants = []*tenant.Tenant{}
		}
		return printJSON(w, tenants)
	}

	if len(tenants) == 0 {
		_, err := fmt.Fprintln(w, "No tenants found.")
		return err
	}

	t := newTable(w, "ID", "NAME", "UNIT", "TYPE", "CONTACT", "LEASE START", "STATUS")
	for _, tn := range tenants {
		unitNumber, unitType := tn.UnitNumber, tn.UnitType
		if unitNumber == "" {
			unitNumber, unitType = "-", "-"
		}
		t.row(strconv.FormatInt(tn.ID, 10), truncate(tn.Name, 30), unitNumber, unitType,
			orDash(&tn.Contact), orDash(&tn.LeaseStart), tenantStatus(tn))
	}
	if err := t.flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nTotal: %d tenants\n", len(tenants))
	return err
}

func newTenantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tenant with payment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tenant", args[0])
			if err != nil {
				return err
			}
			return runTenantShow(cmd.OutOrStdout(), id)
		},
	}
}

func runTenantShow(w io.Writer, id int64) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	t, err := a.Tenants.GetByID(id)
	if err != nil {
		return err
	}
	payments, err := a.Payments.PaymentsForTenant(id)
	if err != nil {
		return err
	}
	total, err := a.Payments.TotalPaidByTenant(id)
	if err != nil {
		return err
	}

	if isJSON() {
		if payments == nil {
			payments = []*payment.Payment{}
		}
		return printJSON(w, map[string]interface{}{
			"tenant":     t,
			"payments":   payments,
			"total_paid": total,
		})
	}

	unitLabel := "-"
	if t.UnitNumber != "" {
		unitLabel = t.UnitNumber + " (" + t.UnitType + ")"
	}

	lines := []string{
		fmt.Sprintf("Tenant #%d", t.ID),
		fmt.Sprintf("  Name:      %s", t.Name),
		fmt.Sprintf("  Unit:      %s", unitLabel),
		fmt.Sprintf("  Contact:   %s", orDash(&t.Contact)),
		fmt.Sprintf("  Email:     %s", orDash(&t.Email)),
		fmt.Sprintf("  Lease:     %s to %s", orDash(&t.LeaseStart), orDash(t.LeaseEnd)),
		fmt.Sprintf("  Status:    %s", tenantStatus(t)),
		fmt.Sprintf("  Paid:      %s in %d payment(s)", formatMoney(total), len(payments)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(payments) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printPaymentTable(w, payments)
}

func newTenantMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <unit>",
		Short: "Move a tenant to another vacant unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tenant", args[0])
			if err != nil {
				return err
			}
			return runTenantMove(cmd.OutOrStdout(), id, args[1])
		},
	}
}

func runTenantMove(w io.Writer, id int64, unitRef string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := resolveUnit(a, unitRef)
	if err != nil {
		return err
	}
	if err := a.Occupancy.ReassignTenant(id, u.ID); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": id, "unit_id": u.ID, "unit_number": u.Number})
	}
	_, err = fmt.Fprintf(w, "Tenant #%d now in unit %s.\n", id, u.Number)
	return err
}

func newTenantMoveOutCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "move-out <id>",
		Short: "End a tenancy, keeping the tenant's history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tenant", args[0])
			if err != nil {
				return err
			}
			return runTenantMoveOut(cmd.OutOrStdout(), id, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "move-out date, YYYY-MM-DD (default: today)")

	return cmd
}

func runTenantMoveOut(w io.Writer, id int64, date string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := a.Occupancy.EndTenancy(id, date); err != nil {
		return err
	}

	t, err := a.Tenants.GetByID(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, t)
	}
	_, err = fmt.Fprintf(w, "Tenant #%d %s moved out on %s.\n", t.ID, t.Name, orDash(t.MoveOutDate))
	return err
}

func newTenantRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a tenant and all their payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tenant", args[0])
			if err != nil {
				return err
			}
			return runTenantRemove(cmd.OutOrStdout(), id)
		},
	}
}

func runTenantRemove(w io.Writer, id int64) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	if err := a.Occupancy.RemoveTenant(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": id, "removed": true})
	}
	_, err = fmt.Fprintf(w, "Tenant #%d removed.\n", id)
	return err
}

func tenantStatus(t *tenant.Tenant) string {
	if t.Active {
		return "Active"
	}
	return "Moved out"
}
