package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/app"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/unit"
)

func newUnitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage rental units",
	}

	cmd.AddCommand(
		newUnitAddCmd(),
		newUnitListCmd(),
		newUnitDeleteCmd(),
		newUnitSetRentCmd(),
		newUnitCheckCmd(),
		newUnitReconcileCmd(),
	)

	return cmd
}

func newUnitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <number> <type> <monthly-rent>",
		Short:   "Add a unit",
		Example: `  vv unit add 101 Studio 8000`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitAdd(cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runUnitAdd(w io.Writer, number, unitType, rentArg string) error {
	rent, err := domain.ParseAmount("monthly_rent", rentArg)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := a.Units.Insert(unit.Input{Number: number, Type: unitType, MonthlyRent: rent})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, u)
	}
	_, err = fmt.Fprintf(w, "Unit %s added (#%d): %s, %s/month\n", u.Number, u.ID, u.Type, formatMoney(u.MonthlyRent))
	return err
}

func newUnitListCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitList(cmd.OutOrStdout(), available)
		},
	}

	cmd.Flags().BoolVar(&available, "available", false, "only show vacant units")

	return cmd
}

func runUnitList(w io.Writer, available bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	units, err := a.Units.List(unit.ListOptions{AvailableOnly: available})
	if err != nil {
		return err
	}

	if isJSON() {
		if units == nil {
			units = []*unit.Unit{}
		}
		return printJSON(w, units)
	}

	if len(units) == 0 {
		_, err := fmt.Fprintln(w, "No units found.")
		return err
	}

	t := newTable(w, "ID", "UNIT", "TYPE", "RENT", "STATUS")
	for _, u := range units {
		status := "Available"
		if u.Occupied {
			status = "Occupied"
		}
		t.row(strconv.FormatInt(u.ID, 10), u.Number, u.Type, formatMoney(u.MonthlyRent), status)
	}
	if err := t.flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nTotal: %d units\n", len(units))
	return err
}

func newUnitDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <unit>",
		Short: "Delete a unit with no active tenant",
		Long:  "Delete a unit. Fails while an active tenant lives there; former tenants keep their records.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitDelete(cmd.OutOrStdout(), args[0])
		},
	}
}

func runUnitDelete(w io.Writer, ref string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := resolveUnit(a, ref)
	if err != nil {
		return err
	}
	if err := a.Occupancy.DeleteUnit(u.ID); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": u.ID, "unit_number": u.Number, "deleted": true})
	}
	_, err = fmt.Fprintf(w, "Unit %s deleted.\n", u.Number)
	return err
}

func newUnitSetRentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-rent <unit> <monthly-rent>",
		Short: "Change a unit's monthly rent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitSetRent(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runUnitSetRent(w io.Writer, ref, rentArg string) error {
	rent, err := domain.ParseAmount("monthly_rent", rentArg)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	u, err := resolveUnit(a, ref)
	if err != nil {
		return err
	}
	if err := a.Units.UpdateRent(u.ID, rent); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"id": u.ID, "unit_number": u.Number, "monthly_rent": rent})
	}
	_, err = fmt.Fprintf(w, "Unit %s rent set to %s.\n", u.Number, formatMoney(rent))
	return err
}

func newUnitCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that occupancy flags match tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitCheck(cmd.OutOrStdout())
		},
	}
}

func runUnitCheck(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	found, err := a.Occupancy.CheckInvariant()
	if err != nil {
		return err
	}

	if isJSON() {
		if err := printJSON(w, map[string]interface{}{"consistent": len(found) == 0, "violations": found}); err != nil {
			return err
		}
	} else if len(found) == 0 {
		_, err := fmt.Fprintln(w, "Occupancy is consistent.")
		return err
	} else {
		t := newTable(w, "UNIT", "FLAGGED", "ACTIVE TENANT")
		for _, v := range found {
			t.row(v.UnitNumber, yesNo(v.Flagged), yesNo(v.HasActiveTenant))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(found) > 0 {
		return fmt.Errorf("%d unit(s) have a wrong occupancy flag; run 'vv unit reconcile'", len(found))
	}
	return nil
}

func newUnitReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Rewrite wrong occupancy flags from tenant records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitReconcile(cmd.OutOrStdout())
		},
	}
}

func runUnitReconcile(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	fixed, err := a.Occupancy.Reconcile()
	if err != nil {
		return err
	}

	if isJSON() {
		if fixed == nil {
			fixed = []int64{}
		}
		return printJSON(w, map[string]interface{}{"fixed": fixed})
	}
	_, err = fmt.Fprintf(w, "Fixed %d unit(s).\n", len(fixed))
	return err
}

// resolveUnit finds a unit by unit number, falling back to its numeric ID.
func resolveUnit(a *app.App, ref string) (*unit.Unit, error) {
	u, err := a.Units.GetByNumber(ref)
	if err == nil || !errors.Is(err, domain.ErrUnknownUnit) {
		return u, err
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, err
	}
	return a.Units.GetByID(id)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
