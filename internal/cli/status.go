package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the database and login setup",
		Long:  "Shows where records are stored, whether a login is configured, and whether unit occupancy flags agree with tenant records.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

type statusReport struct {
	Database   string `json:"database"`
	Config     string `json:"config"`
	Login      bool   `json:"login_configured"`
	Units      int    `json:"units"`
	Tenants    int    `json:"active_tenants"`
	Payments   int    `json:"payments"`
	Consistent bool   `json:"occupancy_consistent"`
}

func runStatus(w io.Writer) error {
	dbPath, err := resolveDBPath(activeConfig)
	if err != nil {
		return err
	}
	cfgPath, err := configPath()
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	s, err := a.Reports.Summary()
	if err != nil {
		return err
	}
	found, err := a.Occupancy.CheckInvariant()
	if err != nil {
		return err
	}

	st := statusReport{
		Database:   dbPath,
		Config:     cfgPath,
		Login:      activeConfig.Auth.Enabled(),
		Units:      s.TotalUnits,
		Tenants:    s.ActiveTenants,
		Payments:   s.PaymentCount,
		Consistent: len(found) == 0,
	}

	if isJSON() {
		return printJSON(w, st)
	}

	login := "not configured"
	if st.Login {
		login = "configured (" + activeConfig.Auth.Username + ")"
	}
	occupancy := "✓ consistent"
	if !st.Consistent {
		occupancy = fmt.Sprintf("✗ %d unit(s) flagged wrong, run 'vv unit reconcile'", len(found))
	}

	lines := []string{
		fmt.Sprintf("Database:  %s", st.Database),
		fmt.Sprintf("Config:    %s", st.Config),
		fmt.Sprintf("Login:     %s", login),
		fmt.Sprintf("Records:   %d units, %d active tenants, %d payments", st.Units, st.Tenants, st.Payments),
		fmt.Sprintf("Occupancy: %s", occupancy),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if st.Units == 0 {
		_, err = fmt.Fprintln(w, "\nRun 'vv seed' to load sample data.")
		return err
	}
	return nil
}
