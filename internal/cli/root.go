// Package cli defines the cobra command tree for vv.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/app"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/auth"
	"github.com/Micfood1011/ApartmentManagementSystem/internal/logging"
)

var (
	flagFormat string
	flagDB     string
	flagUser   string

	// activeConfig is loaded once per run before any command executes.
	activeConfig Config
)

// skipAuth marks commands that run without a login.
const skipAuth = "skip-auth"

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vv",
		Short: "Vista Verde apartment records",
		Long: "Keep records for a small apartment complex: units, tenants, rent payments and utility bills,\n" +
			"stored in a local SQLite database.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/vv/vistaverde.db)")
	root.PersistentFlags().StringVar(&flagUser, "user", "", "login username (default: $VV_USERNAME)")

	root.AddCommand(
		newUnitCmd(),
		newTenantCmd(),
		newPaymentCmd(),
		newBillCmd(),
		newReportCmd(),
		newSeedCmd(),
		newStatusCmd(),
		newHashPasswordCmd(),
		newVersionCmd(),
	)

	logging.Instrument(root)

	return root
}

// setup loads config, configures logging and checks the login.
func setup(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid --format %q (want text or json)", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	activeConfig = cfg
	logging.Setup(cmd.ErrOrStderr(), cfg.DevMode)

	if _, ok := cmd.Annotations[skipAuth]; ok {
		return nil
	}
	return login(cfg)
}

// login verifies $VV_PASSWORD for the --user / $VV_USERNAME account when
// credentials are configured.
func login(cfg Config) error {
	username := flagUser
	if username == "" {
		username = os.Getenv("VV_USERNAME")
	}
	if err := auth.NewVerifier(cfg.Auth).Verify(username, os.Getenv("VV_PASSWORD")); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// openApp opens the database at the configured path.
func openApp() (*app.App, error) {
	path, err := resolveDBPath(activeConfig)
	if err != nil {
		return nil, err
	}
	return app.Open(path)
}

// closeApp closes the app, logging any error to stderr.
func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// parseID parses a numeric record ID argument.
func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, s)
	}
	return id, nil
}
