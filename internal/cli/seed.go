package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample units, tenants and payments into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout())
		},
	}
}

func runSeed(w io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp(a)

	res, err := a.Seed()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, res)
	}
	_, err = fmt.Fprintf(w, "Seeded %d units, %d tenants and %d payments.\n", res.Units, res.Tenants, res.Payments)
	return err
}
