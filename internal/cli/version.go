package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAuth: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout())
		},
	}
}

func runVersion(w io.Writer) error {
	if isJSON() {
		return printJSON(w, map[string]string{"version": Version})
	}
	_, err := fmt.Fprintln(w, "vv "+Version)
	return err
}
