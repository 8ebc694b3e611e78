package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/auth"
)

func newHashPasswordCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash a login password for the config file",
		Long: "Prints a bcrypt hash of the password, read from the argument or stdin.\n" +
			"With --save and --user, stores the login in the config file so every other command requires it.",
		Example:     `  vv hash-password --user admin --save`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipAuth: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = p
			}
			return runHashPassword(cmd.OutOrStdout(), password, save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store the login for --user in the config file")

	return cmd
}

func promptPassword(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runHashPassword(w io.Writer, password string, save bool) error {
	username := strings.TrimSpace(flagUser)
	if save && username == "" {
		return errors.New("--save needs --user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if !save {
		if isJSON() {
			return printJSON(w, map[string]string{"password_hash": hash})
		}
		_, err := fmt.Fprintln(w, hash)
		return err
	}

	cfg, err := readConfigFile()
	if err != nil {
		return err
	}
	cfg.Auth = auth.Config{Username: username, PasswordHash: hash}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if isJSON() {
		return printJSON(w, map[string]interface{}{"username": username, "saved": true})
	}
	_, err = fmt.Fprintf(w, "✓ Login saved for %s. Set VV_PASSWORD to run commands.\n", username)
	return err
}
