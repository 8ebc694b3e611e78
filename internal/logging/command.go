package logging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/domain"
)

// RunFunc is the signature of cobra's RunE.
type RunFunc func(cmd *cobra.Command, args []string) error

// userErrors are refusals caused by the input, logged at warn rather than error.
var userErrors = []error{
	domain.ErrUnitUnavailable,
	domain.ErrUnitOccupied,
	domain.ErrUnknownUnit,
	domain.ErrUnknownTenant,
	domain.ErrUnknownBill,
	domain.ErrUnknownPayment,
	domain.ErrDuplicateUnitNumber,
}

// CommandLogger wraps a RunE so each run is logged with its duration
// and outcome.
func CommandLogger(next RunFunc) RunFunc {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := next(cmd, args)
		duration := time.Since(start)

		attrs := []any{
			"command", cmd.CommandPath(),
			"duration", duration.String(),
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}

		slog.Log(context.Background(), Level(err), "command", attrs...)
		return err
	}
}

// Instrument wraps RunE on cmd and every subcommand with CommandLogger.
// Commands without RunE are left alone.
func Instrument(cmd *cobra.Command) {
	if cmd.RunE != nil {
		cmd.RunE = CommandLogger(cmd.RunE)
	}
	for _, sub := range cmd.Commands() {
		Instrument(sub)
	}
}

// Level picks the log level for a command outcome.
func Level(err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	if domain.IsValidation(err) {
		return slog.LevelWarn
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return slog.LevelWarn
		}
	}
	return slog.LevelError
}
