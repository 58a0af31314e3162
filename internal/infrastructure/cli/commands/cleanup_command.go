package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
)

// NewCleanupCommand creates the cleanup command
func NewCleanupCommand(container *app.Container) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove stale records from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Repository == nil {
				return fmt.Errorf(ErrRepositoryUnavailable)
			}
			if days == 0 {
				cfg, err := container.ConfigProvider.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				days = cfg.GetRetainDays()
			}
			if days < 0 {
				return fmt.Errorf(ErrInvalidRetainDays)
			}

			removed, err := container.Repository.Cleanup(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records older than %d days.\n", removed, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention window in days (default from config)")
	return cmd
}
