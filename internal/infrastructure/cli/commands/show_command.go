package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
)

// NewShowCommand creates the show command
func NewShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <package-id>",
		Short: "Show full details for one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Repository == nil {
				return fmt.Errorf(ErrRepositoryUnavailable)
			}
			svc, found, err := container.Repository.ByPackage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load record: %w", err)
			}
			if !found {
				return fmt.Errorf("no record for %s", args[0])
			}
			renderServiceDetails(cmd.OutOrStdout(), svc)
			return nil
		},
	}
}
