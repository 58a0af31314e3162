package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
)

// NewSearchCommand creates the search command
func NewSearchCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored results by name or package id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Repository == nil {
				return fmt.Errorf(ErrRepositoryUnavailable)
			}
			query := strings.Join(args, " ")
			services, err := container.Repository.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(services) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No records match %q.\n", query)
				return nil
			}
			renderServiceTable(cmd.OutOrStdout(), services)
			return nil
		},
	}
}
