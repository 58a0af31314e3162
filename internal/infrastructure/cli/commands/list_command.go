package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
	"github.com/doeshing/ecoscan/internal/domain"
)

// NewListCommand creates the list command
func NewListCommand(container *app.Container) *cobra.Command {
	var (
		impact string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored scan results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listServices(cmd, cmd.OutOrStdout(), container, impact, limit)
		},
	}

	cmd.Flags().StringVar(&impact, "impact", "", "Filter by impact level (high, medium, low)")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultListLimit, "Maximum number of records to display")
	return cmd
}

func listServices(cmd *cobra.Command, out io.Writer, container *app.Container, impact string, limit int) error {
	if container.Repository == nil {
		return fmt.Errorf(ErrRepositoryUnavailable)
	}

	ctx := cmd.Context()
	var (
		services []domain.Service
		err      error
	)
	if impact != "" {
		level, ok := domain.ParseImpactLevel(impact)
		if !ok {
			return fmt.Errorf("unknown impact level %q", impact)
		}
		services, err = container.Repository.ByImpact(ctx, level)
	} else {
		services, err = container.Repository.All(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	if len(services) == 0 {
		fmt.Fprintln(out, MsgNoServicesStored)
		return nil
	}
	if limit > 0 && len(services) > limit {
		services = services[:limit]
	}

	renderServiceTable(out, services)
	return nil
}
