package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	scanCmd := newScanCommand(container, opts)

	root := &cobra.Command{
		Use:   "ecoscan",
		Short: "EcoScan - digital carbon footprint scanner",
		Long:  "EcoScan discovers installed applications, classifies their environmental impact, and estimates CO2 and energy usage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			scanCmd.SetArgs(args)
			return scanCmd.ExecuteContext(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(scanCmd)
	root.AddCommand(commands.NewListCommand(container))
	root.AddCommand(commands.NewShowCommand(container))
	root.AddCommand(commands.NewSearchCommand(container))
	root.AddCommand(commands.NewCleanupCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newScanCommand(container *app.Container, opts Options) *cobra.Command {
	var (
		includeSystem bool
		skipAI        bool
		model         string
		usage         map[string]string
		debug         bool
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan installed applications and estimate their impact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			minutes, err := parseUsageMinutes(usage)
			if err != nil {
				return err
			}

			spinner := NewSpinner(cmd.ErrOrStderr())
			if !opts.Verbose {
				spinner.Start()
			}
			result, err := container.ScanService.Run(domain.ScanRequest{
				Context:       ctx,
				IncludeSystem: includeSystem,
				SkipAI:        skipAI,
				ModelOverride: model,
				UsageMinutes:  minutes,
				Debug:         debug,
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			RenderScanResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeSystem, "include-system", false, "Include system applications in the scan")
	cmd.Flags().BoolVar(&skipAI, "no-ai", false, "Skip AI content enrichment")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override enrichment model name (default from config)")
	cmd.Flags().StringToStringVar(&usage, "usage", nil, "Daily usage minutes per package (e.g. --usage com.spotify.music=45)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Override scan timeout")

	return cmd
}
