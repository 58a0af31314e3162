package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/ecoscan/internal/app"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or refresh the catalog snapshot cache",
	}

	cacheCmd.AddCommand(
		newCacheStatusCommand(container),
		newCacheRefreshCommand(container),
		newCacheClearCommand(container),
	)

	return cacheCmd
}

// newCacheStatusCommand creates the 'cache status' subcommand
func newCacheStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show snapshot directory and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStatus(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheRefreshCommand creates the 'cache refresh' subcommand
func newCacheRefreshCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a fresh catalog fetch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return refreshCatalog(cmd, cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete stored catalog snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Snapshots == nil {
				return fmt.Errorf(ErrCatalogUnavailable)
			}
			if err := container.Snapshots.Clear(); err != nil {
				return fmt.Errorf("failed to clear snapshots: %w", err)
			}
			container.Catalog.Invalidate()
			return nil
		},
	}
}

// showCacheStatus displays the snapshot directory and its size
func showCacheStatus(out io.Writer, container *app.Container) error {
	if container.Snapshots == nil {
		return fmt.Errorf(ErrCatalogUnavailable)
	}

	dir := container.Snapshots.Dir()
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate snapshot size: %w", err)
	}

	fmt.Fprintf(out, "Snapshot directory: %s\nSize: %d bytes\n", dir, totalSize)
	return nil
}

// refreshCatalog invalidates the cached catalog and fetches both documents
func refreshCatalog(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.Catalog == nil {
		return fmt.Errorf(ErrCatalogUnavailable)
	}

	container.Catalog.Invalidate()
	catalog := container.Catalog.Load(cmd.Context())
	if catalog.Offline {
		fmt.Fprintln(out, "Catalog unreachable; serving cached snapshot if available.")
		return nil
	}
	fmt.Fprintf(out, "Catalog refreshed: %d categories, %d domains.\n",
		len(catalog.Categories), len(catalog.Domains))
	return nil
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // Skip files that can't be stat'd
		}

		totalSize += info.Size()
		return nil
	})

	if err != nil {
		return 0, err
	}

	return totalSize, nil
}
