package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ecoscan/internal/domain"
)

// RenderScanResult prints the scan outcome in a friendly, ASCII-only format.
func RenderScanResult(out io.Writer, result domain.ScanResult) {
	fmt.Fprintf(out, "Scan complete in %s\n", result.Duration.Round(time.Millisecond))
	if result.Catalog.Loaded() {
		fmt.Fprintf(out, "Catalog: %d categories, %d domains\n",
			len(result.Catalog.Categories), len(result.Catalog.Domains))
	}
	for _, status := range result.Statuses {
		fmt.Fprintf(out, "Note: %s\n", status)
	}

	if len(result.Services) == 0 {
		fmt.Fprintln(out, "\nNo applications found.")
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IMPACT\tNAME\tPACKAGE\tDAILY CO2\tDAILY ENERGY\tSOURCE")
	for _, svc := range result.Services {
		daily := svc.Daily()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s g\t%s Wh\t%s\n",
			strings.ToUpper(string(svc.Level)),
			svc.Name,
			svc.PackageID,
			humanize.FtoaWithDigits(daily.CO2Grams, 1),
			humanize.FtoaWithDigits(daily.EnergyWh, 1),
			svc.Source)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d applications", len(result.Services))
	if result.EnrichedCount > 0 {
		fmt.Fprintf(out, ", %d enriched with generated insights", result.EnrichedCount)
	}
	fmt.Fprintln(out)
}
