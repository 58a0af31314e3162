package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ecoscan/internal/domain"
)

// renderServiceTable prints a compact table of stored records.
func renderServiceTable(out io.Writer, services []domain.Service) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IMPACT\tNAME\tPACKAGE\tDAILY CO2\tUPDATED")
	for _, svc := range services {
		daily := svc.Daily()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s g\t%s\n",
			strings.ToUpper(string(svc.Level)),
			svc.Name,
			svc.PackageID,
			humanize.FtoaWithDigits(daily.CO2Grams, 1),
			humanize.Time(svc.UpdatedAt))
	}
	w.Flush()
}

// renderServiceDetails prints the full record including estimates, usage and
// any generated content.
func renderServiceDetails(out io.Writer, svc domain.Service) {
	daily := svc.Daily()
	annual := daily.Annual()

	fmt.Fprintf(out, "%s (%s)\n", svc.Name, svc.PackageID)
	fmt.Fprintf(out, "Impact: %s (classified via %s)\n", strings.ToUpper(string(svc.Level)), svc.Source)
	if svc.Category != nil && svc.Category.Description != "" {
		fmt.Fprintf(out, "Category: %s\n", svc.Category.Description)
	}
	fmt.Fprintf(out, "Last scanned: %s\n", humanize.Time(svc.UpdatedAt))

	fmt.Fprintf(out, "\nDaily estimate: %s g CO2, %s Wh\n",
		humanize.FtoaWithDigits(daily.CO2Grams, 1),
		humanize.FtoaWithDigits(daily.EnergyWh, 1))
	fmt.Fprintf(out, "Annual estimate: %s g CO2, %s Wh\n",
		humanize.CommafWithDigits(annual.CO2Grams, 0),
		humanize.CommafWithDigits(annual.EnergyWh, 0))

	if svc.Usage != nil {
		fmt.Fprintf(out, "\nUsage: %s min/day (%s)\n",
			humanize.FtoaWithDigits(svc.Usage.DailyMinutes, 0), svc.Usage.Frequency)
	}

	if svc.Content != nil && !svc.Content.Empty() {
		renderGeneratedContent(out, *svc.Content)
	}
}

func renderGeneratedContent(out io.Writer, content domain.GeneratedContent) {
	marker := ""
	if !content.Fresh(time.Now()) {
		marker = " (stale)"
	}
	fmt.Fprintf(out, "\nGenerated insights%s:\n", marker)
	if content.CO2Comparison != "" {
		fmt.Fprintf(out, "  CO2: %s\n", content.CO2Comparison)
	}
	if content.EnergyComparison != "" {
		fmt.Fprintf(out, "  Energy: %s\n", content.EnergyComparison)
	}
	if content.Explanation != "" {
		fmt.Fprintf(out, "  Why: %s\n", content.Explanation)
	}
	if content.AnnualProjection != "" {
		fmt.Fprintf(out, "  Yearly: %s\n", content.AnnualProjection)
	}
	for _, suggestion := range content.Suggestions {
		fmt.Fprintf(out, "  - %s\n", suggestion)
	}
}
