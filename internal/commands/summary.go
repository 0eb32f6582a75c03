// internal/commands/summary.go
package spacexdash

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/util"
	"github.com/spf13/cobra"
)

var (
	goodRate = color.New(color.FgGreen).SprintFunc()
	poorRate = color.New(color.FgRed).SprintFunc()
	noRate   = color.New(color.FgHiBlack).SprintFunc()
)

// summaryCmd implements 'summary', a per-site success table.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print launch and success counts per site",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := loadController(configOrDefault())
		if err != nil {
			return err
		}
		writeSummary(cmd.OutOrStdout(), ctrl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

const siteColumnWidth = 24

// writeSummary prints one row per site followed by the all-sites total.
func writeSummary(out io.Writer, ctrl *dashboard.Controller) {
	ds := ctrl.Dataset()
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(out, headerStyle.Render(ctrl.Layout().Title))
	fmt.Fprintf(out, "%s (%d records, payload %g..%g kg)\n\n", ds.Path(), ds.Len(), ds.MinPayload, ds.MaxPayload)

	fmt.Fprintf(out, "%-*s %8s %10s %8s\n", siteColumnWidth, "Site", "Launches", "Successes", "Rate")
	fmt.Fprintln(out, strings.Repeat("-", siteColumnWidth+29))

	rows := ctrl.Summaries()
	for _, s := range rows {
		fmt.Fprintf(out, "%-*s %8d %10d %8s\n", siteColumnWidth, util.TruncateRunes(s.Site, siteColumnWidth-1), s.Launches, s.Successes, formatRate(s))
	}
	total := dashboard.TotalSummary(rows)
	fmt.Fprintln(out, strings.Repeat("-", siteColumnWidth+29))
	fmt.Fprintf(out, "%-*s %8d %10d %8s\n", siteColumnWidth, total.Site, total.Launches, total.Successes, formatRate(total))
}

func formatRate(s dashboard.SiteSummary) string {
	if s.Launches == 0 {
		return noRate(fmt.Sprintf("%7s", "n/a"))
	}
	text := fmt.Sprintf("%6.1f%%", s.Rate()*100)
	if s.Rate() >= 0.5 {
		return goodRate(text)
	}
	return poorRate(text)
}
