// internal/commands/export.go
package spacexdash

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/mwiater/spacexdash/internal/charts"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/mwiater/spacexdash/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportSite   string
	exportLow    float64
	exportHigh   float64
	exportFormat string
	exportOut    string
)

// exportCmd implements 'export', which writes both charts for one selection to disk.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the pie and scatter charts for a selection to files",
	Long: `Computes both charts for --site and the payload range --low..--high and writes them
to --out as JSON, YAML or PNG. The range defaults to the dataset's payload extremes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := charts.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		ctrl, err := loadController(configOrDefault())
		if err != nil {
			return err
		}

		sel := ctrl.Layout().InitialSelection()
		if cmd.Flags().Changed("low") {
			sel.Low = exportLow
		}
		if cmd.Flags().Changed("high") {
			sel.High = exportHigh
		}
		sel.Site = exportSite
		if !ctrl.Layout().HasSite(sel.Site) {
			logging.LogEvent("export: site %q is not a dropdown option; charts may be empty", sel.Site)
		}

		paths, err := exportCharts(ctrl, sel, format, exportOut)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSite, "site", dashboard.AllSites, "launch site, or \"All Sites\"")
	exportCmd.Flags().Float64Var(&exportLow, "low", 0, "exclusive lower payload bound in kg")
	exportCmd.Flags().Float64Var(&exportHigh, "high", 0, "exclusive upper payload bound in kg")
	exportCmd.Flags().StringVar(&exportFormat, "format", string(charts.FormatJSON), "output format: json, yaml or png")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}

// exportCharts writes the pie and scatter charts for sel into dir and returns the file paths.
func exportCharts(ctrl *dashboard.Controller, sel dashboard.Selection, format charts.Format, dir string) ([]string, error) {
	outputs := []struct {
		name string
		spec charts.ChartSpec
	}{
		{name: dashboard.PieChartID, spec: ctrl.Pie(sel.Site)},
		{name: dashboard.ScatterChartID, spec: ctrl.Scatter(sel.Site, sel.Low, sel.High)},
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		var buf bytes.Buffer
		if err := charts.Encode(&buf, o.spec, format); err != nil {
			return nil, fmt.Errorf("encode %s: %w", o.name, err)
		}
		path := filepath.Join(dir, o.name+"."+format.Extension())
		if err := util.WriteFile(path, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logging.LogEvent("export: wrote %s (%s, %d points)", path, o.spec.Title, o.spec.Points())
		paths = append(paths, path)
	}
	return paths, nil
}
