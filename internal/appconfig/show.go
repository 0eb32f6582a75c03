package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		def := Default()
		cfg = &def
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Data File:       %s\n", cfg.DataFile)
	fmt.Fprintf(out, "  Listen Address:  %s\n", cfg.Addr())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Sites:           %s\n", strings.Join(cfg.Sites, ", "))
	fmt.Fprintf(out, "  Payload Slider:  %g..%g step %g\n", cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Step)
	fmt.Fprintf(out, "  Header Timeout:  %s\n", cfg.ReadHeaderTimeoutDuration())
}
