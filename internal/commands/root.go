// internal/commands/root.go
package spacexdash

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/mwiater/spacexdash/internal/appconfig"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/launches"
	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
// With no subcommand it serves the dashboard.
var rootCmd = &cobra.Command{
	Use:          "spacexdash",
	Short:        "SpaceX launch records dashboard",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}
		for _, name := range []string{"dataFile", "host", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("port") {
			_ = cmd.Flags().Set("port", strconv.Itoa(viper.GetInt("port")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if currentConfig.Debug {
			pp.Println(currentConfig)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logging.LogEvent("spacexdash: %v", err)
		_ = logging.Close()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "print the effective configuration at startup")
	rootCmd.PersistentFlags().String("dataFile", "", "launch records CSV (default "+appconfig.DefaultDataFile+")")
	rootCmd.PersistentFlags().String("host", "", "interface to listen on (default "+appconfig.DefaultHost+")")
	rootCmd.PersistentFlags().Int("port", 0, "port to listen on (default "+strconv.Itoa(appconfig.DefaultPort)+")")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	bindFlags()
}

// bindFlags binds the persistent flags to viper keys (flags override config).
func bindFlags() {
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("dataFile", rootCmd.PersistentFlags().Lookup("dataFile"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig points viper at the config file named by --config.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file is not an error.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// loadController reads the launch records named by cfg and builds the dashboard controller.
func loadController(cfg *appconfig.Config) (*dashboard.Controller, error) {
	ds, err := launches.Load(cfg.DataFile)
	if err != nil {
		logging.LogEvent("failed to load launch records: %v", err)
		return nil, err
	}
	logging.LogEvent("loaded %d launch records from %s (payload %g..%g kg)", ds.Len(), ds.Path(), ds.MinPayload, ds.MaxPayload)
	if !ds.HasBoosterCategories() {
		logging.LogEvent("%s has no booster version categories; scatter points will not be grouped", ds.Path())
	}
	layout := dashboard.NewLayout(ds, cfg.Sites, cfg.Slider)
	return dashboard.NewController(ds, layout), nil
}

// configOrDefault returns the loaded config, or the defaults when a command runs
// without PersistentPreRunE.
func configOrDefault() *appconfig.Config {
	if currentConfig != nil {
		return currentConfig
	}
	cfg := appconfig.Default()
	return &cfg
}
