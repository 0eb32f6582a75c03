// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDataFile is the launch records file read when the config omits one.
	DefaultDataFile = "spacex_launch_dash.csv"
	// DefaultHost is the interface the dashboard listens on.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the dashboard's listen port.
	DefaultPort = 8050
	// defaultLogFile is where logs are appended when the config omits a path.
	defaultLogFile = "spacexdash.log"
	// defaultReadHeaderTimeout bounds how long the server waits for request headers.
	defaultReadHeaderTimeout = 10 * time.Second
)

// DefaultSites are the launch sites offered in the dropdown, in display order.
var DefaultSites = []string{"KSC LC-39A", "CCAFS SLC-40", "CCAFS LC-40", "VAFB SLC-4E"}

// Config represents the top-level application configuration.
type Config struct {
	DataFile          string   `json:"dataFile"`
	Host              string   `json:"host"`
	Port              int      `json:"port"`
	LogFile           string   `json:"logFile,omitempty"`
	Debug             bool     `json:"debug"`
	Sites             []string `json:"sites,omitempty"`
	Slider            Slider   `json:"slider"`
	ReadHeaderTimeout int      `json:"readHeaderTimeout,omitempty"`
	ConfigPath        string   `json:"-"`
}

// Slider bounds the payload range control.
type Slider struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.DataFile) == "" {
		c.DataFile = DefaultDataFile
	}
	if strings.TrimSpace(c.Host) == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if len(c.Sites) == 0 {
		c.Sites = append([]string(nil), DefaultSites...)
	}
	if c.Slider == (Slider{}) {
		c.Slider = Slider{Min: 0, Max: 10000, Step: 1000}
	}
}

// Validate reports configuration values the dashboard cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range (1..65535)", c.Port))
	}
	if c.Slider.Step <= 0 {
		errs = append(errs, fmt.Errorf("slider step must be positive, got %v", c.Slider.Step))
	}
	if c.Slider.Min >= c.Slider.Max {
		errs = append(errs, fmt.Errorf("slider min %v must be below max %v", c.Slider.Min, c.Slider.Max))
	}
	seen := make(map[string]struct{}, len(c.Sites))
	for _, site := range c.Sites {
		s := strings.TrimSpace(site)
		if s == "" {
			errs = append(errs, errors.New("sites must not contain empty names"))
			continue
		}
		if _, ok := seen[s]; ok {
			errs = append(errs, fmt.Errorf("duplicate site %q", s))
		}
		seen[s] = struct{}{}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ReadHeaderTimeoutDuration returns the server header timeout, falling back to the default.
func (c Config) ReadHeaderTimeoutDuration() time.Duration {
	if c.ReadHeaderTimeout <= 0 {
		return defaultReadHeaderTimeout
	}
	return time.Duration(c.ReadHeaderTimeout) * time.Second
}
