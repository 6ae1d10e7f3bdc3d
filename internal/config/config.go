package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PANEL"

// Config is the full runtime configuration for the panel and the simulator.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Backend   Backend   `mapstructure:"backend"`
	Panel     Panel     `mapstructure:"panel"`
	Events    Events    `mapstructure:"events"`
	Metrics   Metrics   `mapstructure:"metrics"`
	Simulator Simulator `mapstructure:"simulator"`
}

// Backend points at the thermostat being controlled.
type Backend struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Panel holds the startup values and cadences of the control panel.
type Panel struct {
	Target          int           `mapstructure:"target"`
	PollInterval    int           `mapstructure:"poll_interval"` // seconds
	HeatStatusEvery time.Duration `mapstructure:"heat_status_every"`
	Debounce        time.Duration `mapstructure:"debounce"`
}

type Events struct {
	Capacity int `mapstructure:"capacity"`
}

// Metrics configures the optional DogStatsD emitter.
type Metrics struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addr      string   `mapstructure:"addr"`
	Namespace string   `mapstructure:"namespace"`
	Tags      []string `mapstructure:"tags"`
}

// Simulator configures the fake thermostat backend.
type Simulator struct {
	Port       string        `mapstructure:"port"`
	Tick       time.Duration `mapstructure:"tick"`
	AmbientF   float64       `mapstructure:"ambient_f"`
	StartTempF float64       `mapstructure:"start_temp_f"`
	Target     int           `mapstructure:"target"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("backend.url", "http://thermostat.local")
	v.SetDefault("backend.timeout", 10*time.Second)

	v.SetDefault("panel.target", 70)
	v.SetDefault("panel.poll_interval", 10)
	v.SetDefault("panel.heat_status_every", 5*time.Second)
	v.SetDefault("panel.debounce", 500*time.Millisecond)

	v.SetDefault("events.capacity", 500)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:8125")
	v.SetDefault("metrics.namespace", "thermostat_panel.")
	v.SetDefault("metrics.tags", []string{})

	v.SetDefault("simulator.port", "8090")
	v.SetDefault("simulator.tick", time.Second)
	v.SetDefault("simulator.ambient_f", 55.0)
	v.SetDefault("simulator.start_temp_f", 66.0)
	v.SetDefault("simulator.target", 70)
}

// Load reads configs/config.yml (or the file at path when non-empty), applies
// PANEL_* environment overrides and validates the result. A missing config
// file is not an error; defaults and environment still apply.
func Load(path string) (Config, error) {
	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the panel cannot start with.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Backend.URL) == "" {
		problems = append(problems, "backend.url is required")
	}
	if c.Panel.Target < 60 || c.Panel.Target > 79 {
		problems = append(problems, fmt.Sprintf("panel.target %d outside [60, 79]", c.Panel.Target))
	}
	if c.Panel.PollInterval < 5 || c.Panel.PollInterval > 60 {
		problems = append(problems, fmt.Sprintf("panel.poll_interval %d outside [5, 60]", c.Panel.PollInterval))
	}
	if c.Panel.HeatStatusEvery <= 0 {
		problems = append(problems, "panel.heat_status_every must be positive")
	}
	if c.Panel.Debounce <= 0 {
		problems = append(problems, "panel.debounce must be positive")
	}
	if c.Events.Capacity <= 0 {
		problems = append(problems, "events.capacity must be positive")
	}
	if c.Simulator.Tick <= 0 {
		problems = append(problems, "simulator.tick must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
