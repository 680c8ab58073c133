// Package config defines the weblint configuration schema and its defaults.
// Values are loaded by viper from a config file, environment variables with
// the WEBLINT_ prefix, and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config is the root configuration object.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Lint   LintConfig   `mapstructure:"lint" yaml:"lint"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// LintConfig selects which rules run and how files are processed.
type LintConfig struct {
	// Tags selects rule sets; the default is the "recommended" set.
	Tags []string `mapstructure:"tags" yaml:"tags"`
	// IncludeRules, when non-empty, restricts the run to these rule codes.
	IncludeRules []string `mapstructure:"include_rules" yaml:"include_rules"`
	// ExcludeRules removes rule codes from the run.
	ExcludeRules []string `mapstructure:"exclude_rules" yaml:"exclude_rules"`
	// Exclude holds glob patterns for files to skip.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// Concurrency bounds the number of files linted in parallel.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputConfig controls diagnostic reporting.
type OutputConfig struct {
	// Format is one of "text", "json", or "sarif".
	Format string `mapstructure:"format" yaml:"format"`
	// Path is the output file; empty or "stdout" writes to standard output.
	Path string `mapstructure:"path" yaml:"path"`
}

// SetDefaults registers every default value on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "weblint")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)

	v.SetDefault("lint.tags", []string{"recommended"})
	v.SetDefault("lint.concurrency", runtime.NumCPU())

	v.SetDefault("output.format", "text")
	v.SetDefault("output.path", "")
}

// Validate rejects configurations the rest of the program cannot honor.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "sarif":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	if c.Lint.Concurrency < 1 {
		return fmt.Errorf("lint.concurrency must be at least 1, got %d", c.Lint.Concurrency)
	}
	return nil
}
