// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Fonts() FontsConfig
	Page() PageConfig
	Output() OutputConfig

	SetOutputFormat(format string)
	SetFontsDir(dir string)
}

// Config holds the entire application configuration. Sections are exported so
// viper can unmarshal into them; callers should go through the getters.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	FontsCfg  FontsConfig  `mapstructure:"fonts" yaml:"fonts"`
	PageCfg   PageConfig   `mapstructure:"page" yaml:"page"`
	OutputCfg OutputConfig `mapstructure:"output" yaml:"output"`
}

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Fonts() FontsConfig   { return c.FontsCfg }
func (c *Config) Page() PageConfig     { return c.PageCfg }
func (c *Config) Output() OutputConfig { return c.OutputCfg }

func (c *Config) SetOutputFormat(format string) { c.OutputCfg.Format = format }
func (c *Config) SetFontsDir(dir string)        { c.FontsCfg.Dir = dir }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// FontsConfig controls where font files are looked up.
type FontsConfig struct {
	// Dir holds <family>.ttf files. A leading ~ is expanded.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Size is the nominal font size used for text metrics and drawing.
	Size float64 `mapstructure:"size" yaml:"size"`
	// DefaultFamily is used for text nodes without a font property.
	DefaultFamily string `mapstructure:"default_family" yaml:"default_family"`
	// BuiltinFallback registers the bundled Go fonts under DefaultFamily
	// when no file for it exists in Dir.
	BuiltinFallback bool `mapstructure:"builtin_fallback" yaml:"builtin_fallback"`
}

// ResolvedDir returns Dir with the home directory expanded.
func (f FontsConfig) ResolvedDir() (string, error) {
	dir, err := homedir.Expand(f.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand fonts.dir %q: %w", f.Dir, err)
	}
	return filepath.Clean(dir), nil
}

// PageConfig describes the fixed output page.
type PageConfig struct {
	WidthMM   float64 `mapstructure:"width_mm" yaml:"width_mm"`
	HeightMM  float64 `mapstructure:"height_mm" yaml:"height_mm"`
	PNGWidth  int     `mapstructure:"png_width" yaml:"png_width"`
	PNGHeight int     `mapstructure:"png_height" yaml:"png_height"`
	// DPI converts layout pixels to millimeters for vector output.
	DPI float64 `mapstructure:"dpi" yaml:"dpi"`
}

// OutputConfig selects the renderer.
type OutputConfig struct {
	// Format is one of pdf, png, svg or json. Empty means "infer from the
	// output file extension".
	Format string `mapstructure:"format" yaml:"format"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "mpdf")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Fonts --
	v.SetDefault("fonts.dir", "./test_font")
	v.SetDefault("fonts.size", 12.0)
	v.SetDefault("fonts.default_family", "Arial")
	v.SetDefault("fonts.builtin_fallback", true)

	// -- Page --
	// A4 in millimeters, and the same page rasterized at 72 dpi.
	v.SetDefault("page.width_mm", 210.0)
	v.SetDefault("page.height_mm", 297.0)
	v.SetDefault("page.png_width", 595)
	v.SetDefault("page.png_height", 842)
	v.SetDefault("page.dpi", 72.0)

	// -- Output --
	v.SetDefault("output.format", "")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var supportedFormats = map[string]bool{"pdf": true, "png": true, "svg": true, "json": true}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.FontsCfg.Size <= 0 {
		return fmt.Errorf("fonts.size must be a positive number")
	}
	if c.FontsCfg.DefaultFamily == "" {
		return fmt.Errorf("fonts.default_family is a required configuration field")
	}
	if c.PageCfg.WidthMM <= 0 || c.PageCfg.HeightMM <= 0 {
		return fmt.Errorf("page.width_mm and page.height_mm must be positive")
	}
	if c.PageCfg.PNGWidth <= 0 || c.PageCfg.PNGHeight <= 0 {
		return fmt.Errorf("page.png_width and page.png_height must be positive integers")
	}
	if c.PageCfg.DPI <= 0 {
		return fmt.Errorf("page.dpi must be a positive number")
	}
	if f := strings.ToLower(c.OutputCfg.Format); f != "" && !supportedFormats[f] {
		return fmt.Errorf("output.format %q is not one of pdf, png, svg, json", c.OutputCfg.Format)
	}
	return nil
}
