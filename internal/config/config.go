package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rohmanhakim/wiki-content/internal/logger"
	"github.com/rohmanhakim/wiki-content/internal/sanitizer"
	"github.com/rohmanhakim/wiki-content/pkg/fileutil"
	"github.com/rohmanhakim/wiki-content/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a cleaned fragment is rendered.
type OutputFormat string

const (
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
)

type Config struct {
	//===============
	// Content
	//===============
	// Scheme and host prepended to root-relative href/src values.
	origin string
	// Class of the element whose inner HTML is the page content.
	contentClass string
	// Class of the elements stripped from the content block.
	noiseClass string

	//===============
	// Output
	//===============
	// Directory in which cleaned fragments are stored. Empty means standard output.
	outputDir string
	// Rendering of the cleaned fragment
	format OutputFormat
	// Algorithm used for the stored file name and content hash
	hashAlgo hashutil.HashAlgo

	//===============
	// Logging
	//===============
	logLevel  string
	logFormat string
	// Optional rotated log file. Empty disables file logging.
	logFile string
}

type configDTO struct {
	Origin       string `json:"origin,omitempty" yaml:"origin,omitempty"`
	ContentClass string `json:"contentClass,omitempty" yaml:"contentClass,omitempty"`
	NoiseClass   string `json:"noiseClass,omitempty" yaml:"noiseClass,omitempty"`
	OutputDir    string `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	Format       string `json:"format,omitempty" yaml:"format,omitempty"`
	HashAlgo     string `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	LogLevel     string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat    string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
	LogFile      string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

// newConfigFromDTO applies every non-empty DTO field on top of the defaults.
func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	if dto.Origin != "" {
		cfg.WithOrigin(dto.Origin)
	}
	if dto.ContentClass != "" {
		cfg.WithContentClass(dto.ContentClass)
	}
	if dto.NoiseClass != "" {
		cfg.WithNoiseClass(dto.NoiseClass)
	}
	if dto.OutputDir != "" {
		cfg.WithOutputDir(dto.OutputDir)
	}
	if dto.Format != "" {
		cfg.WithFormat(OutputFormat(dto.Format))
	}
	if dto.HashAlgo != "" {
		cfg.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	if dto.LogLevel != "" {
		cfg.WithLogLevel(dto.LogLevel)
	}
	if dto.LogFormat != "" {
		cfg.WithLogFormat(dto.LogFormat)
	}
	if dto.LogFile != "" {
		cfg.WithLogFile(dto.LogFile)
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON (.json) or YAML (.yaml, .yml) config file.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch ext := strings.ToLower(fileutil.GetFileExtension(path)); ext {
	case "json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config targeting the Jenkins wiki, printing HTML
// fragments to standard output.
func WithDefault() *Config {
	logParam := logger.DefaultLogParam()
	defaultConfig := Config{
		origin:       sanitizer.DefaultOrigin,
		contentClass: sanitizer.DefaultContentClass,
		noiseClass:   sanitizer.DefaultNoiseClass,
		outputDir:    "",
		format:       FormatHTML,
		hashAlgo:     hashutil.HashAlgoBLAKE3,
		logLevel:     logParam.Level,
		logFormat:    logParam.Format,
		logFile:      "",
	}
	return &defaultConfig
}

func (c *Config) WithOrigin(origin string) *Config {
	c.origin = origin
	return c
}

func (c *Config) WithContentClass(class string) *Config {
	c.contentClass = class
	return c
}

func (c *Config) WithNoiseClass(class string) *Config {
	c.noiseClass = class
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithFormat(format OutputFormat) *Config {
	c.format = format
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogFormat(format string) *Config {
	c.logFormat = format
	return c
}

func (c *Config) WithLogFile(path string) *Config {
	c.logFile = path
	return c
}

// Build validates the accumulated values and returns an immutable copy.
func (c *Config) Build() (Config, error) {
	origin, err := normalizeOrigin(c.origin)
	if err != nil {
		return Config{}, err
	}
	c.origin = origin

	if strings.TrimSpace(c.contentClass) == "" {
		return Config{}, fmt.Errorf("%w: contentClass cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.noiseClass) == "" {
		return Config{}, fmt.Errorf("%w: noiseClass cannot be empty", ErrInvalidConfig)
	}

	format := OutputFormat(strings.ToLower(string(c.format)))
	switch format {
	case FormatHTML, FormatMarkdown:
		c.format = format
	default:
		return Config{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, c.format)
	}

	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo

	if _, err := logger.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	switch c.logFormat {
	case logger.FormatConsole, logger.FormatJSON, logger.FormatText:
	default:
		return Config{}, fmt.Errorf("%w: unsupported log format %q", ErrInvalidConfig, c.logFormat)
	}

	return *c, nil
}

// normalizeOrigin requires an absolute http(s) URL and strips trailing
// slashes so that origin + "/path" never doubles the separator.
func normalizeOrigin(origin string) (string, error) {
	trimmed := strings.TrimSpace(origin)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: origin %q: %s", ErrInvalidConfig, origin, err.Error())
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: origin %q must be an absolute http or https URL", ErrInvalidConfig, origin)
	}
	return strings.TrimRight(trimmed, "/"), nil
}

func (c Config) Origin() string {
	return c.origin
}

func (c Config) ContentClass() string {
	return c.contentClass
}

func (c Config) NoiseClass() string {
	return c.noiseClass
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) Format() OutputFormat {
	return c.format
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogFormat() string {
	return c.logFormat
}

func (c Config) LogFile() string {
	return c.logFile
}

// SanitizeParam returns the sanitizer settings carried by this config.
func (c Config) SanitizeParam() sanitizer.SanitizeParam {
	return sanitizer.SanitizeParam{
		Origin:       c.origin,
		ContentClass: c.contentClass,
		NoiseClass:   c.noiseClass,
	}
}

// LogParam returns the logger settings carried by this config. Rotation
// limits keep their defaults.
func (c Config) LogParam() logger.LogParam {
	param := logger.DefaultLogParam()
	param.Level = c.logLevel
	param.Format = c.logFormat
	param.FilePath = c.logFile
	return param
}
