package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"webrecon/internal/log"
)

const (
	FETCH_TIMEOUT          = "FETCH_TIMEOUT"
	FETCH_RATE             = "FETCH_RATE"
	MAX_BODY_BYTES         = "MAX_BODY_BYTES"
	USER_AGENT             = "USER_AGENT"
	SUBDOMAIN_TOOL         = "SUBDOMAIN_TOOL"
	SUBDOMAIN_TIMEOUT      = "SUBDOMAIN_TIMEOUT"
	DIRSCAN_TOOL           = "DIRSCAN_TOOL"
	DIRSCAN_TIMEOUT        = "DIRSCAN_TIMEOUT"
	DIRSCAN_EXTENSIONS     = "DIRSCAN_EXTENSIONS"
	DIRSCAN_EXCLUDE_STATUS = "DIRSCAN_EXCLUDE_STATUS"
	DIRSCAN_FOUND_MARKER   = "DIRSCAN_FOUND_MARKER"
	RUN_TIMEOUT            = "RUN_TIMEOUT"
	DEDUPE                 = "DEDUPE"
	PHONE_SOURCE           = "PHONE_SOURCE"
)

// Phone sources accepted by PHONE_SOURCE.
const (
	PhoneSourceHTML = "html"
	PhoneSourceText = "text"
	PhoneSourceBoth = "both"
)

// DefaultEnvFile is read when present. A missing file is not an error.
const DefaultEnvFile = ".env"

var (
	ErrInvalidTimeout     = errors.New("invalid timeout: must be positive")
	ErrInvalidRunTimeout  = errors.New("invalid run timeout: must be non-negative")
	ErrInvalidRate        = errors.New("invalid fetch rate: must be non-negative")
	ErrInvalidBodySize    = errors.New("invalid max body size: must be positive")
	ErrInvalidPhoneSource = errors.New("invalid phone source: must be html, text or both")
	ErrMissingTool        = errors.New("tool name must not be empty")
)

type Config struct {
	FetchTimeout         time.Duration `mapstructure:"FETCH_TIMEOUT"`
	FetchRate            float64       `mapstructure:"FETCH_RATE"`
	MaxBodyBytes         int64         `mapstructure:"MAX_BODY_BYTES"`
	UserAgent            string        `mapstructure:"USER_AGENT"`
	SubdomainTool        string        `mapstructure:"SUBDOMAIN_TOOL"`
	SubdomainTimeout     time.Duration `mapstructure:"SUBDOMAIN_TIMEOUT"`
	DirscanTool          string        `mapstructure:"DIRSCAN_TOOL"`
	DirscanTimeout       time.Duration `mapstructure:"DIRSCAN_TIMEOUT"`
	DirscanExtensions    string        `mapstructure:"DIRSCAN_EXTENSIONS"`
	DirscanExcludeStatus string        `mapstructure:"DIRSCAN_EXCLUDE_STATUS"`
	DirscanFoundMarker   string        `mapstructure:"DIRSCAN_FOUND_MARKER"`
	RunTimeout           time.Duration `mapstructure:"RUN_TIMEOUT"`
	Dedupe               bool          `mapstructure:"DEDUPE"`
	PhoneSource          string        `mapstructure:"PHONE_SOURCE"`
}

// LoadEnv reads envFile (DefaultEnvFile when empty) and the process
// environment into a Config. Environment variables win over the file.
func LoadEnv(envFile string) (*Config, error) {
	v := viper.New()

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Logger.Debug("env file not found, using defaults", zap.String("file", envFile))
	}

	v.AutomaticEnv()

	v.SetDefault(FETCH_TIMEOUT, 30*time.Second)
	v.SetDefault(FETCH_RATE, 0)
	v.SetDefault(MAX_BODY_BYTES, 10<<20)
	v.SetDefault(USER_AGENT, "webrecon/1.0")
	v.SetDefault(SUBDOMAIN_TOOL, "sublist3r")
	v.SetDefault(SUBDOMAIN_TIMEOUT, 5*time.Minute)
	v.SetDefault(DIRSCAN_TOOL, "dirsearch")
	v.SetDefault(DIRSCAN_TIMEOUT, 10*time.Minute)
	v.SetDefault(DIRSCAN_EXTENSIONS, "*")
	v.SetDefault(DIRSCAN_EXCLUDE_STATUS, "400,403,404")
	v.SetDefault(DIRSCAN_FOUND_MARKER, "[+]")
	v.SetDefault(RUN_TIMEOUT, time.Duration(0))
	v.SetDefault(DEDUPE, false)
	v.SetDefault(PHONE_SOURCE, PhoneSourceHTML)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Logger.Error("failed to unmarshal config", zap.Error(err))
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 || c.SubdomainTimeout <= 0 || c.DirscanTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RunTimeout < 0 {
		return ErrInvalidRunTimeout
	}
	if c.FetchRate < 0 {
		return ErrInvalidRate
	}
	if c.MaxBodyBytes <= 0 {
		return ErrInvalidBodySize
	}
	if c.SubdomainTool == "" || c.DirscanTool == "" {
		return ErrMissingTool
	}
	switch c.PhoneSource {
	case PhoneSourceHTML, PhoneSourceText, PhoneSourceBoth:
	default:
		return ErrInvalidPhoneSource
	}
	return nil
}
