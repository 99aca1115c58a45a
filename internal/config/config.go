package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DOCOUTLINE_SERVER_PORT.
const EnvPrefix = "DOCOUTLINE"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Policy PolicyConfig `mapstructure:"policy"`
}

type ServerConfig struct {
	Port   string `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`

	// Worker pool
	WorkerCount  int `mapstructure:"worker_count"`
	MaxQueueSize int `mapstructure:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// Job state and finished outlines
	JobTTL   time.Duration `mapstructure:"job_ttl"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type BatchConfig struct {
	InputDir string `mapstructure:"input_dir"`
}

type OutputConfig struct {
	Type string `mapstructure:"type"` // local or minio
	Dir  string `mapstructure:"dir"`

	// MinIO / S3
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type PolicyConfig struct {
	SizeMultiplier      float64 `mapstructure:"size_multiplier"`
	MergeDistance       float64 `mapstructure:"merge_distance"`
	MinChars            int     `mapstructure:"min_chars"`
	MaxWords            int     `mapstructure:"max_words"`
	ExcludeInvalidSizes bool    `mapstructure:"exclude_invalid_sizes"`
	FallbackTitle       string  `mapstructure:"fallback_title"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Server.WorkerCount <= 0 {
		cfg.Server.WorkerCount = 2
	}
	if cfg.Server.MaxQueueSize <= 0 {
		cfg.Server.MaxQueueSize = 100
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = 52428800
	}
	if cfg.Server.JobTTL <= 0 {
		cfg.Server.JobTTL = 1 * time.Hour
	}
	if cfg.Server.CacheTTL <= 0 {
		cfg.Server.CacheTTL = 1 * time.Hour
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8090")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.worker_count", 2)
	v.SetDefault("server.max_queue_size", 100)
	v.SetDefault("server.max_upload_bytes", 52428800) // 50MB
	v.SetDefault("server.job_ttl", "1h")
	v.SetDefault("server.cache_ttl", "1h")

	v.SetDefault("batch.input_dir", "/app/input")

	v.SetDefault("output.type", "local")
	v.SetDefault("output.dir", "/app/output")
	v.SetDefault("output.endpoint", "")
	v.SetDefault("output.access_key", "")
	v.SetDefault("output.secret_key", "")
	v.SetDefault("output.bucket", "outlines")
	v.SetDefault("output.prefix", "")
	v.SetDefault("output.region", "us-east-1")
	v.SetDefault("output.use_ssl", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	def := outline.DefaultPolicy()
	v.SetDefault("policy.size_multiplier", def.SizeMultiplier)
	v.SetDefault("policy.merge_distance", def.MergeDistance)
	v.SetDefault("policy.min_chars", def.MinChars)
	v.SetDefault("policy.max_words", def.MaxWords)
	v.SetDefault("policy.exclude_invalid_sizes", def.ExcludeInvalidSizes)
	v.SetDefault("policy.fallback_title", def.FallbackTitle)
}

// OutlinePolicy converts the policy section into pipeline heuristics.
func (c Config) OutlinePolicy() outline.Policy {
	return outline.Policy{
		SizeMultiplier:      c.Policy.SizeMultiplier,
		MergeDistance:       c.Policy.MergeDistance,
		MinChars:            c.Policy.MinChars,
		MaxWords:            c.Policy.MaxWords,
		ExcludeInvalidSizes: c.Policy.ExcludeInvalidSizes,
		FallbackTitle:       c.Policy.FallbackTitle,
	}
}

// Validate checks settings every command depends on.
func (c Config) Validate() error {
	if err := c.OutlinePolicy().Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	switch c.Output.Type {
	case "local":
		if c.Output.Dir == "" {
			return errors.New("output.dir is required for local output")
		}
	case "minio":
		if c.Output.Endpoint == "" || c.Output.Bucket == "" {
			return errors.New("output.endpoint and output.bucket are required for minio output")
		}
	default:
		return fmt.Errorf("unknown output.type %q", c.Output.Type)
	}
	return nil
}

// ValidateServe additionally checks settings needed by the HTTP server.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.APIKey == "" {
		return fmt.Errorf("%s_SERVER_API_KEY is required", EnvPrefix)
	}
	return nil
}
