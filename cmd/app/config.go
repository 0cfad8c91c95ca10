package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BMWADFORTH"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	TracingEnabled bool `mapstructure:"TRACING_ENABLED"`

	DB       DBConfig       `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	Blob     BlobConfig     `mapstructure:",squash"`
	RabbitMQ RabbitMQConfig `mapstructure:",squash"`
	Mail     MailConfig     `mapstructure:",squash"`
}

type DBConfig struct {
	URL          string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	MaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`
}

type AuthConfig struct {
	Key            string  `mapstructure:"AUTH_KEY"`
	Issuer         string  `mapstructure:"AUTH_ISSUER"`
	Audience       string  `mapstructure:"AUTH_AUDIENCE"`
	LoginRateLimit float64 `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateBurst int     `mapstructure:"LOGIN_RATE_BURST"`
}

type BlobConfig struct {
	Backend        string `mapstructure:"BLOB_BACKEND"`
	MaxUploadBytes int64  `mapstructure:"BLOB_MAX_UPLOAD_BYTES"`

	S3Region          string `mapstructure:"S3_REGION"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `mapstructure:"S3_USE_PATH_STYLE"`
	S3KeyPrefix       string `mapstructure:"S3_KEY_PREFIX"`
	S3CreateBucket    bool   `mapstructure:"S3_CREATE_BUCKET"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"RABBITMQ_URL"`
}

type MailConfig struct {
	Host     string `mapstructure:"MAIL_HOST"`
	Port     int    `mapstructure:"MAIL_PORT"`
	User     string `mapstructure:"MAIL_USER"`
	Password string `mapstructure:"MAIL_PASSWORD"`
	Sender   string `mapstructure:"MAIL_SENDER"`
}

var configDefaults = map[string]any{
	"PORT":                  ":8080",
	"ENVIRONMENT":           "development",
	"VERSION":               "dev",
	"TLS_CERT_FILE":         "",
	"TLS_KEY_FILE":          "",
	"TRACING_ENABLED":       false,
	"DATABASE_URL":          "",
	"DB_MAX_OPEN_CONNS":     25,
	"DB_MAX_IDLE_CONNS":     25,
	"DB_MAX_IDLE_TIME":      "15m",
	"AUTH_KEY":              "",
	"AUTH_ISSUER":           "articlehub",
	"AUTH_AUDIENCE":         "articlehub",
	"LOGIN_RATE_LIMIT":      1.0,
	"LOGIN_RATE_BURST":      5,
	"BLOB_BACKEND":          "s3",
	"BLOB_MAX_UPLOAD_BYTES": 32 << 20,
	"S3_REGION":             "us-east-1",
	"S3_BUCKET":             "",
	"S3_ENDPOINT":           "",
	"S3_ACCESS_KEY_ID":      "",
	"S3_SECRET_ACCESS_KEY":  "",
	"S3_USE_PATH_STYLE":     false,
	"S3_KEY_PREFIX":         "blobs",
	"S3_CREATE_BUCKET":      false,
	"RABBITMQ_URL":          "",
	"MAIL_HOST":             "",
	"MAIL_PORT":             587,
	"MAIL_USER":             "",
	"MAIL_PASSWORD":         "",
	"MAIL_SENDER":           "",
}

// loadConfig reads the optional dotenv file at path, then lets BMWADFORTH_* environment variables override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Auth.Key == "" {
		errs = append(errs, errors.New("AUTH_KEY is required"))
	}

	switch c.Blob.Backend {
	case "memory":
	case "s3":
		if c.Blob.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when BLOB_BACKEND is s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be s3 or memory, got %q", c.Blob.Backend))
	}

	if c.Blob.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("BLOB_MAX_UPLOAD_BYTES must be positive"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}

	return errors.Join(errs...)
}
