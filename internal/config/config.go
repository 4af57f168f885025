package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	PolicyFile         string
	PolicyDir          string
	DefaultPolicy      string
	ParallelSignatures bool

	ReportCacheTTLSeconds int
	ReportCacheMaxEntries int
	MaxRequestBytes       int64

	RateLimitRequests      int
	RateLimitWindowSeconds int
	RateLimitFailClosed    bool
	RateLimitMaxKeys       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// defaults is registered with viper and also used when a numeric setting is
// out of range.
var defaults = map[string]any{
	"HTTP_ADDR":                 ":8080",
	"LOG_LEVEL":                 "info",
	"PARALLEL_SIGNATURES":       false,
	"REPORT_CACHE_TTL_SECONDS":  300,
	"REPORT_CACHE_MAX_ENTRIES":  1000,
	"MAX_REQUEST_BYTES":         8 << 20,
	"RATE_LIMIT_REQUESTS":       0,
	"RATE_LIMIT_WINDOW_SECONDS": 60,
	"RATE_LIMIT_FAIL_CLOSED":    false,
	"RATE_LIMIT_MAX_KEYS":       10000,
	"REDIS_DB":                  0,
}

// FromEnv reads the configuration from the environment. SIGVAL_CONFIG may
// name a yaml/json/toml file whose keys use the same names as the variables.
func FromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := strings.TrimSpace(v.GetString("SIGVAL_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}

	cfg := Config{
		HTTPAddr:               v.GetString("HTTP_ADDR"),
		PostgresDSN:            v.GetString("POSTGRES_DSN"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		PolicyFile:             v.GetString("POLICY_FILE"),
		PolicyDir:              v.GetString("POLICY_DIR"),
		DefaultPolicy:          v.GetString("DEFAULT_POLICY"),
		ParallelSignatures:     v.GetBool("PARALLEL_SIGNATURES"),
		ReportCacheTTLSeconds:  nonNegative(v, "REPORT_CACHE_TTL_SECONDS"),
		ReportCacheMaxEntries:  positive(v, "REPORT_CACHE_MAX_ENTRIES"),
		MaxRequestBytes:        int64(positive(v, "MAX_REQUEST_BYTES")),
		RateLimitRequests:      nonNegative(v, "RATE_LIMIT_REQUESTS"),
		RateLimitWindowSeconds: positive(v, "RATE_LIMIT_WINDOW_SECONDS"),
		RateLimitFailClosed:    v.GetBool("RATE_LIMIT_FAIL_CLOSED"),
		RateLimitMaxKeys:       positive(v, "RATE_LIMIT_MAX_KEYS"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                nonNegative(v, "REDIS_DB"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// positive falls back to the default for zero, negative or malformed values.
func positive(v *viper.Viper, key string) int {
	n := v.GetInt(key)
	if n <= 0 {
		return defaultInt(key)
	}
	return n
}

func nonNegative(v *viper.Viper, key string) int {
	n := v.GetInt(key)
	if n < 0 {
		return defaultInt(key)
	}
	return n
}

func defaultInt(key string) int {
	n, _ := defaults[key].(int)
	return n
}

func (c Config) ReportCacheTTL() time.Duration {
	if c.ReportCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ReportCacheTTLSeconds) * time.Second
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}
