/**
* Name: 			config.go
* Description: 		서버 설정 로딩 (.env, config.yaml, 환경변수)
* Workflow: 		.env 로드 -> YAML 파일 적용 -> 환경변수로 덮어쓰기 -> 기본값 보정
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort          = 8080
	defaultModelDir      = "model"
	defaultTokenTTL      = 24 * time.Hour
	defaultJWTSecret     = "default_secret_key"
	defaultRetentionScan = time.Hour

	// MaxRetentionDays keeps the retention window well inside time.Duration.
	MaxRetentionDays = 36500
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret        string        `yaml:"jwtSecret"`
		TokenTTL         time.Duration `yaml:"tokenTTL"`
		SignupInviteCode string        `yaml:"signupInviteCode"`
		// 초당 로그인 요청 수, 0이면 제한 없음
		LoginRateLimit float64 `yaml:"loginRateLimit"`
	} `yaml:"auth"`

	Model struct {
		Dir string `yaml:"dir"`
	} `yaml:"model"`

	ModelStore struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		Bucket    string `yaml:"bucket"`
		Prefix    string `yaml:"prefix"`
		Region    string `yaml:"region"`
		UseSSL    bool   `yaml:"useSSL"`
	} `yaml:"modelStore"`

	History struct {
		RetentionDays int           `yaml:"retentionDays"`
		PruneInterval time.Duration `yaml:"pruneInterval"`
	} `yaml:"history"`

	// JWT 키가 기본값으로 채워졌는지 여부 (경고 로그용)
	UsingDefaultJWTSecret bool `yaml:"-"`
}

// Load reads .env (if present), then the YAML file at path (if non-empty and present),
// then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load(): failed to read .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config.Load(): failed to parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// 파일이 없으면 환경변수만 사용
		default:
			return nil, fmt.Errorf("config.Load(): failed to read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if cfg.History.RetentionDays > MaxRetentionDays {
		return nil, fmt.Errorf("config.Load(): history retention of %d days exceeds %d", cfg.History.RetentionDays, MaxRetentionDays)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}
	if v := os.Getenv("SIGNUP_INVITE_CODE"); v != "" {
		c.Auth.SignupInviteCode = v
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid LOGIN_RATE_LIMIT %q: %w", v, err)
		}
		c.Auth.LoginRateLimit = rps
	}
	if v := os.Getenv("MODEL_DIR"); v != "" {
		c.Model.Dir = v
	}
	if v := os.Getenv("HISTORY_RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid HISTORY_RETENTION_DAYS %q: %w", v, err)
		}
		c.History.RetentionDays = days
	}

	if v := os.Getenv("MODEL_STORE_ENDPOINT"); v != "" {
		c.ModelStore.Endpoint = v
	}
	if v := os.Getenv("MODEL_STORE_ACCESS_KEY"); v != "" {
		c.ModelStore.AccessKey = v
	}
	if v := os.Getenv("MODEL_STORE_SECRET_KEY"); v != "" {
		c.ModelStore.SecretKey = v
	}
	if v := os.Getenv("MODEL_STORE_BUCKET"); v != "" {
		c.ModelStore.Bucket = v
	}
	if v := os.Getenv("MODEL_STORE_PREFIX"); v != "" {
		c.ModelStore.Prefix = v
	}
	if v := os.Getenv("MODEL_STORE_REGION"); v != "" {
		c.ModelStore.Region = v
	}
	if v := os.Getenv("MODEL_STORE_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid MODEL_STORE_USE_SSL %q: %w", v, err)
		}
		c.ModelStore.UseSSL = useSSL
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.Env == "" {
		c.Server.Env = "production"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = defaultJWTSecret
		c.UsingDefaultJWTSecret = true
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}
	if c.Model.Dir == "" {
		c.Model.Dir = defaultModelDir
	}
	if c.History.RetentionDays < 0 {
		c.History.RetentionDays = 0
	}
	if c.History.PruneInterval <= 0 {
		c.History.PruneInterval = defaultRetentionScan
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Env)
	return env == "development" || env == "dev" || env == "local"
}

// ConsoleLogging reports whether logs should use the development console encoder.
// Debug logging implies it even in production mode.
func (c *Config) ConsoleLogging() bool {
	return c.IsDevelopment() || strings.EqualFold(strings.TrimSpace(c.Log.Level), "debug")
}

// Retention returns how long analysis history is kept. Zero means forever.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.History.RetentionDays) * 24 * time.Hour
}

// ModelStoreEnabled reports whether artifacts should be fetched from object storage.
func (c *Config) ModelStoreEnabled() bool {
	return c.ModelStore.Endpoint != "" && c.ModelStore.Bucket != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
