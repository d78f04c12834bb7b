// Package config 讀取服務設定：預設值 → 設定檔 (viper) → 環境變數 (envconfig)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `envconfig:"PORT" mapstructure:"port"`
	DatabaseURL string        `envconfig:"DATABASE_URL" mapstructure:"database_url" validate:"required"`
	Redis       Redis         `mapstructure:"redis"`
	JWT         JWT           `mapstructure:"jwt"`
	WorkerCount int           `envconfig:"WORKER_COUNT" mapstructure:"worker_count" validate:"gte=1"`
	CORSOrigins []string      `envconfig:"CORS_ORIGINS" mapstructure:"cors_origins"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" mapstructure:"cache_ttl"`
	Log         Log           `mapstructure:"log"`
	Mail        Mail          `mapstructure:"mail"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" mapstructure:"addr" validate:"required"`
	Password string `envconfig:"REDIS_PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"REDIS_DB" mapstructure:"db" validate:"gte=0"`
}

type JWT struct {
	Secret string        `envconfig:"JWT_SECRET" mapstructure:"secret" validate:"required"`
	TTL    time.Duration `envconfig:"JWT_TTL" mapstructure:"ttl" validate:"gt=0"`
}

type Log struct {
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `envconfig:"LOG_FILE" mapstructure:"file"`               // 空字串表示只輸出到 console
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // MB
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的舊檔數
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 天
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`
}

// Mail 未設定 Gmail 憑證時改用只寫 log 的 mailer
type Mail struct {
	From            string `envconfig:"MAIL_FROM" mapstructure:"from"`
	CredentialsFile string `envconfig:"GMAIL_CREDENTIALS_FILE" mapstructure:"credentials_file"`
	TokenFile       string `envconfig:"GMAIL_TOKEN_FILE" mapstructure:"token_file"`
}

// GmailEnabled 是否已提供 Gmail API 所需的檔案
func (m Mail) GmailEnabled() bool {
	return m.CredentialsFile != "" && m.TokenFile != ""
}

func Default() Config {
	return Config{
		Port:        "8080",
		WorkerCount: 2,
		CORSOrigins: []string{"http://localhost:5173"},
		CacheTTL:    60 * time.Second,
		JWT:         JWT{TTL: time.Hour},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

var (
	validate     = validator.New()
	envProcessFn = envconfig.Process
)

// Load 依序套用預設值、設定檔與環境變數，最後驗證。
// path 為空時改讀 CONFIG_FILE；兩者皆空則略過設定檔。
func Load(path string) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return Config{}, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("設定值無效: %w", err)
	}
	return cfg, nil
}

// LoadDatabase 給只連資料庫的維運指令使用，只要求 DATABASE_URL
func LoadDatabase(path string) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return Config{}, err
	}
	if err := validate.Var(cfg.DatabaseURL, "required"); err != nil {
		return Config{}, fmt.Errorf("設定值無效: DATABASE_URL: %w", err)
	}
	return cfg, nil
}

func read(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("讀取設定檔失敗: %w", err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("解析設定檔失敗: %w", err)
		}
	}

	if err := envProcessFn("", &cfg); err != nil {
		return Config{}, fmt.Errorf("讀取環境變數失敗: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	return cfg, nil
}
