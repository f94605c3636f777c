package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, например SCHEDULER_DATABASE_PASSWORD
const EnvPrefix = "SCHEDULER"

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride возвращается при некорректных переменных окружения
	ErrEnvOverride = errors.New("config: failed to apply env overrides")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
// Имена переменных окружения строятся из имён полей: Database.MaxOpenConns -> SCHEDULER_DATABASE_MAX_OPEN_CONNS
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// LogsConfig настройки логирования, пустой File означает stdout
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// CalendarConfig настройки интеграции с Google Calendar
type CalendarConfig struct {
	ClientID     string `toml:"client_id" split_words:"true"`
	ClientSecret string `toml:"client_secret" split_words:"true"`
	RefreshToken string `toml:"refresh_token" split_words:"true"`
	Endpoint     string `toml:"endpoint" split_words:"true"`
	Timeout      int    `toml:"timeout" split_words:"true"` // секунды
}

// SchedulingConfig настройки расчёта занятости
type SchedulingConfig struct {
	Timezone        string `toml:"timezone" split_words:"true"`
	FanOut          int    `toml:"fan_out" split_words:"true"`           // параллельных загрузок календарей на запрос
	SyncHorizonDays int    `toml:"sync_horizon_days" split_words:"true"` // горизонт "sync now"
	FetchTimeout    int    `toml:"fetch_timeout" split_words:"true"`     // секунды на календарь одного клинера
}

// Load загружает конфигурацию из TOML файла
// Затем подгружается .env (если есть) и применяются переменные окружения SCHEDULER_*
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %v", ErrEnvOverride, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-team-scheduling"
	}

	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
	if c.Scheduling.FanOut == 0 {
		c.Scheduling.FanOut = 8
	}
	if c.Scheduling.SyncHorizonDays == 0 {
		c.Scheduling.SyncHorizonDays = 14
	}
	if c.Scheduling.FetchTimeout == 0 {
		c.Scheduling.FetchTimeout = 5
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}

	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logs.level %q", ErrInvalidConfig, c.Logs.Level)
	}

	if c.Scheduling.FanOut < 1 {
		return fmt.Errorf("%w: scheduling.fan_out must be at least 1", ErrInvalidConfig)
	}
	if c.Scheduling.SyncHorizonDays < 0 {
		return fmt.Errorf("%w: scheduling.sync_horizon_days must not be negative", ErrInvalidConfig)
	}
	if c.Scheduling.FetchTimeout <= 0 || c.Calendar.Timeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}

	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс, в котором считаются даты и рабочие часы
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// FetchTimeoutDuration таймаут загрузки календаря одного клинера
func (s SchedulingConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(s.FetchTimeout) * time.Second
}

// Enabled true, если заданы учётные данные Google Calendar
func (c CalendarConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}
