// Package config загрузка конфигурации сервиса из TOML файла
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Schedule       ScheduleConfig       `toml:"schedule"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Email          EmailConfig          `toml:"email"`
	Auth           AuthConfig           `toml:"auth"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig расписание работы салона и параметры слотов.
// Значения по умолчанию соответствуют наблюдаемой конфигурации салона:
// 09:00-20:00, слот 30 минут, закрыто в воскресенье, холд 10 минут.
type ScheduleConfig struct {
	OpenHour      int    `toml:"open_hour"`
	CloseHour     int    `toml:"close_hour"`
	SlotMinutes   int    `toml:"slot_minutes"`
	ClosedWeekday int    `toml:"closed_weekday"` // 0 = Sunday ... 6 = Saturday
	HoldMinutes   int    `toml:"hold_minutes"`
	Timezone      string `toml:"timezone"`
}

// HoldWindow возвращает окно жизни pending-брони
func (s ScheduleConfig) HoldWindow() time.Duration {
	return time.Duration(s.HoldMinutes) * time.Minute
}

// Location загружает таймзону салона
func (s ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// GoogleCalendarConfig настройки интеграции с Google Calendar
type GoogleCalendarConfig struct {
	Enabled     bool   `toml:"enabled"`
	CalendarID  string `toml:"calendar_id"`
	ClientEmail string `toml:"client_email"`
	PrivateKey  string `toml:"private_key"`
	Timeout     int    `toml:"timeout"`
}

// EmailConfig настройки отправки писем подтверждения
type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	// AppBaseURL база для ссылок подтверждения/отмены в письмах
	AppBaseURL string `toml:"app_base_url"`
}

// AuthConfig настройки авторизации административных действий
type AuthConfig struct {
	AdminEmail string `toml:"admin_email"`
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Schedule: ScheduleConfig{
			OpenHour:      9,
			CloseHour:     20,
			SlotMinutes:   30,
			ClosedWeekday: int(time.Sunday),
			HoldMinutes:   10,
			Timezone:      "Europe/Madrid",
		},
		GoogleCalendar: GoogleCalendarConfig{
			CalendarID: "primary",
			Timeout:    15,
		},
		Email: EmailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
		},
	}
}

func (c *Config) validate() error {
	if c.Schedule.OpenHour < 0 || c.Schedule.OpenHour > 23 {
		return fmt.Errorf("schedule.open_hour out of range: %d", c.Schedule.OpenHour)
	}
	if c.Schedule.CloseHour < 1 || c.Schedule.CloseHour > 24 {
		return fmt.Errorf("schedule.close_hour out of range: %d", c.Schedule.CloseHour)
	}
	if c.Schedule.CloseHour <= c.Schedule.OpenHour {
		return fmt.Errorf("schedule.close_hour must be after open_hour")
	}
	if c.Schedule.SlotMinutes <= 0 {
		return fmt.Errorf("schedule.slot_minutes must be positive")
	}
	if c.Schedule.ClosedWeekday < 0 || c.Schedule.ClosedWeekday > 6 {
		return fmt.Errorf("schedule.closed_weekday out of range: %d", c.Schedule.ClosedWeekday)
	}
	if c.Schedule.HoldMinutes <= 0 {
		return fmt.Errorf("schedule.hold_minutes must be positive")
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	return nil
}
