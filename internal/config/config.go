package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Notify     NotifyConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret              string
	RefreshExpiration   string
	AccessExpiration    string
	ResetPasswordExpiry string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
	CORSOrigins []string
}

// SMTPConfig holds outgoing mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type NotifyConfig struct {
	AdminEmail string
}

// AttendanceConfig is the shift used for users without an assigned schedule.
type AttendanceConfig struct {
	DefaultStartTime   string
	DefaultGraceMinute int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "asistencia_db"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.CORSOrigins) == 0 {
		config.App.CORSOrigins = []string{config.App.FrontendURL}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:              getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration:   getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:    getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		ResetPasswordExpiry: getEnv("JWT_RESET_PASSWORD_EXPIRATION_TIME", "600s"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", getEnv("SMTP_USERNAME", "")),
		FromName: getEnv("SMTP_FROM_NAME", "Sistema de Asistencia"),
	}

	config.Notify = NotifyConfig{
		AdminEmail: getEnv("ADMIN_NOTIFY_EMAIL", ""),
	}

	grace, err := strconv.Atoi(getEnv("ATTENDANCE_DEFAULT_GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEFAULT_GRACE_MINUTES: %w", err)
	}
	config.Attendance = AttendanceConfig{
		DefaultStartTime:   getEnv("ATTENDANCE_DEFAULT_START_TIME", "08:05"),
		DefaultGraceMinute: grace,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	for name, value := range map[string]string{
		"JWT_ACCESS_EXPIRATION_TIME":         c.JWT.AccessExpiration,
		"JWT_REFRESH_EXPIRATION_TIME":        c.JWT.RefreshExpiration,
		"JWT_RESET_PASSWORD_EXPIRATION_TIME": c.JWT.ResetPasswordExpiry,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if _, ok := validator.IsValidTimeOfDay(c.Attendance.DefaultStartTime); !ok {
		return fmt.Errorf("invalid ATTENDANCE_DEFAULT_START_TIME %q", c.Attendance.DefaultStartTime)
	}
	if c.Attendance.DefaultGraceMinute < 0 {
		return fmt.Errorf("ATTENDANCE_DEFAULT_GRACE_MINUTES must not be negative")
	}
	return nil
}

// Location returns the time zone every attendance instant is evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogLevel maps LOG_LEVEL to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
