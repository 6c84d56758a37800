package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PolicyConfig holds the labor-constraint knobs. The defaults mirror the
// standard full-time contract: 5 working days, 8h/day, 40h/week, a 60min
// unpaid break, and 8h of overtime allocation per month.
type PolicyConfig struct {
	MaxShiftsPerWeek      int
	MaxDailyHours         float64
	MaxWeeklyHours        float64
	MaxConsecutiveShifts  int
	DefaultBreakMinutes   int
	DefaultMonthlyOTHours float64
}

func Load() (*Config, error) {
	// .env is optional; deployments may inject env vars directly.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shift_scheduler"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	maxShifts, err := strconv.Atoi(getEnv("POLICY_MAX_SHIFTS_PER_WEEK", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_MAX_SHIFTS_PER_WEEK: %w", err)
	}
	maxDaily, err := strconv.ParseFloat(getEnv("POLICY_MAX_DAILY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_MAX_DAILY_HOURS: %w", err)
	}
	maxWeekly, err := strconv.ParseFloat(getEnv("POLICY_MAX_WEEKLY_HOURS", "40"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_MAX_WEEKLY_HOURS: %w", err)
	}
	maxConsecutive, err := strconv.Atoi(getEnv("POLICY_MAX_CONSECUTIVE_SHIFTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_MAX_CONSECUTIVE_SHIFTS: %w", err)
	}
	breakMinutes, err := strconv.Atoi(getEnv("POLICY_DEFAULT_BREAK_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_DEFAULT_BREAK_MINUTES: %w", err)
	}
	monthlyOT, err := strconv.ParseFloat(getEnv("POLICY_DEFAULT_MONTHLY_OT_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_DEFAULT_MONTHLY_OT_HOURS: %w", err)
	}

	config.Policy = PolicyConfig{
		MaxShiftsPerWeek:      maxShifts,
		MaxDailyHours:         maxDaily,
		MaxWeeklyHours:        maxWeekly,
		MaxConsecutiveShifts:  maxConsecutive,
		DefaultBreakMinutes:   breakMinutes,
		DefaultMonthlyOTHours: monthlyOT,
	}

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
	if c.Policy.MaxShiftsPerWeek <= 0 {
		return fmt.Errorf("POLICY_MAX_SHIFTS_PER_WEEK must be positive")
	}
	if c.Policy.MaxDailyHours <= 0 || c.Policy.MaxWeeklyHours <= 0 {
		return fmt.Errorf("policy hour limits must be positive")
	}
	return nil
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
