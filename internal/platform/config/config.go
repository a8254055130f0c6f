package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// OpeningBalance is the balance a newly registered user receives in one currency.
type OpeningBalance struct {
	Currency string
	Amount   decimal.Decimal
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBMaxConns        int32
	RunMigrations     bool
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          string
	ServiceName       string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Ledger engine
	LockTimeout          time.Duration
	SystemUserID         string
	RegistrationBalances []OpeningBalance
	MaxPageSize          int

	// HTTP edge
	CORSAllowedOrigins []string
	RateLimitAuth      string
	RateLimitAPI       string
	RedisURL           string
}

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVICE_NAME", "wallet-ledger")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "wallet-ledger")
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("SYSTEM_USER_ID", domain.SystemUserID)
	v.SetDefault("REGISTRATION_BALANCES", "USD:1000.00,EUR:500.00")
	v.SetDefault("MAX_PAGE_SIZE", 100)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_AUTH", "5-M")
	v.SetDefault("RATE_LIMIT_API", "300-M")
	v.SetDefault("REDIS_URL", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		DBMaxConns:    v.GetInt32("DB_MAX_CONNS"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		ServiceName:   v.GetString("SERVICE_NAME"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		SystemUserID:  v.GetString("SYSTEM_USER_ID"),
		RateLimitAuth: v.GetString("RATE_LIMIT_AUTH"),
		RateLimitAPI:  v.GetString("RATE_LIMIT_API"),
		RedisURL:      v.GetString("REDIS_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureJWTSecret {
		if v.GetBool("IS_PRODUCTION") {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = insecureJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	lockTimeoutStr := v.GetString("LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil || lockTimeout <= 0 {
		return nil, fmt.Errorf("invalid LOCK_TIMEOUT %q: must be a positive duration", lockTimeoutStr)
	}
	cfg.LockTimeout = lockTimeout

	balances, err := ParseOpeningBalances(v.GetString("REGISTRATION_BALANCES"))
	if err != nil {
		return nil, err
	}
	cfg.RegistrationBalances = balances

	cfg.MaxPageSize = v.GetInt("MAX_PAGE_SIZE")
	if cfg.DBMaxConns < 1 {
		cfg.DBMaxConns = 20
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// ParseOpeningBalances parses "USD:1000.00,EUR:500.00" into ordered opening balances.
func ParseOpeningBalances(raw string) ([]OpeningBalance, error) {
	var balances []OpeningBalance
	seen := map[string]bool{}
	for _, item := range splitList(raw) {
		currency, amountStr, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid REGISTRATION_BALANCES entry %q: want CUR:amount", item)
		}
		currency = strings.ToUpper(strings.TrimSpace(currency))
		if len(currency) != 3 {
			return nil, fmt.Errorf("invalid REGISTRATION_BALANCES currency %q", currency)
		}
		if seen[currency] {
			return nil, fmt.Errorf("duplicate REGISTRATION_BALANCES currency %q", currency)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("invalid REGISTRATION_BALANCES amount %q for %s", amountStr, currency)
		}
		seen[currency] = true
		balances = append(balances, OpeningBalance{Currency: currency, Amount: amount})
	}
	return balances, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
