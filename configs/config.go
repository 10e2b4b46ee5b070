package configs

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Port           string
	DBDriver       string
	DBSource       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	JWTSecret      string
	JWTTTL         time.Duration
	UploadDir      string
	PublicBaseURL  string
	CORSOrigins    []string
	CancelWindow   time.Duration
	LogLevel       slog.Level

	SeedShopEmail    string
	SeedShopPassword string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process environment")
	}

	return &Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnv("PORT", "8000"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:       getEnv("DB_SOURCE", "carrental.db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		CancelWindow:   time.Duration(getEnvInt("CANCEL_WINDOW_MINUTES", 120)) * time.Minute,
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),

		SeedShopEmail:    os.Getenv("SEED_SHOP_EMAIL"),
		SeedShopPassword: os.Getenv("SEED_SHOP_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("invalid integer env, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
