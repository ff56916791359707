package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	LogLevel  string
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Admin     AdminConfig
	Scheduler SchedulerConfig
	Auth      AuthConfig
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	RunMigrations bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// SessionConfig: пустой Key допустим только вне prod, тогда ключ генерируется при старте
type SessionConfig struct {
	Key  string
	Name string
}

// AdminConfig - встроенная учетная запись администратора, проверяется без обращения к БД.
// Пустой пароль отключает ее.
type AdminConfig struct {
	Username string
	Password string
}

type SchedulerConfig struct {
	SweepInterval    time.Duration
	PresenceInterval time.Duration
	Location         *time.Location
}

type AuthConfig struct {
	BcryptCost int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "crm"),
			Password:      getEnv("DB_PASSWORD", "crm"),
			DBName:        getEnv("DB_NAME", "crm"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			RunMigrations: getBool("RUN_MIGRATIONS", true),

			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectTimeout:  getDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			Key:  getEnv("SESSION_KEY", ""),
			Name: getEnv("SESSION_NAME", "crm-session"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Scheduler: SchedulerConfig{
			SweepInterval:    getDuration("SWEEP_INTERVAL", 60*time.Second),
			PresenceInterval: getDuration("PRESENCE_INTERVAL", 5*time.Second),
			Location:         getLocation("TIMEZONE"),
		},
		Auth: AuthConfig{
			BcryptCost: getInt("BCRYPT_COST", 10),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
