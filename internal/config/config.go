package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver       string `toml:"db_driver"`
	DBHost         string `toml:"db_host"`
	DBPort         string `toml:"db_port"`
	DBUser         string `toml:"db_user"`
	DBPassword     string `toml:"db_password"`
	DBName         string `toml:"db_name"`
	SQLitePath     string `toml:"sqlite_path"`
	ServerPort     string `toml:"server_port"`
	JWTSecret      string `toml:"jwt_secret"`
	JWTExpiryHours int    `toml:"jwt_expiry_hours"`
	LogFormat      string `toml:"log_format"`
	LogLevel       string `toml:"log_level"`
	ColourPolicy   string `toml:"colour_policy"`
	CORSOrigins    string `toml:"cors_origins"`
}

// Load builds the configuration from, in increasing priority: built-in defaults,
// the TOML file named by CONFIG_FILE, and environment variables (a .env file included).
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	cfg := defaults()
	if path, ok := os.LookupEnv("CONFIG_FILE"); ok {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			slog.Warn("failed to read config file, ignoring it", "path", path, "error", err)
		}
	}
	cfg.applyEnv()
	return cfg
}

func defaults() *Config {
	return &Config{
		DBDriver:       "postgres",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "todo_user",
		DBPassword:     "todo_pass",
		DBName:         "todo_db",
		SQLitePath:     "todo.db",
		ServerPort:     "8080",
		JWTSecret:      "supersecretkey",
		JWTExpiryHours: 24,
		LogFormat:      "text",
		LogLevel:       "info",
		ColourPolicy:   "freeform",
		CORSOrigins:    "http://localhost:4200",
	}
}

func (c *Config) applyEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.ColourPolicy = getEnv("COLOUR_POLICY", c.ColourPolicy)
	c.CORSOrigins = getEnv("CORS_ORIGINS", c.CORSOrigins)

	if v, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "")); err == nil && v > 0 {
		c.JWTExpiryHours = v
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
