package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and handed to the server and the session
// authority; nothing mutates it afterwards.
type Config struct {
	ServerAddr string
	AppEnv     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	AllowedOrigins []string
	JenisAllowed   []string
	PosisiAllowed  []string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":4000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "db_partkatalog"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS",
			"http://localhost:5173", "http://localhost:5174"),
		JenisAllowed: getEnvList("JENIS_ALLOWED",
			"Truck Heavy-duty", "Truck Medium-duty", "Truck Light-duty"),
		PosisiAllowed: getEnvList("POSISI_ALLOWED",
			"Engine", "Powertrain", "Chassis/Tool", "Electrical", "Cabin/Rear Body"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

// Production reports whether the process serves traffic over HTTPS; it
// controls the Secure flag on the session cookie.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func (c *Config) ValidateSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.Production() && c.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("cannot use the default dev secret in production")
	}
	return nil
}

func (c *Config) JenisValid(jenis string) bool {
	return contains(c.JenisAllowed, jenis)
}

func (c *Config) PosisiValid(posisi string) bool {
	return contains(c.PosisiAllowed, posisi)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback ...string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
