// file: config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	BaseURL  string
	DBDriver string // mysql / memory
	MySQLDSN string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	SeedData  bool

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load 读取 .env（存在时）并从环境变量构造配置
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
		DBDriver:      getenv("DB_DRIVER", "mysql"),
		MySQLDSN:      getenv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/aohf_ctf?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "a-very-secure-secret-that-should-be-in-config-file"),
		SeedData:      os.Getenv("SEED_DATA") == "1",
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("GMAIL_USER"),
		SMTPPassword:  os.Getenv("GMAIL_APP_PASSWORD"),
	}
}
