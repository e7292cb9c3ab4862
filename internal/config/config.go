package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type Auth struct {
	JWTSecret  string
	SessionTTL time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Auth     Auth
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Auth:     *newAuth(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	origins := strings.Split(getenv("HTTP_ALLOWED_ORIGINS", "http://localhost:3000"), ";")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &HTTPServer{
		Port:           getenv("HTTP_PORT", "8080"),
		Host:           getenv("HTTP_HOST", "localhost"),
		AllowedOrigins: origins,
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:           getenv("DB_HOST", "localhost"),
		Port:           getenv("DB_PORT", "5432"),
		User:           getenv("DB_USER", "admin"),
		Password:       getenv("DB_PASSWORD", "shared"),
		DBName:         getenv("DB_NAME", "filmnest"),
		SSLMode:        getenv("DB_SSLMODE", "disable"),
		MigrationsPath: getenv("DB_MIGRATIONS_PATH", "file://migrations"),
	}
}

func newAuth() *Auth {
	ttlMinutes, err := strconv.Atoi(getenv("SESSION_TTL_MINUTES", "720"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 720
	}

	return &Auth{
		JWTSecret:  getenv("JWT_SECRET", "shared"),
		SessionTTL: time.Duration(ttlMinutes) * time.Minute,
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}
