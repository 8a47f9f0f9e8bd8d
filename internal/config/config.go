package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AdminConfig struct {
	JWTSecret string
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	upstreamURL := os.Getenv("UPSTREAM_BASE_URL")
	if upstreamURL == "" {
		return nil, fmt.Errorf("%s: missing UPSTREAM_BASE_URL", op)
	}

	upstreamTimeoutStr := os.Getenv("UPSTREAM_TIMEOUT")
	if upstreamTimeoutStr == "" {
		upstreamTimeoutStr = "30s"
	}

	upstreamTimeout, err := time.ParseDuration(upstreamTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid UPSTREAM_TIMEOUT: %w", op, err)
	}

	upstreamCfg := UpstreamConfig{
		BaseURL: upstreamURL,
		Timeout: upstreamTimeout,
	}

	jwtSecret := os.Getenv("ADMIN_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing ADMIN_JWT_SECRET", op)
	}

	adminCfg := AdminConfig{
		JWTSecret: jwtSecret,
	}

	return &Config{
		Server:   serverCfg,
		Redis:    redisCfg,
		Upstream: upstreamCfg,
		Admin:    adminCfg,
	}, nil
}
