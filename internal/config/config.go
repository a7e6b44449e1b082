package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env         string
	ServerURL   string        // HanashiNoMori 后端地址
	HTTPTimeout time.Duration // 传输层超时（连接/读/写共用）
	CachePath   string        // 本地目录快照数据库路径（离线浏览）
	MockPort    string
	MockDBPath  string
	JWTSecret   string
	JWTExpiry   time.Duration
}

// Load 加载配置
func Load() *Config {
	timeoutSeconds, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "30"))
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))

	home, _ := os.UserHomeDir()
	defaultCachePath := filepath.Join(home, ".hanashi", "cache.db")

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServerURL:   getEnv("HANASHI_SERVER_URL", "http://localhost:8080"),
		HTTPTimeout: time.Duration(timeoutSeconds) * time.Second,
		CachePath:   getEnv("HANASHI_CACHE_PATH", defaultCachePath),
		MockPort:    getEnv("MOCK_PORT", "8080"),
		MockDBPath:  getEnv("MOCK_DB_PATH", "hanashi-mock.db"),
		JWTSecret:   getEnv("APP_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   time.Duration(expiryHours) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
