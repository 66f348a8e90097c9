package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Observ   ObservabilityConfig
	AI       AIConfig
	Business BusinessConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

type BusinessConfig struct {
	LeadTimeDays            int
	TargetServiceLevel      float64
	LowStockCheckSeconds    int
	AnalysisCacheTTLSeconds int
}

type CORSConfig struct {
	AllowOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	leadTime, _ := strconv.Atoi(getEnv("ANALYSIS_LEAD_TIME_DAYS", "14"))
	serviceLevel, _ := strconv.ParseFloat(getEnv("ANALYSIS_TARGET_SERVICE_LEVEL", "0.95"), 64)
	lowStockCheck, _ := strconv.Atoi(getEnv("LOW_STOCK_CHECK_SECONDS", "60"))
	cacheTTL, _ := strconv.Atoi(getEnv("ANALYSIS_CACHE_TTL_SECONDS", "3600"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
		},
		Business: BusinessConfig{
			LeadTimeDays:            leadTime,
			TargetServiceLevel:      serviceLevel,
			LowStockCheckSeconds:    lowStockCheck,
			AnalysisCacheTTLSeconds: cacheTTL,
		},
		CORS: CORSConfig{
			AllowOrigins: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"), ","),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
