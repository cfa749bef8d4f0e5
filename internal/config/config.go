package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Detection thresholds, overridable per request
	TimeThresholdMin int64   // minutes
	DistThresholdKm  float64 // kilometers

	// IncludeWaypoints controls whether ingestion expands intermediate
	// waypoints of activity segments
	IncludeWaypoints bool
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/overlap/points.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:             port,
		DBPath:           dbPath,
		JWTSecret:        jwtSecret,
		TimeThresholdMin: envInt64("TIME_THRESHOLD_MIN", 120),
		DistThresholdKm:  envFloat("DIST_THRESHOLD_KM", 1.0),
		IncludeWaypoints: os.Getenv("INCLUDE_WAYPOINTS") == "true",
	}
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
