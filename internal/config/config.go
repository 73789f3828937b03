package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr      string
	RedisAddr     string
	KafkaBrokers  []string
	ServiceName   string
	InventoryPath string
	SyncGroup     string
	SyncWorkers   int
}

func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8081"),
		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:  splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		ServiceName:   getenv("SERVICE_NAME", "shop-api"),
		InventoryPath: getenv("INVENTORY_PATH", ""),
		SyncGroup:     getenv("SYNC_GROUP", "stock-sync"),
		SyncWorkers:   getenvInt("SYNC_WORKERS", 8),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
