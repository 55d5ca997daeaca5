// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env           string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
}

func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DB", "meetmeds"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisUsername: getenv("REDIS_USERNAME", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
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
	if err != nil {
		return def
	}
	return n
}
