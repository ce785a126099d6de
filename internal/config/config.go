package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr            string
	MongoURI            string
	MongoDatabase       string
	RedisAddr           string
	KafkaBrokers        []string
	StripeSecretKey     string
	StripeWebhookSecret string
	AdminTokens         []string
	ServiceName         string
	Env                 string
}

func Load() Config {
	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		MongoURI:            getenv("MONGO_URI", "mongodb://mongo:27017/?replicaSet=rs0"),
		MongoDatabase:       getenv("MONGO_DB", "storefront"),
		RedisAddr:           getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:        splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminTokens:         splitCSV(os.Getenv("ADMIN_TOKENS")),
		ServiceName:         getenv("SERVICE_NAME", "storefront-api"),
		Env:                 getenv("APP_ENV", "development"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
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
