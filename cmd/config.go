package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	KafkaHost              string
	KafkaConsumerGroup     string
	KafkaOrderChangedTopic string

	JWTSecret    string
	OTelEndpoint string
}

// PostgresURL is accepted both by lib/pq and by golang-migrate.
func (c Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.DBSslMode,
	}
	return u.String()
}

// KafkaBrokers splits the comma separated KAFKA_HOST value.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) Validate() error {
	required := []struct{ name, value string }{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_NAME", c.DBName},
		{"REDIS_ADDR", c.RedisAddr},
		{"KAFKA_HOST", c.KafkaHost},
		{"JWT_SECRET", c.JWTSecret},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
