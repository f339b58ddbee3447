package cmd

import "time"

type Config struct {
	Environment string
	HTTPPort    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers     string
	KafkaEventsTopic string

	FCMEndpoint  string
	FCMServerKey string
	ExpoEndpoint string

	OrderStaleAfter    time.Duration
	StaleSweepSchedule string
}
