package main

import (
	"fmt"
	"os"
	"time"

	"dispatch/cmd"
	"dispatch/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	log, err := logger.New(configs.Environment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	gormDB, err := gorm.Open(postgres.Open(dsn(configs)), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(configs, gormDB, log)
	defer root.Close() //nolint:errcheck

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatal("failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Absent .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		Environment: os.Getenv("ENV"),
		HTTPPort:    os.Getenv("HTTP_PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaEventsTopic: os.Getenv("KAFKA_EVENTS_TOPIC"),

		FCMEndpoint:  os.Getenv("FCM_ENDPOINT"),
		FCMServerKey: os.Getenv("FCM_SERVER_KEY"),
		ExpoEndpoint: os.Getenv("EXPO_ENDPOINT"),

		OrderStaleAfter:    staleAfterFromEnv(),
		StaleSweepSchedule: staleScheduleFromEnv(),
	}
}

func staleAfterFromEnv() time.Duration {
	minutes := cast.ToInt(os.Getenv("ORDER_STALE_AFTER_MINUTES"))
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

func staleScheduleFromEnv() string {
	if schedule := os.Getenv("STALE_SWEEP_SCHEDULE"); schedule != "" {
		return schedule
	}
	// Every minute, on the minute.
	return "0 * * * * *"
}

func dsn(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
