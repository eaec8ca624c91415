package main

import (
	"fmt"
	"log/slog"
	"os"

	"ordermanager/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var gormDB *gorm.DB
	if configs.Storage() == cmd.StoragePostgres {
		db, err := cmd.OpenDatabase(configs)
		if err != nil {
			log.Fatalf("Database: %v", err)
		}
		gormDB = db
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Composition root: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		StorageDriver:          os.Getenv("STORAGE_DRIVER"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		RulesConfigPath:        os.Getenv("RULES_CONFIG_PATH"),
		TicketMetricsSchedule:  os.Getenv("TICKET_METRICS_SCHEDULE"),
	}
	return config
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("HTTP server: %v", err)
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
