package main

import (
	"clap-go/internal/config"
	"clap-go/internal/database"
	logger "clap-go/internal/logging"
	"clap-go/internal/models"
	"clap-go/internal/repository"
	"clap-go/internal/router"
	"clap-go/internal/services"

	"go.uber.org/zap"
)

func main() {
	// A development logger carries us until the configuration is loaded,
	// then the file-backed logger takes over.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	logConf := config.Conf.Logging
	log, err := logger.Init(logger.Options{
		Directory:  logConf.Directory,
		MaxSize:    logConf.MaxSize,
		MaxBackups: logConf.MaxBackups,
		MaxAge:     logConf.MaxAge,
		Compress:   logConf.Compress,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Load and seed the question bank at startup
	bank, err := models.LoadBank(config.Conf.Assessment.BankPath)
	if err != nil {
		log.Fatal("Failed to load question bank", zap.Error(err))
	}
	assessment, err := database.SeedBank(bank, log)
	if err != nil {
		log.Fatal("Failed to seed question bank", zap.Error(err))
	}
	log.Info("Assessment ready", zap.Int("assessmentID", assessment.ID), zap.String("name", assessment.Name))

	// Reminder emails for stale attempts
	emailService := services.NewEmailService(log)
	scheduler := services.NewScheduler(log, emailService, repository.NewAttempts(database.DB))
	scheduler.Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, database.DB, emailService)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
