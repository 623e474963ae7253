package main

import (
	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/config"
	logger "github.com/IrakliAvdulaj/cardio-risk-vision/internal/logging"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/predictor"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/router"
)

func main() {
	// Initialize Configuration
	if err := config.Init("."); err != nil {
		panic("failed to initialize configuration: " + err.Error())
	}

	// Initialize Logger
	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Hot-reload config changes now that the logger exists
	config.Watch(log)

	// Load form field definitions at startup
	schema, err := models.LoadFormSchema("config/fields.yaml")
	if err != nil {
		log.Fatal("Failed to load form schema", zap.Error(err))
	}

	// Client for the remote prediction service
	predictorClient := predictor.New(config.Conf.Predictor.URL, config.Conf.Predictor.Timeout, log)

	// Setup router, passing the logger to it
	r := router.Setup(log, schema, predictorClient)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
