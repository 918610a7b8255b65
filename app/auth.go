package app

import (
	"log"

	"github.com/ryuga001/MiniOrangeAssessment1/config"
	"github.com/ryuga001/MiniOrangeAssessment1/db"
	"github.com/ryuga001/MiniOrangeAssessment1/handler"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/repository"
	"github.com/ryuga001/MiniOrangeAssessment1/router"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
)

// RunAuth starts the auth service: the session issuer. It is the only
// process that holds both JWT signing secrets.
func RunAuth() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg, "file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	tokenService := service.NewTokenService(cfg)
	googleVerifier := service.NewGoogleVerifier(cfg)
	facebookVerifier := service.NewFacebookVerifier(cfg)
	authService := service.NewAuthService(userRepo, tokenService, googleVerifier, facebookVerifier)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	r := router.NewAuthRouter(authHandler)

	serve(cfg.AuthServer.Port, r)
}
