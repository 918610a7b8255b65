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

// RunUser starts the user service: the protected profile resource. It
// is wired with the access-token verification secret only.
func RunUser() {
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

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		// The profile cache is an optimization. Run without it.
		logger.Log.WithError(err).Warn("Redis unavailable, serving profiles without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(database)
	accessVerifier := service.NewAccessVerifier(cfg.JWT.AccessSecret)
	userService := service.NewUserService(userRepo, redisClient)
	userHandler := handler.NewUserHandler(userService)

	r := router.NewUserRouter(userHandler, accessVerifier)

	serve(cfg.UserServer.Port, r)
}
