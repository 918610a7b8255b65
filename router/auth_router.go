package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/ryuga001/MiniOrangeAssessment1/handler"
)

// NewAuthRouter wires the auth service routes. Session endpoints only;
// the profile resource lives in the user service.
func NewAuthRouter(authHandler *handler.AuthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.Handler())

	mux.Handle("POST /api/v1/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/v1/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /api/v1/login_google", handler.ErrorHandlingMiddleware(authHandler.LoginGoogle))
	mux.Handle("POST /api/v1/login_facebook", handler.ErrorHandlingMiddleware(authHandler.LoginFacebook))
	mux.Handle("GET /api/v1/refresh-token", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("GET /api/v1/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

	return mux
}
