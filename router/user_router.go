package router

import (
	"net/http"

	"github.com/ryuga001/MiniOrangeAssessment1/handler"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
)

// NewUserRouter wires the user service routes. Everything under
// /api/v1/user sits behind the access guard; the guard only needs the
// access-token verifier, never the refresh secret or the session store.
func NewUserRouter(userHandler *handler.UserHandler, tokens *service.TokenService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	guard := handler.AuthMiddleware(tokens)

	mux.Handle("GET /api/v1/user/profile", guard(handler.ErrorHandlingMiddleware(userHandler.GetProfile)))
	mux.Handle("PUT /api/v1/user/profile", guard(handler.ErrorHandlingMiddleware(userHandler.UpdateProfile)))

	return mux
}
