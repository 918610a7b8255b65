package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/ryuga001/MiniOrangeAssessment1/common"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware is the access guard: it accepts a request only with a
// well-formed bearer access token that verifies against the access
// secret, and passes the subject identity down in the request context.
// The protected service needs nothing else from the auth core.
func AuthMiddleware(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
				return
			}

			userID, err := tokens.VerifyAccess(headerParts[1])
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID pulls the authenticated identity set by AuthMiddleware.
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
