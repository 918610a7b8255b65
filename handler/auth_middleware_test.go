// handler/auth_middleware_test.go
package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ryuga001/MiniOrangeAssessment1/config"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
	"github.com/stretchr/testify/assert"
)

func guardTestConfig(accessTTLMinutes int) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "guard-access-secret"
	cfg.JWT.RefreshSecret = "guard-refresh-secret"
	cfg.JWT.AccessTTLMinutes = accessTTLMinutes
	cfg.JWT.RefreshTTLHours = 168
	return cfg
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenService(guardTestConfig(15))

	handlerInvoked := false
	var seenUserID int
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerInvoked = true
		seenUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	guarded := AuthMiddleware(tokens)(probe)

	makeRequest := func(authHeader string) *httptest.ResponseRecorder {
		handlerInvoked = false
		req, _ := http.NewRequest("GET", "/api/v1/user/profile", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		return rr
	}

	t.Run("missing header", func(t *testing.T) {
		rr := makeRequest("")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, handlerInvoked)
	})

	t.Run("malformed header", func(t *testing.T) {
		rr := makeRequest("NotBearer xyz")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, handlerInvoked)

		rr = makeRequest("Bearer")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, handlerInvoked)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredIssuer := service.NewTokenService(guardTestConfig(-1))
		pair, err := expiredIssuer.IssueTokens(5)
		assert.NoError(t, err)

		rr := makeRequest("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, handlerInvoked)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherCfg := guardTestConfig(15)
		otherCfg.JWT.AccessSecret = "some-other-secret"
		otherIssuer := service.NewTokenService(otherCfg)
		pair, err := otherIssuer.IssueTokens(5)
		assert.NoError(t, err)

		rr := makeRequest("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, handlerInvoked)
	})

	t.Run("valid token", func(t *testing.T) {
		pair, err := tokens.IssueTokens(5)
		assert.NoError(t, err)

		rr := makeRequest("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, handlerInvoked)
		assert.Equal(t, 5, seenUserID)
	})
}
