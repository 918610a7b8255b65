package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ryuga001/MiniOrangeAssessment1/common"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	service *service.AuthService
	tokens  *service.TokenService
}

func NewAuthHandler(authService *service.AuthService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{service: authService, tokens: tokens}
}

// setRefreshCookie delivers the refresh token to the browser only.
// Client-side code never sees it.
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTTL() / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201  {object}  model.APIResponse
// @Failure      400  {object}  common.AppError
// @Failure      409  {object}  common.AppError
// @Router       /api/v1/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, pair, err := h.service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return common.NewAppError(http.StatusConflict, "User already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}

	logger.Log.WithField("email", user.Email).Info("User registered")

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusCreated, model.APIResponse{
		Message: "User registered successfully",
		Success: true,
		Data: map[string]interface{}{
			"accessToken": pair.AccessToken,
			"user":        user.Profile(),
		},
	})
	return nil
}

// Login godoc
// @Summary      Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login payload"
// @Success      200  {object}  model.APIResponse
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	_, pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Login successfully",
		Success: true,
		Data:    model.TokenData{AccessToken: pair.AccessToken},
	})
	return nil
}

func (h *AuthHandler) LoginGoogle(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GoogleLoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, pair, err := h.service.LoginWithGoogle(r.Context(), req.GoogleToken)
	if err != nil {
		return providerLoginError(err)
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Login successful with Google",
		Success: true,
		Data: map[string]interface{}{
			"accessToken": pair.AccessToken,
			"user":        user.Profile(),
		},
	})
	return nil
}

func (h *AuthHandler) LoginFacebook(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.FacebookLoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, pair, err := h.service.LoginWithFacebook(r.Context(), req.FacebookToken)
	if err != nil {
		return providerLoginError(err)
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Login successful with Facebook",
		Success: true,
		Data: map[string]interface{}{
			"accessToken": pair.AccessToken,
			"user":        user.Profile(),
		},
	})
	return nil
}

func providerLoginError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidProviderToken):
		return common.NewAppError(http.StatusUnauthorized, "Invalid provider token", nil)
	case errors.Is(err, service.ErrProviderUnreachable):
		return common.NewAppError(http.StatusBadGateway, "Identity provider unreachable", err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}

// Refresh godoc
// @Summary      Exchange the refresh cookie for a new access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/refresh-token [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusBadRequest, "Refresh token is required", nil)
	}

	accessToken, err := h.service.Refresh(cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrTokenExpired),
			errors.Is(err, service.ErrTokenInvalid):
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Access token refreshed",
		Success: true,
		Data:    model.TokenData{AccessToken: accessToken},
	})
	return nil
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusBadRequest, "Refresh token is required", nil)
	}

	if err := h.service.Logout(cookie.Value); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Logout successful",
		Success: true,
	})
	return nil
}
