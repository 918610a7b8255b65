package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/ryuga001/MiniOrangeAssessment1/common"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/ryuga001/MiniOrangeAssessment1/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{service: userService}
}

// GetProfile godoc
// @Summary      Fetch the authenticated user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.APIResponse
// @Failure      401  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := GetUserID(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error fetching profile", err)
	}

	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Fetched User Successfully",
		Success: true,
		Data:    profile,
	})
	return nil
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := GetUserID(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.UpdateProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.service.UpdateProfile(userID, req.Username, req.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error updating profile", err)
	}

	writeJSON(w, http.StatusOK, model.APIResponse{
		Message: "Profile updated successfully",
		Success: true,
		Data:    profile,
	})
	return nil
}
