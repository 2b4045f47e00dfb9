package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.profileService.GetProfile(c.Request.Context(), email)
	if err != nil {
		abortProfile(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile replaces the stored profile with the request body.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	view, err := h.profileService.UpdateProfile(c.Request.Context(), email, req)
	if err != nil {
		abortProfile(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) GetMetrics(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	metrics, err := h.profileService.Metrics(c.Request.Context(), email)
	if err != nil {
		abortProfile(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	resp, err := h.profileService.RequestAvatarUpload(c.Request.Context(), email, req.ContentType)
	if err != nil {
		abortProfile(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) ConfirmAvatar(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	var req AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	view, err := h.profileService.ConfirmAvatar(c.Request.Context(), email, req.ObjectKey)
	if err != nil {
		abortProfile(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func abortProfile(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidProfile), errors.Is(err, service.ErrInvalidAvatar):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAvatarsDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		abortWithInternal(c, err, "Failed to process profile request.")
	}
}
