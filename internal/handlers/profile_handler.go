package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ProfileHandler - профиль соискателя и его резюме
type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	uploadService  services.UploadService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, uploadService services.UploadService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		uploadService:  uploadService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	profile.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleJobseeker))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/resume", h.UploadResume)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Обновить профиль соискателя
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Поля профиля"
// @Success 200 {object} models.Profile
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadResume godoc
// @Summary Загрузить резюме в профиль
// @Description Предыдущий файл резюме удаляется
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF, DOC или DOCX до 10MB"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	resp, err := h.uploadService.UploadFile(c.Request.Context(), h.GetDB(c), caller, services.UploadKindResume, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
