package handlers

import (
	"io"
	"net/http"
	"strings"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/services"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	uploads.Use(h.RequireAuth())
	{
		uploads.POST("", h.UploadFile)
	}
}

// RegisterFileRoutes отдает сохраненные файлы по относительному пути вне /api/v1
func (h *UploadHandler) RegisterFileRoutes(r gin.IRoutes) {
	r.GET("/uploads/*filepath", h.ServeFile)
}

// UploadFile godoc
// @Summary Загрузить файл
// @Description kind=cv возвращает путь для поля cv отклика; kind=logo обновляет логотип компании; kind=resume обновляет профиль
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kind formData string true "cv, resume или logo"
// @Param file formData file true "Файл"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.ErrorResponse "Неверный тип или размер"
// @Failure 502 {object} apperrors.ErrorResponse "Хранилище недоступно"
// @Router /uploads [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	kind := strings.TrimSpace(c.PostForm("kind"))
	if kind == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("kind is required"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	resp, err := h.uploadService.UploadFile(c.Request.Context(), h.GetDB(c), caller, kind, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UploadHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filepath"), "/")

	reader, contentType, err := h.uploadService.OpenFile(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to stream file", err, "path", path)
	}
}
