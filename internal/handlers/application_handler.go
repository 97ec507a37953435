package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(h.RequireAuth())
	{
		applications.POST("", middleware.RequireRoles(models.UserRoleJobseeker), h.SubmitApplication)
		applications.GET("", middleware.RequireRoles(models.UserRoleJobseeker, models.UserRoleAdmin), h.ListApplications)
		applications.GET("/company", middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin), h.ListCompanyApplications)
		applications.GET("/:applicationId", h.GetApplication)
		applications.PATCH("/:applicationId", h.UpdateApplication)
	}
}

// SubmitApplication godoc
// @Summary Откликнуться на вакансию
// @Description Имя и email берутся из профиля соискателя, пустые поля дополняются из аккаунта.
// @Description Нужен CV в запросе или резюме в профиле.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Отклик"
// @Success 201 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse "Вакансия закрыта, нет документа или уже откликались"
// @Router /applications [post]
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.SubmitApplication(c.Request.Context(), h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// ListApplications godoc
// @Summary Отклики соискателя (админ видит все)
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус"
// @Success 200 {array} models.Application
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	applications, err := h.applicationService.ListApplications(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// ListCompanyApplications godoc
// @Summary Отклики на вакансии своей компании
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус"
// @Param jobId query string false "ID вакансии"
// @Success 200 {array} models.Application
// @Router /applications/company [get]
func (h *ApplicationHandler) ListCompanyApplications(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	applications, err := h.applicationService.ListCompanyApplications(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	application, err := h.applicationService.GetApplication(h.GetDB(c), caller, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateApplication godoc
// @Summary Изменить отклик
// @Description Компания меняет status и notes; соискатель только notificationRead; админ любые поля.
// @Description Поля вне набора роли отбрасываются до валидации.
// @Description Смена статуса пишет историю, отправляет письмо и уведомление кандидату.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Param request body dto.UpdateApplicationRequest true "Поля для изменения"
// @Success 200 {object} models.Application
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{applicationId} [patch]
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !h.Bind_JSON(c, &req) {
		return
	}
	scoped := req.ForRole(caller.Role)
	if !h.Validate(c, scoped) {
		return
	}

	application, err := h.applicationService.UpdateApplication(c.Request.Context(), h.GetDB(c), caller, c.Param("applicationId"), scoped)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
