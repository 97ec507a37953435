package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Публичный каталог; владелец и админ видят неактивные вакансии через OptionalAuth
	public := r.Group("/jobs")
	public.Use(h.OptionalAuth())
	{
		public.GET("", h.ListJobs)
		public.GET("/:jobId", h.GetJob)
	}

	protected := r.Group("/jobs")
	protected.Use(h.RequireAuth())
	{
		protected.POST("", middleware.RequireRoles(models.UserRoleCompany), h.CreateJob)
		protected.PUT("/:jobId", middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin), h.UpdateJob)
		protected.PATCH("/:jobId/status", middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin), h.UpdateJobStatus)
		protected.DELETE("/:jobId", middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin), h.DeleteJob)
	}
}

// ListJobs godoc
// @Summary Активные вакансии
// @Tags jobs
// @Produce json
// @Param q query string false "Поиск по названию и описанию"
// @Param location query string false "Локация"
// @Param type query string false "Тип занятости"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.PaginatedResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.jobService.ListJobs(h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJob godoc
// @Summary Вакансия по ID
// @Tags jobs
// @Produce json
// @Param jobId path string true "ID вакансии"
// @Success 200 {object} models.Job
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	// caller может быть nil для анонимного запроса
	caller := middleware.CallerFromContext(c)

	job, err := h.jobService.GetJob(h.GetDB(c), caller, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob godoc
// @Summary Создать вакансию
// @Description Доступно только одобренной компании; вакансия уходит на модерацию
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Вакансия"
// @Success 201 {object} models.Job
// @Failure 403 {object} apperrors.ErrorResponse "Компания не одобрена"
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(h.GetDB(c), caller, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus godoc
// @Summary Сменить статус вакансии
// @Description Компания может только закрыть вакансию; админ модерирует любой статус
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param request body dto.UpdateJobStatusRequest true "Статус"
// @Success 200 {object} models.Job
// @Router /jobs/{jobId}/status [patch]
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJobStatus(c.Request.Context(), h.GetDB(c), caller, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), caller, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
