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

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
	jobService     services.JobService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService, jobService services.JobService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
		jobService:     jobService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies")
	companies.Use(h.RequireAuth())
	{
		// Профиль своей компании
		own := companies.Group("")
		own.Use(middleware.RequireRoles(models.UserRoleCompany))
		{
			own.POST("", h.CreateCompany)
			own.GET("/me", h.GetMyCompany)
			own.PUT("/me", h.UpdateMyCompany)
			own.GET("/me/jobs", h.ListMyJobs)
		}

		companies.GET("/:companyId", h.GetCompany)

		// Модерация
		admin := companies.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.GET("", h.ListCompanies)
			admin.PATCH("/:companyId", h.ModerateCompany)
		}
	}
}

// CreateCompany godoc
// @Summary Создать профиль компании
// @Description Новая компания ждет модерации (status=pending)
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyRequest true "Профиль компании"
// @Success 201 {object} models.Company
// @Failure 409 {object} apperrors.ErrorResponse "Профиль уже существует"
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetMyCompany(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateMyCompany godoc
// @Summary Обновить профиль своей компании
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCompanyRequest true "Поля для изменения"
// @Success 200 {object} models.Company
// @Router /companies/me [put]
func (h *CompanyHandler) UpdateMyCompany(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateMyCompany(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListMyJobs godoc
// @Summary Вакансии своей компании в любом статусе
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус вакансии"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.PaginatedResponse
// @Router /companies/me/jobs [get]
func (h *CompanyHandler) ListMyJobs(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	status := models.JobStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid job status"))
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.jobService.ListCompanyJobs(h.GetDB(c), caller, status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(h.GetDB(c), caller, c.Param("companyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListCompanies godoc
// @Summary Компании для модерации
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved или rejected"
// @Success 200 {array} models.Company
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var query dto.CompanyListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	companies, err := h.companyService.ListCompanies(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// ModerateCompany godoc
// @Summary Одобрить или отклонить компанию
// @Description Владелец получает письмо; rejectionReason попадает только в письмо
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "ID компании"
// @Param request body dto.ModerateCompanyRequest true "Новый статус"
// @Success 200 {object} models.Company
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /companies/{companyId} [patch]
func (h *CompanyHandler) ModerateCompany(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.ModerateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.ModerateCompany(c.Request.Context(), h.GetDB(c), caller, c.Param("companyId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}
