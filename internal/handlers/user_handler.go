package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler - управление пользователями, только для админа
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/users")
	admin.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.GET("/:userId", h.GetUser)
		admin.PATCH("/:userId", h.UpdateUser)
		admin.DELETE("/:userId", h.DeleteUser)
	}
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Роль"
// @Param q query string false "Поиск по имени или email"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.PaginatedResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.userService.ListUsers(h.GetDB(c), caller, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(h.GetDB(c), caller, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Изменить пользователя
// @Description Роль не меняется; учетные записи администраторов изменять нельзя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.AdminUpdateUserRequest true "Поля для изменения"
// @Success 200 {object} models.User
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/users/{userId} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), h.GetDB(c), caller, c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удалить пользователя со всеми данными
// @Tags admin
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), h.GetDB(c), caller, c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
