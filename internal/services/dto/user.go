package dto

// AdminUpdateUserRequest - роль не меняется ни через какой путь обновления
type AdminUpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type UserListQuery struct {
	Role  string `form:"role" validate:"omitempty,is-user-role"`
	Query string `form:"q"`
}
