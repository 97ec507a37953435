package dto

type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Headline *string  `json:"headline,omitempty" validate:"omitempty,max=255"`
	Bio      *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Location *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
}
