package validator

import (
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила на основе statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// без правила валидатор молча пропустит мусор, поэтому не стартуем
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	// при регистрации admin выбрать нельзя
	mustRegister("is-signup-role", validateSignupRole)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-company-status", validateCompanyStatus)
}

// Пустые значения не проверяются, для этого есть 'required'

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserRole(value).IsValid()
}

func validateSignupRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case "", models.UserRoleJobseeker, models.UserRoleCompany:
		return true
	}
	return false
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).IsValid()
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.JobStatus(value).IsValid()
}

func validateCompanyStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CompanyStatus(value).IsValid()
}
