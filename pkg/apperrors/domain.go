package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики (оборачивают ошибки репозитория)
// =========================================================================

// ErrNotFound - 404 для любой сущности
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NotFound - 404 с именем сущности в сообщении
func NotFound(domain, message string, err error) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrStorageUnavailable - хранилище недоступно даже после повторной попытки (503)
func ErrStorageUnavailable(err error) *AppError {
	return Wrap(err, CodeStorageUnavailable, "storage", "Storage is temporarily unavailable, please retry", http.StatusServiceUnavailable)
}

// ErrInvalidOperation - невалидная операция (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - невалидный статус (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (JWT или сброс пароля)
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"Your account has been deactivated",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// --- Users ---

// ErrAdminImmutable - учетные записи администраторов нельзя менять через управление пользователями
var ErrAdminImmutable = New(
	CodeForbidden,
	"user",
	"Admin accounts cannot be modified or deleted",
	http.StatusForbidden,
)

// --- Applications ---

var ErrAlreadyApplied = New(
	CodeValidationFailed,
	"application",
	"You have already applied for this job",
	http.StatusBadRequest,
)

var ErrDocumentRequired = New(
	CodeValidationFailed,
	"application",
	"Please upload a resume to your profile or attach a CV",
	http.StatusBadRequest,
)

var ErrJobNotAcceptingApplications = New(
	CodeValidationFailed,
	"application",
	"This job is not accepting applications",
	http.StatusBadRequest,
)

var ErrApplicationDeadlinePassed = New(
	CodeValidationFailed,
	"application",
	"The application deadline for this job has passed",
	http.StatusBadRequest,
)

// --- Companies ---

var ErrCompanyNotApproved = New(
	CodeForbidden,
	"company",
	"Your company profile has not been approved",
	http.StatusForbidden,
)

var ErrCompanyAlreadyExists = New(
	CodeAlreadyExists,
	"company",
	"A company profile already exists for this account",
	http.StatusConflict,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
