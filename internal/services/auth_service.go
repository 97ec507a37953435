package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const passwordResetTTL = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, caller *auth.Caller) (*models.User, error)
	RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error
	ChangePassword(db *gorm.DB, caller *auth.Caller, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	profileRepo repositories.ProfileRepository
	resetRepo   repositories.PasswordResetRepository
	tokens      *auth.TokenManager
	mailer      *email.Dispatcher
	frontendURL string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	profileRepo repositories.ProfileRepository,
	resetRepo repositories.PasswordResetRepository,
	tokens *auth.TokenManager,
	mailer *email.Dispatcher,
	frontendURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Register - регистрация соискателя или компании.
// Компания создается сразу в статусе pending, соискатель получает пустой профиль.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.UserRoleJobseeker && req.Role != models.UserRoleCompany {
		return nil, apperrors.NewValidationError("auth", "Invalid role")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role == models.UserRoleCompany && strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.NewValidationError("auth", "companyName is required for company accounts")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		if user.Role == models.UserRoleCompany {
			return s.companyRepo.Create(tx, &models.Company{
				UserID: user.ID,
				Name:   strings.TrimSpace(req.CompanyName),
				Status: models.CompanyStatusPending,
			})
		}
		return s.profileRepo.Save(tx, &models.Profile{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		})
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return s.issueToken(user)
}

// Login - аутентификация по email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, handleRepoError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	logger.CtxDebug(ctx, "User logged in", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *AuthServiceImpl) Me(db *gorm.DB, caller *auth.Caller) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	user, err := s.userRepo.FindByID(db, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

// RequestPasswordReset - ответ одинаковый, есть такой email или нет
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return handleRepoError(err)
	}

	token, err := generateRandomToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now().Add(passwordResetTTL),
	}
	if err := s.resetRepo.Upsert(db, reset); err != nil {
		return handleRepoError(err)
	}

	s.mailer.Send(ctx, user.Email, "Password reset", email.TemplatePasswordReset, email.TemplateData{
		"Name":     user.Name,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token),
	})
	return nil
}

// ResetPassword - токен одноразовый, удаляется вместе со сменой пароля
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	reset, err := s.resetRepo.FindByToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return handleRepoError(err)
	}
	if reset.Expired(now()) {
		if err := s.resetRepo.DeleteByUserID(db, reset.UserID); err != nil {
			logger.CtxWarn(ctx, "failed to drop expired reset token", "user_id", reset.UserID, "error", err.Error())
		}
		return apperrors.ErrInvalidToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(tx, reset.UserID)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		if err := s.userRepo.Update(tx, user, "password_hash"); err != nil {
			return err
		}
		return s.resetRepo.DeleteByUserID(tx, reset.UserID)
	})
	if err != nil {
		return handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Password reset", "user_id", reset.UserID)
	return nil
}

// ChangePassword - смена пароля, когда пользователь знает текущий
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, caller *auth.Caller, currentPassword, newPassword string) error {
	user, err := s.Me(db, caller)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	return handleRepoError(s.userRepo.Update(db, user, "password_hash"))
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), user.Email, user.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateRandomToken - 32 случайных байта в hex
func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
