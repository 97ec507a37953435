package services

import (
	"context"
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"

	"gorm.io/gorm"
)

// UserService - управление пользователями из админки
type UserService interface {
	ListUsers(db *gorm.DB, caller *auth.Caller, query *dto.UserListQuery, page, pageSize int) (*dto.PaginatedResponse, error)
	GetUser(db *gorm.DB, caller *auth.Caller, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, caller *auth.Caller, userID string, req *dto.AdminUpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, db *gorm.DB, caller *auth.Caller, userID string) error
}

type UserServiceImpl struct {
	userRepo         repositories.UserRepository
	companyRepo      repositories.CompanyRepository
	jobRepo          repositories.JobRepository
	appRepo          repositories.ApplicationRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
	resetRepo        repositories.PasswordResetRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
	resetRepo repositories.PasswordResetRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		jobRepo:          jobRepo,
		appRepo:          appRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		resetRepo:        resetRepo,
	}
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, caller *auth.Caller, query *dto.UserListQuery, page, pageSize int) (*dto.PaginatedResponse, error) {
	if err := auth.Authorize(caller, auth.EntityUser, auth.OpRead, auth.Subject{}); err != nil {
		return nil, err
	}
	users, total, err := s.userRepo.List(db, repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Query:    strings.TrimSpace(query.Query),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return dto.NewPaginatedResponse(users, total, page, pageSize), nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, caller *auth.Caller, userID string) (*models.User, error) {
	if err := auth.Authorize(caller, auth.EntityUser, auth.OpRead, auth.Subject{}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return user, nil
}

// UpdateUser: роль не меняется, учетные записи администраторов неизменяемы
func (s *UserServiceImpl) UpdateUser(ctx context.Context, db *gorm.DB, caller *auth.Caller, userID string, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.loadTarget(db, caller, userID, auth.OpUpdate)
	if err != nil {
		return nil, err
	}

	var fields []string
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		fields = append(fields, "name")
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
		fields = append(fields, "email")
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		fields = append(fields, "is_active")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(db, user, fields...); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, handleRepoError(repositories.ErrUserAlreadyExists)
		}
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "User updated by admin", "user_id", user.ID, "fields", fields)
	return user, nil
}

// DeleteUser удаляет пользователя со всеми зависимыми записями одной транзакцией
func (s *UserServiceImpl) DeleteUser(ctx context.Context, db *gorm.DB, caller *auth.Caller, userID string) error {
	user, err := s.loadTarget(db, caller, userID, auth.OpDelete)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.appRepo.DeleteByUserID(tx, user.ID); err != nil {
			return err
		}
		if err := s.notificationRepo.DeleteByUserID(tx, user.ID); err != nil {
			return err
		}
		if err := s.profileRepo.DeleteByUserID(tx, user.ID); err != nil {
			return err
		}
		if err := s.resetRepo.DeleteByUserID(tx, user.ID); err != nil {
			return err
		}

		company, err := s.companyRepo.FindByUserID(tx, user.ID)
		switch {
		case err == nil:
			if err := s.appRepo.DeleteByCompanyID(tx, company.ID); err != nil {
				return err
			}
			if err := s.jobRepo.DeleteByCompanyID(tx, company.ID); err != nil {
				return err
			}
			if err := s.companyRepo.DeleteByUserID(tx, user.ID); err != nil {
				return err
			}
		case !errors.Is(err, repositories.ErrCompanyNotFound):
			return err
		}

		return s.userRepo.Delete(tx, user.ID)
	})
	if err != nil {
		return handleRepoError(err)
	}

	logger.CtxInfo(ctx, "User deleted by admin", "user_id", user.ID, "role", user.Role)
	return nil
}

func (s *UserServiceImpl) loadTarget(db *gorm.DB, caller *auth.Caller, userID string, op auth.Operation) (*models.User, error) {
	// сначала общая проверка роли, чтобы не раскрывать существование пользователя
	if err := auth.Authorize(caller, auth.EntityUser, auth.OpRead, auth.Subject{}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := auth.Authorize(caller, auth.EntityUser, op, auth.Subject{TargetRole: user.Role}); err != nil {
		return nil, err
	}
	return user, nil
}
