package services

import (
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, caller *auth.Caller) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, caller *auth.Caller, req *dto.UpdateProfileRequest) (*models.Profile, error)
	// SetResume сохраняет путь к резюме и возвращает предыдущий
	SetResume(db *gorm.DB, caller *auth.Caller, path string) (previous string, err error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// GetProfile - профиль есть только у соискателя; если его еще нет, отдается заготовка из учетной записи
func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, caller *auth.Caller) (*models.Profile, error) {
	if err := requireJobseeker(caller); err != nil {
		return nil, err
	}
	return s.loadOrDraft(db, caller)
}

func (s *ProfileServiceImpl) UpdateProfile(db *gorm.DB, caller *auth.Caller, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if err := requireJobseeker(caller); err != nil {
		return nil, err
	}
	profile, err := s.loadOrDraft(db, caller)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&profile.Name, req.Name)
	set(&profile.Email, req.Email)
	set(&profile.Phone, req.Phone)
	set(&profile.Headline, req.Headline)
	set(&profile.Bio, req.Bio)
	set(&profile.Location, req.Location)
	if req.Skills != nil {
		profile.Skills = datatypes.JSONSlice[string](req.Skills)
	}

	if err := s.profileRepo.Save(db, profile); err != nil {
		return nil, handleRepoError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) SetResume(db *gorm.DB, caller *auth.Caller, path string) (string, error) {
	if err := requireJobseeker(caller); err != nil {
		return "", err
	}
	profile, err := s.loadOrDraft(db, caller)
	if err != nil {
		return "", err
	}

	previous := profile.Resume
	profile.Resume = path
	if err := s.profileRepo.Save(db, profile); err != nil {
		return "", handleRepoError(err)
	}
	return previous, nil
}

func (s *ProfileServiceImpl) loadOrDraft(db *gorm.DB, caller *auth.Caller) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(db, caller.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, handleRepoError(err)
	}

	user, err := s.userRepo.FindByID(db, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return &models.Profile{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Skills: datatypes.JSONSlice[string]{},
	}, nil
}

func requireJobseeker(caller *auth.Caller) error {
	if !caller.Authenticated() {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}
	if caller.Role != models.UserRoleJobseeker {
		return apperrors.NewForbiddenError("Only job seekers have a profile")
	}
	return nil
}
