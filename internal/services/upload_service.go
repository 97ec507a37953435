package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Виды загрузок
const (
	UploadKindResume = "resume"
	UploadKindCV     = "cv"
	UploadKindLogo   = "logo"
)

var documentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type UploadService interface {
	UploadFile(ctx context.Context, db *gorm.DB, caller *auth.Caller, kind string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	OpenFile(ctx context.Context, path string) (io.ReadCloser, string, error)
}

type UploadConfig struct {
	MaxFileSize int64
	Kinds       map[string]*KindConfig
}

type KindConfig struct {
	Roles        []models.UserRole
	AllowedTypes []string
	MaxFileSize  int64
}

type uploadService struct {
	storage     storage.Storage
	profiles    ProfileService
	companyRepo repositories.CompanyRepository
	config      *UploadConfig
}

func NewUploadService(
	store storage.Storage,
	profiles ProfileService,
	companyRepo repositories.CompanyRepository,
	config *UploadConfig,
) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &uploadService{
		storage:     store,
		profiles:    profiles,
		companyRepo: companyRepo,
		config:      config,
	}
}

// UploadFile сохраняет файл в storage. Для resume и logo путь сразу
// записывается в профиль, при ошибке БД файл удаляется обратно.
func (s *uploadService) UploadFile(ctx context.Context, db *gorm.DB, caller *auth.Caller, kind string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	kindConfig, ok := s.config.Kinds[kind]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown upload kind: %s", kind))
	}
	if !containsRole(kindConfig.Roles, caller.Role) {
		return nil, apperrors.NewForbiddenError("You cannot upload this kind of file")
	}
	if file == nil {
		return nil, apperrors.NewBadRequestError("file is required")
	}

	contentType, err := s.validateFile(file, kindConfig)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%ss/%s/%s%s", kind, caller.ID, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	if err := s.storage.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to store file", http.StatusBadGateway)
	}

	if err := s.attach(db, caller, kind, path); err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.CtxError(ctx, "failed to roll back stored file", "path", path, "error", delErr.Error())
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "File uploaded", "kind", kind, "path", path, "size", file.Size)

	return &dto.UploadResponse{
		Path:        path,
		URL:         s.storage.URL(path),
		Size:        file.Size,
		ContentType: contentType,
	}, nil
}

func (s *uploadService) OpenFile(ctx context.Context, path string) (io.ReadCloser, string, error) {
	cleaned, err := storage.CleanPath(path)
	if err != nil {
		return nil, "", apperrors.NewBadRequestError("invalid file path")
	}
	exists, err := s.storage.Exists(ctx, cleaned)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	if !exists {
		return nil, "", apperrors.NotFound("upload", "File not found", nil)
	}
	reader, err := s.storage.Get(ctx, cleaned)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return reader, getMimeTypeFromFilename(cleaned), nil
}

// attach записывает путь в запись-владельца; старый файл удаляется после успешной записи
func (s *uploadService) attach(db *gorm.DB, caller *auth.Caller, kind, path string) error {
	switch kind {
	case UploadKindResume:
		previous, err := s.profiles.SetResume(db, caller, path)
		if err != nil {
			return err
		}
		s.dropPrevious(db, previous)
	case UploadKindLogo:
		company, err := companyForCaller(db, s.companyRepo, caller)
		if err != nil {
			return err
		}
		previous := company.Logo
		company.Logo = path
		if err := s.companyRepo.Update(db, company, "logo"); err != nil {
			return handleRepoError(err)
		}
		s.dropPrevious(db, previous)
	}
	return nil
}

func (s *uploadService) dropPrevious(db *gorm.DB, previous string) {
	if previous == "" || strings.HasPrefix(previous, "http") {
		return
	}
	ctx := context.Background()
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		ctx = db.Statement.Context
	}
	if err := s.storage.Delete(ctx, previous); err != nil && !errors.Is(err, storage.ErrInvalidPath) {
		logger.CtxWarn(ctx, "failed to delete previous file", "path", previous, "error", err.Error())
	}
}

func (s *uploadService) validateFile(file *multipart.FileHeader, config *KindConfig) (string, error) {
	maxSize := config.MaxFileSize
	if maxSize == 0 {
		maxSize = s.config.MaxFileSize
	}
	if file.Size > maxSize {
		return "", apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": maxSize})
	}

	contentType := file.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = getMimeTypeFromFilename(file.Filename)
	}

	for _, allowed := range config.AllowedTypes {
		if contentType == allowed {
			return contentType, nil
		}
	}
	return "", apperrors.ErrInvalidFileType.WithDetails(map[string][]string{"allowedTypes": config.AllowedTypes})
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize: 10 * 1024 * 1024,
		Kinds: map[string]*KindConfig{
			UploadKindResume: {
				Roles:        []models.UserRole{models.UserRoleJobseeker},
				AllowedTypes: documentTypes,
				MaxFileSize:  10 * 1024 * 1024,
			},
			UploadKindCV: {
				Roles:        []models.UserRole{models.UserRoleJobseeker},
				AllowedTypes: documentTypes,
				MaxFileSize:  10 * 1024 * 1024,
			},
			UploadKindLogo: {
				Roles:        []models.UserRole{models.UserRoleCompany},
				AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
				MaxFileSize:  5 * 1024 * 1024,
			},
		},
	}
}

func getMimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func containsRole(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
