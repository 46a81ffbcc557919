package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/pkg/config"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/storage"
)

// Document kinds accepted by AttachDocument. Each maps to one profile
// column, whitelisted again at the repository.
const (
	DocumentPhoto             = "photo"
	DocumentIncomeCertificate = "income-certificate"
)

type profileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateDocumentURL(ctx context.Context, id, column, url string) error
}

type documentStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName            string  `json:"full_name" validate:"required"`
	Course              string  `json:"course"`
	Department          string  `json:"department"`
	GPA                 float64 `json:"gpa" validate:"gte=0,lte=10"`
	Category            string  `json:"category" validate:"required"`
	Nationality         string  `json:"nationality"`
	AadhaarNumber       *string `json:"aadhaar_number" validate:"omitempty,len=12,numeric"`
	ABCIDNumber         *string `json:"abc_id_number"`
	FinancialBackground *string `json:"financial_background"`
	Interests           *string `json:"interests"`
}

// ProfileService manages academic profiles and their uploaded documents.
type ProfileService struct {
	repo      profileRepository
	store     documentStore
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	uploads   config.UploadsConfig
}

// NewProfileService constructs the profile service.
func NewProfileService(repo profileRepository, store documentStore, signer *storage.SignedURLSigner, v *validator.Validate, logger *zap.Logger, uploads config.UploadsConfig) *ProfileService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		repo:      repo,
		store:     store,
		signer:    signer,
		validator: v,
		logger:    logger,
		uploads:   uploads,
	}
}

// Get returns the caller's profile with fresh signed URLs for any stored
// documents.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load profile")
	}
	s.signDocumentURLs(userID, profile)
	return profile, nil
}

// Update replaces the editable fields of the caller's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*models.Profile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	if !models.ValidCategory(models.Category(req.Category)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}

	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load profile")
	}

	profile.FullName = req.FullName
	profile.Course = req.Course
	profile.Department = req.Department
	profile.GPA = req.GPA
	profile.Category = models.Category(req.Category)
	profile.Nationality = req.Nationality
	profile.AadhaarNumber = req.AadhaarNumber
	profile.ABCIDNumber = req.ABCIDNumber
	profile.FinancialBackground = req.FinancialBackground
	profile.Interests = req.Interests
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update profile")
	}
	s.signDocumentURLs(userID, profile)
	return profile, nil
}

// AttachDocument stores an uploaded file and records its path on the
// profile. The previous file for the same kind, if any, is removed.
func (s *ProfileService) AttachDocument(ctx context.Context, userID, kind, originalName, contentType string, size int64, r io.Reader) (string, error) {
	column, err := documentColumn(kind)
	if err != nil {
		return "", err
	}
	if size > s.uploads.MaxFileSizeBytes {
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d byte limit", s.uploads.MaxFileSizeBytes))
	}
	if !s.allowedMIME(contentType) {
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported file type: "+contentType)
	}

	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load profile")
	}

	relPath := filepath.Join(userID, kind+"-"+uuid.NewString()+filepath.Ext(originalName))
	if _, err := s.store.SaveStream(relPath, r); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}

	if err := s.repo.UpdateDocumentURL(ctx, userID, column, relPath); err != nil {
		if removeErr := s.store.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", relPath), zap.Error(removeErr))
		}
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to record document")
	}

	if previous := previousDocumentPath(profile, column); previous != "" && previous != relPath {
		if err := s.store.Delete(previous); err != nil {
			s.logger.Warn("failed to remove replaced document", zap.String("path", previous), zap.Error(err))
		}
	}

	signed, _, err := s.signer.Generate(userID, relPath)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign document url")
	}
	return signed, nil
}

// OpenDocument validates a signed token and opens the file it names.
func (s *ProfileService) OpenDocument(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired document link")
	}
	f, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	return f, nil
}

func (s *ProfileService) allowedMIME(contentType string) bool {
	if len(s.uploads.AllowedMIMEs) == 0 {
		return true
	}
	for _, m := range s.uploads.AllowedMIMEs {
		if m == contentType {
			return true
		}
	}
	return false
}

// signDocumentURLs replaces stored relative paths with time-limited
// download tokens before the profile leaves the service.
func (s *ProfileService) signDocumentURLs(userID string, profile *models.Profile) {
	if s.signer == nil {
		return
	}
	sign := func(rel *string) *string {
		if rel == nil || *rel == "" {
			return rel
		}
		signed, _, err := s.signer.Generate(userID, *rel)
		if err != nil {
			s.logger.Warn("failed to sign document url", zap.Error(err))
			return rel
		}
		return &signed
	}
	profile.PhotoURL = sign(profile.PhotoURL)
	profile.IncomeCertificateURL = sign(profile.IncomeCertificateURL)
}

func documentColumn(kind string) (string, error) {
	switch kind {
	case DocumentPhoto:
		return "photo_url", nil
	case DocumentIncomeCertificate:
		return "income_certificate_url", nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown document kind: "+kind)
	}
}

func previousDocumentPath(profile *models.Profile, column string) string {
	switch column {
	case "photo_url":
		if profile.PhotoURL != nil {
			return *profile.PhotoURL
		}
	case "income_certificate_url":
		if profile.IncomeCertificateURL != nil {
			return *profile.IncomeCertificateURL
		}
	}
	return ""
}
