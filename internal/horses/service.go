package horses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/config"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
	"github.com/mlegrand/equilog-backend/pkg/pagination"
)

// Service defines the behavior needed by the horses controller.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*HorseDTO, error)
	Get(ctx context.Context, ownerID, horseID uuid.UUID) (*HorseDetail, error)
	List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, ownerID, horseID uuid.UUID, req UpdateRequest) (*HorseDTO, error)
	Delete(ctx context.Context, ownerID, horseID uuid.UUID) error
	UploadPhoto(ctx context.Context, ownerID, horseID uuid.UUID, upload PhotoUpload) (*PhotoResult, error)
	RequireOwned(ctx context.Context, ownerID, horseID uuid.UUID) (*models.Horse, error)
}

type repository interface {
	Create(ctx context.Context, row *models.Horse) (*models.Horse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Horse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params pagination.Params) ([]models.Horse, string, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
	UpdatePhotoPath(ctx context.Context, ownerID, id uuid.UUID, path string) (int64, error)
}

// detentionSource reports the horse's latest movement destination.
type detentionSource interface {
	LatestToAddressID(ctx context.Context, horseID uuid.UUID) (*uuid.UUID, error)
}

type service struct {
	repo       repository
	detention  detentionSource
	photos     photoStore
	storageCfg config.StorageConfig
	photosCfg  config.PhotosConfig
	logg       *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo          repository
	Detention     detentionSource
	PhotoStore    photoStore
	StorageConfig config.StorageConfig
	PhotosConfig  config.PhotosConfig
	Logger        *logger.Logger
}

// NewService constructs a horses service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("horses repository is required")
	}
	return &service{
		repo:       params.Repo,
		detention:  params.Detention,
		photos:     params.PhotoStore,
		storageCfg: params.StorageConfig,
		photosCfg:  params.PhotosConfig,
		logg:       params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*HorseDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	sex := enumsOrDefault(req.Sex)
	if !sex.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sex")
	}

	row, err := s.repo.Create(ctx, &models.Horse{
		OwnerID:    ownerID,
		Name:       req.Name,
		Birthdate:  req.Birthdate,
		Sex:        sex,
		SireNumber: req.SireNumber,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create horse")
	}
	return FromModel(row), nil
}

func (s *service) Get(ctx context.Context, ownerID, horseID uuid.UUID) (*HorseDetail, error) {
	row, err := s.RequireOwned(ctx, ownerID, horseID)
	if err != nil {
		return nil, err
	}

	detail := &HorseDetail{HorseDTO: *FromModel(row)}

	if row.PhotoPath != nil && s.photos != nil {
		url, signErr := s.photos.SignedReadURL(s.storageCfg.PhotoBucket, *row.PhotoPath, s.storageCfg.DownloadURLExpiry)
		if signErr != nil {
			// The photo URL is derived data; the horse itself still loads.
			if s.logg != nil {
				s.logg.Warn(s.logg.WithHorseID(ctx, horseID.String()), "signing photo url failed")
			}
		} else {
			detail.PhotoURL = &url
		}
	}

	if s.detention != nil {
		addressID, detErr := s.detention.LatestToAddressID(ctx, horseID)
		if detErr != nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithHorseID(ctx, horseID.String()), "detention address lookup failed")
			}
		} else {
			detail.CurrentDetentionAddressID = addressID
		}
	}

	return detail, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*ListResult, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, nextCursor, err := s.repo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list horses")
	}
	horses := make([]HorseDTO, 0, len(rows))
	for i := range rows {
		horses = append(horses, *FromModel(&rows[i]))
	}
	return &ListResult{Horses: horses, NextCursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, ownerID, horseID uuid.UUID, req UpdateRequest) (*HorseDTO, error) {
	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	switch {
	case req.ClearBirthdate && req.Birthdate != nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "birthdate and clear_birthdate are mutually exclusive")
	case req.ClearBirthdate:
		updates["birthdate"] = nil
	case req.Birthdate != nil:
		updates["birthdate"] = req.Birthdate
	}
	if req.Sex != nil {
		if !req.Sex.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sex")
		}
		updates["sex"] = *req.Sex
	}
	switch {
	case req.ClearSireNumber && req.SireNumber != nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sire_number and clear_sire_number are mutually exclusive")
	case req.ClearSireNumber:
		updates["sire_number"] = nil
	case req.SireNumber != nil:
		updates["sire_number"] = req.SireNumber
	}

	if len(updates) > 0 {
		affected, err := s.repo.Update(ctx, ownerID, horseID, updates)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update horse")
		}
		if affected == 0 {
			return s.notFoundOrForbidden(ctx, ownerID, horseID)
		}
	}

	row, err := s.RequireOwned(ctx, ownerID, horseID)
	if err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, ownerID, horseID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, ownerID, horseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete horse")
	}
	if affected == 0 {
		_, err := s.notFoundOrForbidden(ctx, ownerID, horseID)
		return err
	}
	return nil
}

// RequireOwned loads the horse and enforces ownership. Other services use it
// as the guard before attaching movements or interventions.
func (s *service) RequireOwned(ctx context.Context, ownerID, horseID uuid.UUID) (*models.Horse, error) {
	row, err := s.repo.FindByID(ctx, horseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "horse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load horse")
	}
	if row.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "horse belongs to another user")
	}
	return row, nil
}

// notFoundOrForbidden disambiguates a zero-row owner-scoped write.
func (s *service) notFoundOrForbidden(ctx context.Context, ownerID, horseID uuid.UUID) (*HorseDTO, error) {
	if _, err := s.repo.FindByID(ctx, horseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "horse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load horse")
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "horse belongs to another user")
}
