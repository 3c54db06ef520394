package interventions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

// Service defines the behavior needed by the interventions controller.
type Service interface {
	Create(ctx context.Context, userID, horseID uuid.UUID, req CreateRequest) (*InterventionDTO, error)
	ListByHorse(ctx context.Context, userID, horseID uuid.UUID) ([]InterventionDTO, error)
}

type repository interface {
	Create(ctx context.Context, row *models.Intervention) (*models.Intervention, error)
	ListByHorse(ctx context.Context, horseID uuid.UUID) ([]models.Intervention, error)
}

// horseGuard enforces horse ownership before any write or read.
type horseGuard interface {
	RequireOwned(ctx context.Context, ownerID, horseID uuid.UUID) (*models.Horse, error)
}

type service struct {
	repo   repository
	horses horseGuard
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo   repository
	Horses horseGuard
}

// NewService constructs an interventions service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("interventions repository is required")
	}
	if params.Horses == nil {
		return nil, fmt.Errorf("horse guard is required")
	}
	return &service{repo: params.Repo, horses: params.Horses}, nil
}

func (s *service) Create(ctx context.Context, userID, horseID uuid.UUID, req CreateRequest) (*InterventionDTO, error) {
	if _, err := s.horses.RequireOwned(ctx, userID, horseID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	row, err := s.repo.Create(ctx, &models.Intervention{
		HorseID:        horseID,
		Title:          title,
		Notes:          req.Notes,
		ProfessionalID: req.ProfessionalID,
		CreatedBy:      userID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create intervention")
	}
	return FromModel(row), nil
}

func (s *service) ListByHorse(ctx context.Context, userID, horseID uuid.UUID) ([]InterventionDTO, error) {
	if _, err := s.horses.RequireOwned(ctx, userID, horseID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByHorse(ctx, horseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list interventions")
	}
	out := make([]InterventionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
