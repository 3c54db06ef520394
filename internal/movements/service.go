package movements

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/internal/addresses"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/pkg/db"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// Service defines the behavior needed by the movements controller.
type Service interface {
	Create(ctx context.Context, userID, horseID uuid.UUID, req CreateRequest) (*MovementDetail, error)
	ListByHorse(ctx context.Context, userID, horseID uuid.UUID) (*ListResult, error)
}

// horseGuard enforces horse ownership before any read or write.
type horseGuard interface {
	RequireOwned(ctx context.Context, ownerID, horseID uuid.UUID) (*models.Horse, error)
}

type service struct {
	db     *db.Client
	horses horseGuard
	logg   *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	DB     *db.Client
	Horses horseGuard
	Logger *logger.Logger
}

// NewService constructs a movements service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Horses == nil {
		return nil, fmt.Errorf("horse guard is required")
	}
	return &service{db: params.DB, horses: params.Horses, logg: params.Logger}, nil
}

// Create records a movement. The destination resolves from the request in
// priority order: a professional's registered address, an inline address
// draft put through the dedup resolver, or an explicit address id. The "from"
// side is derived from the horse's current detention address and may be
// absent. ReturnAt earlier than DepartAt is accepted as-is; the range is
// advisory and has never been enforced on the write path.
func (s *service) Create(ctx context.Context, userID, horseID uuid.UUID, req CreateRequest) (*MovementDetail, error) {
	if _, err := s.horses.RequireOwned(ctx, userID, horseID); err != nil {
		return nil, err
	}
	if req.DepartAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "depart_at is required")
	}
	if destinationCount(req) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one destination is required: professional_id, address, or to_address_id")
	}
	transport := enums.TransportModeUnknown
	if req.Transport != nil {
		transport = *req.Transport
	}
	if !transport.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transport mode")
	}

	conn := s.db.DB()

	if req.InterventionID != nil {
		intervention, err := interventions.NewRepository(conn).FindByID(ctx, *req.InterventionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "intervention not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load intervention")
		}
		if intervention.HorseID != horseID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "intervention belongs to another horse")
		}
	}

	var toAddressID uuid.UUID
	if req.ProfessionalID != nil {
		pro, err := professionals.NewRepository(conn).FindByID(ctx, *req.ProfessionalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "professional not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load professional")
		}
		if pro.AddressID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "professional has no registered address")
		}
		toAddressID = *pro.AddressID
	}
	if req.ToAddressID != nil {
		if _, err := addresses.NewRepository(conn).FindByID(ctx, *req.ToAddressID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
		}
		toAddressID = *req.ToAddressID
	}

	fromAddressID, err := NewRepository(conn).LatestToAddressID(ctx, horseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve detention address")
	}

	var created *models.Movement
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if req.Address != nil {
			resolved, err := addresses.NewResolver(addresses.NewRepository(tx)).FindOrCreate(ctx, userID, *req.Address)
			if err != nil {
				return err
			}
			toAddressID = resolved.ID
		}

		row := &models.Movement{
			HorseID:        horseID,
			FromAddressID:  fromAddressID,
			ToAddressID:    toAddressID,
			ProfessionalID: req.ProfessionalID,
			InterventionID: req.InterventionID,
			DepartAt:       req.DepartAt,
			ReturnAt:       req.ReturnAt,
			Reason:         req.Reason,
			Transport:      transport,
			Manual:         true,
			CreatedBy:      userID,
		}
		inserted, err := NewRepository(tx).Create(ctx, row)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	})
	if txErr != nil {
		var appErr *pkgerrors.Error
		if errors.As(txErr, &appErr) {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "create movement")
	}

	details, _ := s.enricher(conn).enrich(ctx, []models.Movement{*created})
	return &details[0], nil
}

// ListByHorse returns the horse's full movement history, newest departure
// first, with related rows resolved best-effort.
func (s *service) ListByHorse(ctx context.Context, userID, horseID uuid.UUID) (*ListResult, error) {
	if _, err := s.horses.RequireOwned(ctx, userID, horseID); err != nil {
		return nil, err
	}

	conn := s.db.DB()
	rows, err := NewRepository(conn).ListByHorse(ctx, horseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}

	details, partial := s.enricher(conn).enrich(ctx, rows)
	return &ListResult{Movements: details, Partial: partial}, nil
}

func (s *service) enricher(conn *gorm.DB) *enricher {
	return &enricher{
		addresses:     addresses.NewRepository(conn),
		professionals: professionals.NewRepository(conn),
		interventions: interventions.NewRepository(conn),
		logg:          s.logg,
	}
}

func destinationCount(req CreateRequest) int {
	count := 0
	if req.ProfessionalID != nil {
		count++
	}
	if req.Address != nil {
		count++
	}
	if req.ToAddressID != nil {
		count++
	}
	return count
}
