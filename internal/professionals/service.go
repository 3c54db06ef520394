package professionals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/internal/addresses"
	"github.com/mlegrand/equilog-backend/pkg/db"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

const kindEmailConstraint = "professionals_kind_email_key"

// Service defines the behavior needed by the professionals controller.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*CreateResult, error)
	Get(ctx context.Context, id uuid.UUID) (*ProfessionalDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ProfessionalDTO, error)
	Update(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateRequest) (*ProfessionalDTO, error)
	Verify(ctx context.Context, id uuid.UUID) (*ProfessionalDTO, error)
}

type service struct {
	db   *db.Client
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	DB     *db.Client
	Logger *logger.Logger
}

// NewService constructs a professionals service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB, logg: params.Logger}, nil
}

// Create runs dedup-before-insert: the email and phone lookups execute
// concurrently, and an insert-time unique violation is converted back into
// the surviving row instead of an error.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*CreateResult, error) {
	if !req.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid profession kind")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display_name is required")
	}

	repo := NewRepository(s.db.DB())

	existing, err := s.findDuplicate(ctx, repo, req.Kind, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateResult{
			Professional: s.withAddress(ctx, existing),
			Deduplicated: true,
		}, nil
	}

	var created *models.Professional
	var addressRow *models.Address
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		addressRepo := addresses.NewRepository(tx)

		var addressID *uuid.UUID
		if req.Address != nil {
			resolved, err := addresses.NewResolver(addressRepo).FindOrCreate(ctx, userID, *req.Address)
			if err != nil {
				return err
			}
			addressRow = resolved
			addressID = &resolved.ID
		}

		row := &models.Professional{
			DisplayName: strings.TrimSpace(req.DisplayName),
			CompanyName: req.CompanyName,
			Kind:        req.Kind,
			Email:       normalizedEmailPtr(req.Email),
			Phone:       req.Phone,
			Website:     req.Website,
			Notes:       req.Notes,
			AddressID:   addressID,
			CreatedBy:   userID,
		}
		inserted, err := txRepo.Create(ctx, row)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	})
	if txErr != nil {
		// Lost the race to another writer with the same (kind, email).
		if db.IsUniqueViolation(txErr, kindEmailConstraint) && req.Email != nil {
			survivor, lookupErr := repo.FindByKindEmail(ctx, req.Kind, *req.Email)
			if lookupErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lookupErr, "resolve duplicate professional")
			}
			return &CreateResult{
				Professional: s.withAddress(ctx, survivor),
				Deduplicated: true,
			}, nil
		}
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "create professional")
	}

	return &CreateResult{
		Professional: FromModel(created, addressRow),
		Deduplicated: false,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProfessionalDTO, error) {
	repo := NewRepository(s.db.DB())
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "professional not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load professional")
	}
	return s.withAddress(ctx, row), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProfessionalDTO, error) {
	if filter.Kind != nil && !filter.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid profession kind")
	}
	repo := NewRepository(s.db.DB())
	rows, err := repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list professionals")
	}

	addressByID := s.batchAddresses(ctx, rows)

	result := make([]ProfessionalDTO, 0, len(rows))
	for i := range rows {
		var address *models.Address
		if rows[i].AddressID != nil {
			address = addressByID[*rows[i].AddressID]
		}
		result = append(result, *FromModel(&rows[i], address))
	}
	return result, nil
}

// batchAddresses resolves the distinct address ids of a listing in one
// lookup. A failed lookup degrades to unresolved addresses rather than
// failing the listing.
func (s *service) batchAddresses(ctx context.Context, rows []models.Professional) map[uuid.UUID]*models.Address {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		id := rows[i].AddressID
		if id == nil {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := addresses.NewRepository(s.db.DB()).FindByIDs(ctx, ids)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "professional address batch lookup failed")
		}
		return nil
	}

	byID := make(map[uuid.UUID]*models.Address, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return byID
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateRequest) (*ProfessionalDTO, error) {
	repo := NewRepository(s.db.DB())
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "professional not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load professional")
	}
	if row.CreatedBy != userID && !isAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator or an admin may update this entry")
	}

	updates := map[string]any{}
	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display_name cannot be empty")
		}
		updates["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.CompanyName != nil {
		updates["company_name"] = req.CompanyName
	}
	if req.Email != nil {
		updates["email"] = normalizedEmailPtr(req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.Website != nil {
		updates["website"] = req.Website
	}
	if req.Notes != nil {
		updates["notes"] = req.Notes
	}
	if req.IsVerified != nil && isAdmin {
		updates["is_verified"] = *req.IsVerified
	}

	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		addressRepo := addresses.NewRepository(tx)

		switch {
		case req.DetachAddress:
			updates["address_id"] = nil
		case req.Address != nil:
			resolved, err := addresses.NewResolver(addressRepo).FindOrCreate(ctx, userID, *req.Address)
			if err != nil {
				return err
			}
			updates["address_id"] = resolved.ID
		}

		return txRepo.Update(ctx, id, updates)
	})
	if txErr != nil {
		if db.IsUniqueViolation(txErr, kindEmailConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "another professional of this kind already uses that email")
		}
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "update professional")
	}

	return s.Get(ctx, id)
}

func (s *service) Verify(ctx context.Context, id uuid.UUID) (*ProfessionalDTO, error) {
	repo := NewRepository(s.db.DB())
	if err := repo.SetVerified(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "professional not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify professional")
	}
	return s.Get(ctx, id)
}

// findDuplicate runs the email and phone lookups concurrently and returns the
// first match, preferring the email path when both hit.
func (s *service) findDuplicate(ctx context.Context, repo *Repository, kind enums.ProfessionKind, email, phone *string) (*models.Professional, error) {
	var byEmail *models.Professional
	var byPhone *models.Professional

	group, groupCtx := errgroup.WithContext(ctx)

	if email != nil && strings.TrimSpace(*email) != "" {
		group.Go(func() error {
			row, err := repo.FindByKindEmail(groupCtx, kind, *email)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			byEmail = row
			return nil
		})
	}

	if phone != nil && len(phoneDigits(*phone)) >= minPhoneDigits {
		group.Go(func() error {
			candidates, err := repo.FindPhoneCandidates(groupCtx, kind)
			if err != nil {
				return err
			}
			for i := range candidates {
				if candidates[i].Phone != nil && samePhone(*candidates[i].Phone, *phone) {
					byPhone = &candidates[i]
					return nil
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "dedup lookup")
	}

	if byEmail != nil {
		return byEmail, nil
	}
	return byPhone, nil
}

// withAddress resolves the linked address. A failed or missing lookup leaves
// the address nil rather than failing the primary result.
func (s *service) withAddress(ctx context.Context, row *models.Professional) *ProfessionalDTO {
	if row.AddressID == nil {
		return FromModel(row, nil)
	}
	addressRepo := addresses.NewRepository(s.db.DB())
	address, err := addressRepo.FindByID(ctx, *row.AddressID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && s.logg != nil {
			s.logg.Warn(ctx, "professional address lookup failed")
		}
		return FromModel(row, nil)
	}
	return FromModel(row, address)
}

func normalizedEmailPtr(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := normalizeEmail(*email)
	if normalized == "" {
		return nil
	}
	return &normalized
}
