package addresses

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

type candidateRepo interface {
	Create(ctx context.Context, createdBy uuid.UUID, input AddressInput) (*models.Address, error)
	FindCandidates(ctx context.Context, createdBy uuid.UUID, input AddressInput) ([]models.Address, error)
}

// Resolver performs dedup-before-insert for address drafts. Lookups are
// scoped to the caller's own rows; two users entering the same address get
// two rows.
type Resolver struct {
	repo candidateRepo
}

// NewResolver builds an address resolver over the given repo.
func NewResolver(repo candidateRepo) *Resolver {
	return &Resolver{repo: repo}
}

// FindOrCreate reuses an existing normalized-equal address or inserts a new
// one. The check-then-insert window is not transactional; a concurrent
// duplicate insert produces a second row, which the next lookup tolerates.
func (r *Resolver) FindOrCreate(ctx context.Context, createdBy uuid.UUID, input AddressInput) (*models.Address, error) {
	if strings.TrimSpace(input.Line1) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line1 is required")
	}
	if strings.TrimSpace(input.PostalCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal_code is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	target := normalizeInput(input)

	candidates, err := r.repo.FindCandidates(ctx, createdBy, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup address candidates")
	}
	for i := range candidates {
		row := &candidates[i]
		if normalizeRow(row.Line1, row.Line2, row.PostalCode, row.City, row.Country) == target {
			return row, nil
		}
	}

	created, err := r.repo.Create(ctx, createdBy, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
	}
	return created, nil
}
