package movements

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mlegrand/equilog-backend/internal/addresses"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// Enrichment category names reported in ListResult.Partial.
const (
	categoryAddresses     = "addresses"
	categoryProfessionals = "professionals"
	categoryInterventions = "interventions"
)

type addressLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Address, error)
}

type professionalLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Professional, error)
}

type interventionLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Intervention, error)
}

// enricher resolves the foreign keys of a movement list with batched lookups.
// Lookup failures degrade to unresolved relations instead of failing the list.
type enricher struct {
	addresses     addressLookup
	professionals professionalLookup
	interventions interventionLookup
	logg          *logger.Logger
}

// enrich fans out one batched fetch per referenced category, indexes the
// results by id, and stitches them onto the rows. The input order is
// preserved; the returned partial list names the categories whose lookup
// failed.
func (e *enricher) enrich(ctx context.Context, rows []models.Movement) ([]MovementDetail, []string) {
	addressIDs := collectAddressIDs(rows)
	professionalIDs := collectIDs(rows, func(m *models.Movement) *uuid.UUID { return m.ProfessionalID })
	interventionIDs := collectIDs(rows, func(m *models.Movement) *uuid.UUID { return m.InterventionID })

	var (
		addressRows      []models.Address
		professionalRows []models.Professional
		interventionRows []models.Intervention

		addressErr      error
		professionalErr error
		interventionErr error
	)

	// Category failures are recorded, not returned, so one slow or broken
	// lookup cannot cancel its siblings.
	var group errgroup.Group
	if len(addressIDs) > 0 && e.addresses != nil {
		group.Go(func() error {
			addressRows, addressErr = e.addresses.FindByIDs(ctx, addressIDs)
			return nil
		})
	}
	if len(professionalIDs) > 0 && e.professionals != nil {
		group.Go(func() error {
			professionalRows, professionalErr = e.professionals.FindByIDs(ctx, professionalIDs)
			return nil
		})
	}
	if len(interventionIDs) > 0 && e.interventions != nil {
		group.Go(func() error {
			interventionRows, interventionErr = e.interventions.FindByIDs(ctx, interventionIDs)
			return nil
		})
	}
	_ = group.Wait()

	var partial []string
	if addressErr != nil {
		partial = append(partial, categoryAddresses)
		e.warn(ctx, "address enrichment failed")
	}
	if professionalErr != nil {
		partial = append(partial, categoryProfessionals)
		e.warn(ctx, "professional enrichment failed")
	}
	if interventionErr != nil {
		partial = append(partial, categoryInterventions)
		e.warn(ctx, "intervention enrichment failed")
	}

	addressByID := make(map[uuid.UUID]*models.Address, len(addressRows))
	for i := range addressRows {
		addressByID[addressRows[i].ID] = &addressRows[i]
	}
	professionalByID := make(map[uuid.UUID]*models.Professional, len(professionalRows))
	for i := range professionalRows {
		professionalByID[professionalRows[i].ID] = &professionalRows[i]
	}
	interventionByID := make(map[uuid.UUID]*models.Intervention, len(interventionRows))
	for i := range interventionRows {
		interventionByID[interventionRows[i].ID] = &interventionRows[i]
	}

	out := make([]MovementDetail, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		detail := MovementDetail{MovementDTO: *FromModel(row)}

		if row.FromAddressID != nil {
			detail.FromAddress = addresses.FromModel(addressByID[*row.FromAddressID])
		}
		detail.ToAddress = addresses.FromModel(addressByID[row.ToAddressID])
		if row.ProfessionalID != nil {
			if pro, ok := professionalByID[*row.ProfessionalID]; ok {
				var proAddress *models.Address
				if pro.AddressID != nil {
					proAddress = addressByID[*pro.AddressID]
				}
				detail.Professional = professionals.FromModel(pro, proAddress)
			}
		}
		if row.InterventionID != nil {
			detail.Intervention = interventions.FromModel(interventionByID[*row.InterventionID])
		}

		out = append(out, detail)
	}
	return out, partial
}

func (e *enricher) warn(ctx context.Context, msg string) {
	if e.logg != nil {
		e.logg.Warn(ctx, msg)
	}
}

// collectAddressIDs gathers the distinct address references across both the
// "from" and "to" roles so the category resolves with one round trip.
func collectAddressIDs(rows []models.Movement) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for i := range rows {
		if _, ok := seen[rows[i].ToAddressID]; !ok {
			seen[rows[i].ToAddressID] = struct{}{}
			out = append(out, rows[i].ToAddressID)
		}
		if from := rows[i].FromAddressID; from != nil {
			if _, ok := seen[*from]; !ok {
				seen[*from] = struct{}{}
				out = append(out, *from)
			}
		}
	}
	return out
}

func collectIDs(rows []models.Movement, pick func(*models.Movement) *uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for i := range rows {
		id := pick(&rows[i])
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}
