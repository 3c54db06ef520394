package interventions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

type stubInterventionRepo struct {
	rows []models.Intervention
}

func (s *stubInterventionRepo) Create(_ context.Context, row *models.Intervention) (*models.Intervention, error) {
	row.ID = uuid.New()
	row.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, *row)
	return row, nil
}

func (s *stubInterventionRepo) ListByHorse(_ context.Context, horseID uuid.UUID) ([]models.Intervention, error) {
	var out []models.Intervention
	for _, row := range s.rows {
		if row.HorseID == horseID {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubHorseGuard struct {
	ownerID uuid.UUID
}

func (s *stubHorseGuard) RequireOwned(_ context.Context, ownerID, horseID uuid.UUID) (*models.Horse, error) {
	if ownerID != s.ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "horse belongs to another user")
	}
	return &models.Horse{ID: horseID, OwnerID: ownerID}, nil
}

func TestCreateGuardsOwnership(t *testing.T) {
	owner := uuid.New()
	svc, err := NewService(ServiceParams{Repo: &stubInterventionRepo{}, Horses: &stubHorseGuard{ownerID: owner}})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), CreateRequest{Title: "Vaccination"})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
}

func TestCreateRequiresTitle(t *testing.T) {
	owner := uuid.New()
	svc, err := NewService(ServiceParams{Repo: &stubInterventionRepo{}, Horses: &stubHorseGuard{ownerID: owner}})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, uuid.New(), CreateRequest{Title: "   "})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestCreateAndListByHorse(t *testing.T) {
	owner := uuid.New()
	horse := uuid.New()
	repo := &stubInterventionRepo{}
	svc, err := NewService(ServiceParams{Repo: repo, Horses: &stubHorseGuard{ownerID: owner}})
	require.NoError(t, err)

	pro := uuid.New()
	created, err := svc.Create(context.Background(), owner, horse, CreateRequest{
		Title:          "  Annual dental check ",
		ProfessionalID: &pro,
	})
	require.NoError(t, err)
	assert.Equal(t, "Annual dental check", created.Title)
	assert.Equal(t, owner, created.CreatedBy)

	listed, err := svc.ListByHorse(context.Background(), owner, horse)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	require.NotNil(t, listed[0].ProfessionalID)
	assert.Equal(t, pro, *listed[0].ProfessionalID)
}

func TestListGuardsOwnership(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubInterventionRepo{}, Horses: &stubHorseGuard{ownerID: uuid.New()}})
	require.NoError(t, err)

	_, err = svc.ListByHorse(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
}
