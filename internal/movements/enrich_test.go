package movements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

type stubAddressLookup struct {
	rows   []models.Address
	err    error
	calls  int
	lastIn []uuid.UUID
}

func (s *stubAddressLookup) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Address, error) {
	s.calls++
	s.lastIn = ids
	return s.rows, s.err
}

type stubProfessionalLookup struct {
	rows  []models.Professional
	err   error
	calls int
}

func (s *stubProfessionalLookup) FindByIDs(_ context.Context, _ []uuid.UUID) ([]models.Professional, error) {
	s.calls++
	return s.rows, s.err
}

type stubInterventionLookup struct {
	rows  []models.Intervention
	err   error
	calls int
}

func (s *stubInterventionLookup) FindByIDs(_ context.Context, _ []uuid.UUID) ([]models.Intervention, error) {
	s.calls++
	return s.rows, s.err
}

func movementRow(horseID uuid.UUID, toAddress uuid.UUID, departAt time.Time) models.Movement {
	return models.Movement{
		ID:          uuid.New(),
		HorseID:     horseID,
		ToAddressID: toAddress,
		DepartAt:    departAt,
		Transport:   enums.TransportModeVan,
		Manual:      true,
		CreatedBy:   uuid.New(),
		CreatedAt:   departAt,
	}
}

func TestEnrichStitchesRelatedRows(t *testing.T) {
	horse := uuid.New()
	toAddress := models.Address{ID: uuid.New(), Line1: "1 rue du Manège", PostalCode: "75001", City: "Paris", Country: "FR"}
	fromAddress := models.Address{ID: uuid.New(), Line1: "2 chemin des Prés", PostalCode: "61400", City: "Mortagne", Country: "FR"}
	pro := models.Professional{ID: uuid.New(), DisplayName: "Dr Morel", Kind: enums.ProfessionKindVeterinarian, CreatedBy: uuid.New()}
	care := models.Intervention{ID: uuid.New(), HorseID: horse, Title: "Vaccination", CreatedBy: uuid.New()}

	row := movementRow(horse, toAddress.ID, time.Now().UTC())
	row.FromAddressID = &fromAddress.ID
	row.ProfessionalID = &pro.ID
	row.InterventionID = &care.ID

	addrs := &stubAddressLookup{rows: []models.Address{toAddress, fromAddress}}
	pros := &stubProfessionalLookup{rows: []models.Professional{pro}}
	cares := &stubInterventionLookup{rows: []models.Intervention{care}}
	e := &enricher{addresses: addrs, professionals: pros, interventions: cares}

	details, partial := e.enrich(context.Background(), []models.Movement{row})
	require.Len(t, details, 1)
	assert.Empty(t, partial)

	detail := details[0]
	require.NotNil(t, detail.ToAddress)
	assert.Equal(t, toAddress.Line1, detail.ToAddress.Line1)
	require.NotNil(t, detail.FromAddress)
	assert.Equal(t, fromAddress.Line1, detail.FromAddress.Line1)
	require.NotNil(t, detail.Professional)
	assert.Equal(t, "Dr Morel", detail.Professional.DisplayName)
	require.NotNil(t, detail.Intervention)
	assert.Equal(t, "Vaccination", detail.Intervention.Title)

	// Both address roles resolve through one batched lookup.
	assert.Equal(t, 1, addrs.calls)
	assert.Len(t, addrs.lastIn, 2)
}

func TestEnrichToleratesMissingRelatedRows(t *testing.T) {
	horse := uuid.New()
	known := models.Address{ID: uuid.New(), Line1: "1 rue du Manège", PostalCode: "75001", City: "Paris", Country: "FR"}

	withKnown := movementRow(horse, known.ID, time.Now().UTC())
	deletedAddress := uuid.New()
	withMissing := movementRow(horse, deletedAddress, time.Now().UTC().Add(-time.Hour))
	missingPro := uuid.New()
	withMissing.ProfessionalID = &missingPro

	e := &enricher{
		addresses:     &stubAddressLookup{rows: []models.Address{known}},
		professionals: &stubProfessionalLookup{},
		interventions: &stubInterventionLookup{},
	}

	details, partial := e.enrich(context.Background(), []models.Movement{withKnown, withMissing})
	require.Len(t, details, 2)
	assert.Empty(t, partial)

	// Rows stay in input order; the missing relations resolve to nil while
	// the raw ids are retained.
	assert.Equal(t, withKnown.ID, details[0].ID)
	assert.Equal(t, withMissing.ID, details[1].ID)
	require.NotNil(t, details[0].ToAddress)
	assert.Nil(t, details[1].ToAddress)
	assert.Equal(t, deletedAddress, details[1].ToAddressID)
	assert.Nil(t, details[1].Professional)
	require.NotNil(t, details[1].ProfessionalID)
}

func TestEnrichReportsFailedCategories(t *testing.T) {
	horse := uuid.New()
	row := movementRow(horse, uuid.New(), time.Now().UTC())
	pro := uuid.New()
	row.ProfessionalID = &pro

	e := &enricher{
		addresses:     &stubAddressLookup{err: errors.New("addresses unavailable")},
		professionals: &stubProfessionalLookup{rows: []models.Professional{{ID: pro, DisplayName: "Dr Morel", Kind: enums.ProfessionKindVeterinarian}}},
		interventions: &stubInterventionLookup{},
	}

	details, partial := e.enrich(context.Background(), []models.Movement{row})
	require.Len(t, details, 1)
	assert.Equal(t, []string{categoryAddresses}, partial)

	// The failed category degrades; the healthy one still resolves.
	assert.Nil(t, details[0].ToAddress)
	require.NotNil(t, details[0].Professional)
	assert.Equal(t, "Dr Morel", details[0].Professional.DisplayName)
}

func TestEnrichSkipsEmptyCategories(t *testing.T) {
	horse := uuid.New()
	row := movementRow(horse, uuid.New(), time.Now().UTC())

	addrs := &stubAddressLookup{}
	pros := &stubProfessionalLookup{}
	cares := &stubInterventionLookup{}
	e := &enricher{addresses: addrs, professionals: pros, interventions: cares}

	details, partial := e.enrich(context.Background(), []models.Movement{row})
	require.Len(t, details, 1)
	assert.Empty(t, partial)

	// No professional or intervention references, so no lookup round trip.
	assert.Equal(t, 1, addrs.calls)
	assert.Zero(t, pros.calls)
	assert.Zero(t, cares.calls)
}

func TestEnrichEmptyInput(t *testing.T) {
	addrs := &stubAddressLookup{}
	e := &enricher{addresses: addrs}

	details, partial := e.enrich(context.Background(), nil)
	assert.Empty(t, details)
	assert.Empty(t, partial)
	assert.Zero(t, addrs.calls)
}
