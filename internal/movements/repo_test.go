package movements

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
)

// sqliteUUIDDefault approximates gen_random_uuid() for in-memory tests.
const sqliteUUIDDefault = `(lower(hex(randomblob(4))||'-'||hex(randomblob(2))||'-4'||substr(hex(randomblob(2)),2)||'-'||substr('89ab',abs(random())%4+1,1)||substr(hex(randomblob(2)),2)||'-'||hex(randomblob(6))))`

func setupMovementTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the private in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS addresses (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  label TEXT,
  line1 TEXT NOT NULL,
  line2 TEXT,
  postal_code TEXT NOT NULL,
  city TEXT NOT NULL,
  country TEXT NOT NULL DEFAULT 'FR',
  lat REAL,
  lng REAL,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS professionals (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  display_name TEXT NOT NULL,
  company_name TEXT,
  kind TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  website TEXT,
  notes TEXT,
  address_id TEXT,
  is_verified INTEGER NOT NULL DEFAULT 0,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS interventions (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  horse_id TEXT NOT NULL,
  title TEXT NOT NULL,
  notes TEXT,
  professional_id TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS horse_movements (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  horse_id TEXT NOT NULL,
  from_address_id TEXT,
  to_address_id TEXT NOT NULL,
  professional_id TEXT,
  intervention_id TEXT,
  depart_at DATETIME NOT NULL,
  return_at DATETIME,
  reason TEXT,
  transport TEXT NOT NULL DEFAULT 'unknown',
  manual INTEGER NOT NULL DEFAULT 1,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedMovement(t *testing.T, db *gorm.DB, horseID, toAddress uuid.UUID, departAt, createdAt time.Time) *models.Movement {
	t.Helper()
	row := &models.Movement{
		ID:          uuid.New(),
		HorseID:     horseID,
		ToAddressID: toAddress,
		DepartAt:    departAt,
		Transport:   enums.TransportModeUnknown,
		Manual:      true,
		CreatedBy:   uuid.New(),
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRepositoryListByHorseOrdersByDeparture(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	horse := uuid.New()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	older := seedMovement(t, db, horse, uuid.New(), base, base)
	newest := seedMovement(t, db, horse, uuid.New(), base.Add(48*time.Hour), base.Add(time.Minute))
	middle := seedMovement(t, db, horse, uuid.New(), base.Add(24*time.Hour), base.Add(2*time.Minute))
	seedMovement(t, db, uuid.New(), uuid.New(), base.Add(72*time.Hour), base)

	rows, err := repo.ListByHorse(ctx, horse)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, middle.ID, rows[1].ID)
	assert.Equal(t, older.ID, rows[2].ID)
}

func TestRepositoryListByHorseTieBreaksOnCreation(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	horse := uuid.New()

	departAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	first := seedMovement(t, db, horse, uuid.New(), departAt, departAt)
	second := seedMovement(t, db, horse, uuid.New(), departAt, departAt.Add(time.Hour))

	rows, err := repo.ListByHorse(ctx, horse)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestRepositoryLatestToAddressID(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	horse := uuid.New()

	got, err := repo.LatestToAddressID(ctx, horse)
	require.NoError(t, err)
	assert.Nil(t, got)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedMovement(t, db, horse, uuid.New(), base, base)
	latest := seedMovement(t, db, horse, uuid.New(), base.Add(24*time.Hour), base.Add(time.Minute))

	got, err = repo.LatestToAddressID(ctx, horse)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, latest.ToAddressID, *got)
}
