package horses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mlegrand/equilog-backend/pkg/db/models"
	"github.com/mlegrand/equilog-backend/pkg/enums"
	"github.com/mlegrand/equilog-backend/pkg/pagination"
)

// sqliteUUIDDefault approximates gen_random_uuid() for in-memory tests.
const sqliteUUIDDefault = `(lower(hex(randomblob(4))||'-'||hex(randomblob(2))||'-4'||substr(hex(randomblob(2)),2)||'-'||substr('89ab',abs(random())%4+1,1)||substr(hex(randomblob(2)),2)||'-'||hex(randomblob(6))))`

func setupHorseTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the private in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS horses (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  birthdate DATETIME,
  sex TEXT NOT NULL DEFAULT 'unknown',
  sire_number TEXT,
  photo_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedHorse(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, createdAt time.Time) *models.Horse {
	t.Helper()
	row := &models.Horse{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Sex:       enums.HorseSexUnknown,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRepositoryCreateTrimsName(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), &models.Horse{
		OwnerID: uuid.New(),
		Name:    "  Jolly Jumper ",
		Sex:     enums.HorseSexGelding,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Jolly Jumper", created.Name)
}

func TestRepositoryListByOwnerPaginates(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedHorse(t, db, owner, fmt.Sprintf("horse-%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	seedHorse(t, db, other, "not-mine", base.Add(time.Hour))

	rows, cursor, err := repo.ListByOwner(ctx, owner, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.NotEmpty(t, cursor)
	assert.Equal(t, "horse-4", rows[0].Name)
	assert.Equal(t, "horse-2", rows[2].Name)

	rows, cursor, err = repo.ListByOwner(ctx, owner, pagination.Params{Limit: 3, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Empty(t, cursor)
	assert.Equal(t, "horse-1", rows[0].Name)
	assert.Equal(t, "horse-0", rows[1].Name)
}

func TestRepositoryListByOwnerRejectsBadCursor(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)

	_, _, err := repo.ListByOwner(context.Background(), uuid.New(), pagination.Params{Cursor: "not-a-cursor"})
	require.Error(t, err)
}

func TestRepositoryUpdateScopedToOwner(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	createdAt := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	row := seedHorse(t, db, owner, "Tornado", createdAt)

	affected, err := repo.Update(ctx, uuid.New(), row.ID, map[string]any{"name": "Stolen"})
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Update(ctx, owner, row.ID, map[string]any{"name": "Ouragan"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	reloaded, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ouragan", reloaded.Name)
	assert.True(t, reloaded.CreatedAt.Equal(createdAt), "update must not touch created_at, got %v", reloaded.CreatedAt)
}

func TestRepositoryDeleteScopedToOwner(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	row := seedHorse(t, db, owner, "Flicka", time.Now().UTC())

	affected, err := repo.Delete(ctx, uuid.New(), row.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, owner, row.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = repo.FindByID(ctx, row.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdatePhotoPath(t *testing.T) {
	db := setupHorseTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	row := seedHorse(t, db, owner, "Crin Blanc", time.Now().UTC())

	affected, err := repo.UpdatePhotoPath(ctx, owner, row.ID, "owner/horse/1_photo.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	reloaded, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.PhotoPath)
	assert.Equal(t, "owner/horse/1_photo.jpg", *reloaded.PhotoPath)
}
