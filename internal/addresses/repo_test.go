package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteUUIDDefault approximates gen_random_uuid() for in-memory tests.
const sqliteUUIDDefault = `(lower(hex(randomblob(4))||'-'||hex(randomblob(2))||'-4'||substr(hex(randomblob(2)),2)||'-'||substr('89ab',abs(random())%4+1,1)||substr(hex(randomblob(2)),2)||'-'||hex(randomblob(6))))`

func setupAddressTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the private in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS addresses (
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
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryCreateAppliesDefaults(t *testing.T) {
	db := setupAddressTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()

	created, err := repo.Create(context.Background(), owner, AddressInput{
		Line1:      "  12 rue des Écuries ",
		PostalCode: "14800",
		City:       "Deauville",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "12 rue des Écuries", created.Line1)
	assert.Equal(t, "FR", created.Country)
	assert.Equal(t, owner, created.CreatedBy)
}

func TestRepositoryFindCandidatesScopedToCreator(t *testing.T) {
	db := setupAddressTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	input := AddressInput{Line1: "3 chemin du Haras", PostalCode: "61400", City: "Mortagne"}
	_, err := repo.Create(ctx, owner, input)
	require.NoError(t, err)
	_, err = repo.Create(ctx, other, input)
	require.NoError(t, err)

	rows, err := repo.FindCandidates(ctx, owner, AddressInput{
		Line1:      "3 CHEMIN DU HARAS",
		PostalCode: "61400",
		City:       "mortagne",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, owner, rows[0].CreatedBy)
}

func TestRepositoryFindByIDsSkipsMissing(t *testing.T) {
	db := setupAddressTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	created, err := repo.Create(ctx, owner, AddressInput{Line1: "1 place du Marché", PostalCode: "75001", City: "Paris"})
	require.NoError(t, err)

	rows, err := repo.FindByIDs(ctx, []uuid.UUID{created.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	rows, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
