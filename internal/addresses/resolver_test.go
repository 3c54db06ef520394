package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

func strPtr(value string) *string {
	return &value
}

func TestResolverFindOrCreateIsIdempotent(t *testing.T) {
	db := setupAddressTestDB(t)
	resolver := NewResolver(NewRepository(db))
	ctx := context.Background()
	owner := uuid.New()

	first, err := resolver.FindOrCreate(ctx, owner, AddressInput{
		Line1:      "12 Rue des Écuries",
		PostalCode: "14800",
		City:       "Deauville",
	})
	require.NoError(t, err)

	// Same address with different casing and stray whitespace.
	second, err := resolver.FindOrCreate(ctx, owner, AddressInput{
		Line1:      "  12 rue des écuries",
		PostalCode: "14800 ",
		City:       "DEAUVILLE",
		Country:    "fr",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Table("addresses").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolverLine2DistinguishesRows(t *testing.T) {
	db := setupAddressTestDB(t)
	resolver := NewResolver(NewRepository(db))
	ctx := context.Background()
	owner := uuid.New()

	base := AddressInput{Line1: "5 avenue Foch", PostalCode: "75116", City: "Paris"}
	first, err := resolver.FindOrCreate(ctx, owner, base)
	require.NoError(t, err)

	withUnit := base
	withUnit.Line2 = strPtr("Bâtiment B")
	second, err := resolver.FindOrCreate(ctx, owner, withUnit)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Same line2 reuses the second row.
	third, err := resolver.FindOrCreate(ctx, owner, withUnit)
	require.NoError(t, err)
	assert.Equal(t, second.ID, third.ID)
}

func TestResolverScopedPerUser(t *testing.T) {
	db := setupAddressTestDB(t)
	resolver := NewResolver(NewRepository(db))
	ctx := context.Background()

	input := AddressInput{Line1: "8 rue du Paddock", PostalCode: "49400", City: "Saumur"}
	first, err := resolver.FindOrCreate(ctx, uuid.New(), input)
	require.NoError(t, err)
	second, err := resolver.FindOrCreate(ctx, uuid.New(), input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResolverValidation(t *testing.T) {
	db := setupAddressTestDB(t)
	resolver := NewResolver(NewRepository(db))
	ctx := context.Background()

	cases := []AddressInput{
		{PostalCode: "14800", City: "Deauville"},
		{Line1: "12 rue X", City: "Deauville"},
		{Line1: "12 rue X", PostalCode: "14800"},
	}
	for _, input := range cases {
		_, err := resolver.FindOrCreate(ctx, uuid.New(), input)
		assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "expected validation error for %+v", input)
	}
}
