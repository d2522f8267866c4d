package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/modabuy/storefront-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE cart_lines (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, product_id)
		)`).Error)
	return db
}

func TestUpsertCreatesThenAdds(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()

	require.NoError(t, repo.Upsert(ctx, userID, productID, 2))
	require.NoError(t, repo.Upsert(ctx, userID, productID, 3))

	line, err := repo.FindLine(ctx, userID, productID)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 5, line.Quantity)

	// Still a single row.
	var count int64
	require.NoError(t, db.Model(&models.CartLine{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindLineAbsentReturnsNil(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	line, err := repo.FindLine(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestListByUserScopedToUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, repo.Upsert(ctx, alice, uuid.New(), 1))
	require.NoError(t, repo.Upsert(ctx, alice, uuid.New(), 2))
	require.NoError(t, repo.Upsert(ctx, bob, uuid.New(), 9))

	lines, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestDeleteLineAndClear(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, repo.Upsert(ctx, userID, first, 1))
	require.NoError(t, repo.Upsert(ctx, userID, second, 1))

	require.NoError(t, repo.DeleteLine(ctx, userID, first))
	lines, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, repo.Clear(ctx, userID))
	lines, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Clearing an empty cart is a no-op.
	require.NoError(t, repo.Clear(ctx, userID))
}
