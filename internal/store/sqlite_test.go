package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocklens/internal/errors"
	"stocklens/internal/models"
)

func testDirectory(t *testing.T) *SQLiteDirectory {
	t.Helper()
	dir, err := NewSQLiteDirectory(filepath.Join(t.TempDir(), "symbols.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })
	return dir
}

func TestSQLiteDirectory_UpsertAndGet(t *testing.T) {
	dir := testDirectory(t)
	ctx := context.Background()

	err := dir.Upsert(ctx, []models.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ", Sector: "Technology"},
	})
	require.NoError(t, err)

	ins, err := dir.Get(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", ins.Name)
	assert.Equal(t, "NASDAQ", ins.Exchange)
	assert.Equal(t, "Technology", ins.Sector)

	// Lookup is case-insensitive on the symbol.
	ins, err = dir.Get(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", ins.Symbol)
}

func TestSQLiteDirectory_UpsertReplaces(t *testing.T) {
	dir := testDirectory(t)
	ctx := context.Background()

	require.NoError(t, dir.Upsert(ctx, []models.Instrument{
		{Symbol: "MSFT", Name: "Microsoft", Exchange: "NASDAQ"},
	}))
	require.NoError(t, dir.Upsert(ctx, []models.Instrument{
		{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", Sector: "Technology"},
	}))

	ins, err := dir.Get(ctx, "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft Corporation", ins.Name)
	assert.Equal(t, "Technology", ins.Sector)
}

func TestSQLiteDirectory_GetMissing(t *testing.T) {
	dir := testDirectory(t)

	_, err := dir.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, errors.ErrSymbolNotFound)
}

func TestSQLiteDirectory_Search(t *testing.T) {
	dir := testDirectory(t)
	ctx := context.Background()

	require.NoError(t, dir.Upsert(ctx, []models.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
		{Symbol: "APLE", Name: "Apple Hospitality REIT", Exchange: "NYSE"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
	}))

	results, err := dir.Search(ctx, "apple", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "APLE", results[1].Symbol)

	results, err = dir.Search(ctx, "MS", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MSFT", results[0].Symbol)

	results, err = dir.Search(ctx, "apple", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
