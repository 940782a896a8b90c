package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGet_NotExists_ReturnsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSetIfAbsent_KeepsFirstValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	v, err := r.SetIfAbsent(ctx, "salt:u1", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), v)

	v, err = r.SetIfAbsent(ctx, "salt:u1", []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), v)
}

func TestListPrefix_FiltersKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "salt:a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "salt:b", []byte{0xBB}))
	require.NoError(t, r.Set(ctx, "other", []byte{0xCC}))

	m, err := r.ListPrefix(ctx, "salt:")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"salt:a": {0xAA}, "salt:b": {0xBB}}, m)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	_, err := r.Get(ctx, "x")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata[k]")

	_, err = r.ListPrefix(ctx, "k")
	require.ErrorContains(t, err, "failed to list metadata")
}
