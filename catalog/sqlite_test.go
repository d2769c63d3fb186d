package catalog

import (
	"path/filepath"
	"testing"

	"github.com/miku/indexoai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "sub", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteScan(t *testing.T) {
	db := openTestSQLite(t)
	require.NoError(t, db.Load(ctx, testRecords(10)))
	testScan(t, db)
}

func TestSQLiteEarliestEmpty(t *testing.T) {
	db := openTestSQLite(t)
	_, err := db.Earliest(ctx)
	assert.ErrorIs(t, err, indexoai.ErrNoEarliestDatestamp)
}

func TestSQLitePut(t *testing.T) {
	db := openTestSQLite(t)
	require.NoError(t, db.Load(ctx, testRecords(3)))

	// replacing by key keeps the id
	rec := testRecords(2)[1]
	rec.Language = "fr"
	rec.Entries = rec.Entries[:1]
	require.NoError(t, db.Put(ctx, rec))
	got, err := db.Lookup(ctx, "Index_2.djvu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, "fr", got.Language)
	assert.Len(t, got.Entries, 1)

	// the database assigns ids to new records
	require.NoError(t, db.Put(ctx, indexoai.Record{Key: "New.djvu", Datestamp: epoch}))
	got, err = db.Lookup(ctx, "New.djvu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ID)
	assert.Empty(t, got.Entries)

	assert.ErrorIs(t, db.Put(ctx, indexoai.Record{ID: 9}), ErrNoKey)
	assert.ErrorIs(t, db.Put(ctx, indexoai.Record{ID: -1, Key: "Minus.djvu", Datestamp: epoch}), ErrNegativeID)
	got, err = db.Lookup(ctx, "Minus.djvu")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteLoadRollsBack(t *testing.T) {
	db := openTestSQLite(t)
	records := testRecords(3)
	records[2].Key = ""
	assert.ErrorIs(t, db.Load(ctx, records), ErrNoKey)

	got, err := db.Scan(ctx, indexoai.Query{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Load(ctx, testRecords(5)))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Scan(ctx, indexoai.Query{ResumeID: 5})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(got))
}
