package catalog

import (
	"testing"
	"time"

	"github.com/miku/indexoai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryScan(t *testing.T) {
	m, err := NewMemory(testRecords(10)...)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Len())
	testScan(t, m)
}

func TestMemoryEarliest(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	_, err = m.Earliest(ctx)
	assert.ErrorIs(t, err, indexoai.ErrNoEarliestDatestamp)

	records := testRecords(3)
	records[2].Datestamp = epoch.Add(-time.Hour)
	m, err = NewMemory(records...)
	require.NoError(t, err)
	earliest, err := m.Earliest(ctx)
	require.NoError(t, err)
	assert.True(t, earliest.Equal(epoch.Add(-time.Hour)))
}

func TestMemoryPut(t *testing.T) {
	m, err := NewMemory(testRecords(3)...)
	require.NoError(t, err)

	// replacing by key keeps the id
	rec := testRecords(2)[1]
	rec.ID = 99
	rec.Language = "fr"
	require.NoError(t, m.Put(rec))
	got, err := m.Lookup(ctx, "Index_2.djvu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, 3, m.Len())

	// a new record without id goes last
	require.NoError(t, m.Put(indexoai.Record{Key: "New.djvu", Datestamp: epoch}))
	got, err = m.Lookup(ctx, "New.djvu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ID)

	assert.ErrorIs(t, m.Put(indexoai.Record{ID: 1, Key: "Other.djvu"}), ErrDuplicateID)
	assert.ErrorIs(t, m.Put(indexoai.Record{ID: 7}), ErrNoKey)

	// out of order inserts stay sorted
	require.NoError(t, m.Put(indexoai.Record{ID: 50, Key: "Fifty.djvu", Datestamp: epoch}))
	require.NoError(t, m.Put(indexoai.Record{ID: 10, Key: "Ten.djvu", Datestamp: epoch}))
	records, err := m.Scan(ctx, indexoai.Query{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 10, 50}, ids(records))
	for i := 1; i < len(records); i++ {
		assert.Less(t, records[i-1].ID, records[i].ID)
	}
}

func TestMemoryNegativeID(t *testing.T) {
	_, err := NewMemory(indexoai.Record{ID: -1, Key: "Minus.djvu", Datestamp: epoch})
	assert.ErrorIs(t, err, ErrNegativeID)

	m, err := NewMemory(testRecords(3)...)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Put(indexoai.Record{ID: -40, Key: "Minus.djvu", Datestamp: epoch}), ErrNegativeID)
	got, err := m.Lookup(ctx, "Minus.djvu")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 3, m.Len())
}

func TestMemoryScanCanceled(t *testing.T) {
	m, err := NewMemory(testRecords(3)...)
	require.NoError(t, err)
	canceled, cancel := contextWithCancel()
	cancel()
	_, err = m.Scan(canceled, indexoai.Query{})
	assert.Error(t, err)
}
