package catalog

import (
	"context"
	"testing"

	"github.com/miku/indexoai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithCancel() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func ids(records []indexoai.Record) []int64 {
	var result []int64
	for _, rec := range records {
		result = append(result, rec.ID)
	}
	return result
}

// testScan runs the same queries against any catalog holding testRecords(10).
func testScan(t *testing.T, s indexoai.Catalog) {
	t.Helper()
	var tests = []struct {
		about string
		q     indexoai.Query
		ids   []int64
	}{
		{"everything", indexoai.Query{}, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"limit", indexoai.Query{Limit: 3}, []int64{1, 2, 3}},
		{"resume", indexoai.Query{ResumeID: 8, Limit: 3}, []int64{8, 9, 10}},
		{"resume beyond end", indexoai.Query{ResumeID: 11}, nil},
		{"from", indexoai.Query{Window: indexoai.Window{From: epoch.AddDate(0, 0, 7)}}, []int64{8, 9, 10}},
		{"until inclusive", indexoai.Query{Window: indexoai.Window{Until: epoch.AddDate(0, 0, 1)}}, []int64{1, 2}},
		{"window and resume", indexoai.Query{
			ResumeID: 4,
			Window:   indexoai.Window{From: epoch.AddDate(0, 0, 1), Until: epoch.AddDate(0, 0, 5)},
		}, []int64{4, 5, 6}},
	}
	for _, test := range tests {
		records, err := s.Scan(ctx, test.q)
		require.NoError(t, err, test.about)
		assert.Equal(t, test.ids, ids(records), test.about)
	}

	rec, err := s.Lookup(ctx, "Index_3.djvu")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, testRecords(3)[2], *rec)

	rec, err = s.Lookup(ctx, "Missing.djvu")
	require.NoError(t, err)
	assert.Nil(t, rec)

	earliest, err := s.Earliest(ctx)
	require.NoError(t, err)
	assert.True(t, earliest.Equal(epoch))
}
