package indexoai

import (
	"context"
	"fmt"
	"time"
)

// sliceCatalog keeps records ordered by ID.
type sliceCatalog struct {
	records []Record
	err     error
}

func (c *sliceCatalog) Earliest(ctx context.Context) (time.Time, error) {
	if c.err != nil {
		return time.Time{}, c.err
	}
	var earliest time.Time
	for _, rec := range c.records {
		if earliest.IsZero() || rec.Datestamp.Before(earliest) {
			earliest = rec.Datestamp
		}
	}
	if earliest.IsZero() {
		return earliest, ErrNoEarliestDatestamp
	}
	return earliest, nil
}

func (c *sliceCatalog) Lookup(ctx context.Context, key string) (*Record, error) {
	if c.err != nil {
		return nil, c.err
	}
	for _, rec := range c.records {
		if rec.Key == key {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (c *sliceCatalog) Scan(ctx context.Context, q Query) ([]Record, error) {
	if c.err != nil {
		return nil, c.err
	}
	var result []Record
	for _, rec := range c.records {
		if rec.ID < q.ResumeID || !q.Window.Contains(rec.Datestamp) {
			continue
		}
		result = append(result, rec)
		if q.Limit > 0 && len(result) == q.Limit {
			break
		}
	}
	return result, nil
}

// testEpoch is the datestamp of the first generated record.
var testEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// makeRecords returns n records with IDs starting at 1, one hour apart.
func makeRecords(n int) []Record {
	var records []Record
	for i := 1; i <= n; i++ {
		records = append(records, Record{
			ID:        int64(i),
			Key:       fmt.Sprintf("Index_%d.djvu", i),
			Datestamp: testEpoch.Add(time.Duration(i-1) * time.Hour),
			Language:  "en",
			Entries: []Entry{
				{Key: "title", SimpleDC: "dc:title", QualifiedDC: "dc:title", Values: []Value{String(fmt.Sprintf("Title %d", i))}},
			},
		})
	}
	return records
}
