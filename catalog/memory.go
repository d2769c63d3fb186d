//  Copyright 2015 by Leipzig University Library, http://ub.uni-leipzig.de
//                    The Finc Authors, http://finc.info
//                    Martin Czygan, <martin.czygan@uni-leipzig.de>
//
// This file is part of some open source application.
//
// Some open source application is free software: you can redistribute
// it and/or modify it under the terms of the GNU General Public
// License as published by the Free Software Foundation, either
// version 3 of the License, or (at your option) any later version.
//
// Some open source application is distributed in the hope that it will
// be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
// of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Foobar.  If not, see <http://www.gnu.org/licenses/>.
//
// @license GPL-3.0+ <http://spdx.org/licenses/GPL-3.0+>

package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/miku/indexoai"
)

var (
	ErrNoKey       = errors.New("catalog: record has no key")
	ErrDuplicateID = errors.New("catalog: duplicate record id")
	// Resumption tokens only carry non-negative ids.
	ErrNegativeID = errors.New("catalog: negative record id")
)

// Memory keeps records in a slice ordered by ID.
type Memory struct {
	mu      sync.RWMutex
	records []indexoai.Record
	byKey   map[string]int
}

// NewMemory returns a catalog holding the given records.
func NewMemory(records ...indexoai.Record) (*Memory, error) {
	m := &Memory{byKey: make(map[string]int)}
	for _, rec := range records {
		if err := m.Put(rec); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Put adds or replaces a record. Replacing keeps the record ID, a different
// record with the same ID is an error. A new record with a zero ID is
// appended after the highest ID.
func (m *Memory) Put(rec indexoai.Record) error {
	if rec.Key == "" {
		return ErrNoKey
	}
	if rec.ID < 0 {
		return ErrNegativeID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byKey[rec.Key]; ok {
		rec.ID = m.records[i].ID
		m.records[i] = rec
		return nil
	}
	if rec.ID == 0 {
		rec.ID = 1
		if n := len(m.records); n > 0 {
			rec.ID = m.records[n-1].ID + 1
		}
	}
	i := sort.Search(len(m.records), func(i int) bool { return m.records[i].ID >= rec.ID })
	if i < len(m.records) && m.records[i].ID == rec.ID {
		return ErrDuplicateID
	}
	m.records = append(m.records, indexoai.Record{})
	copy(m.records[i+1:], m.records[i:])
	m.records[i] = rec
	m.reindex()
	return nil
}

func (m *Memory) reindex() {
	for i, rec := range m.records {
		m.byKey[rec.Key] = i
	}
}

// Len returns the number of records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Earliest returns the smallest datestamp.
func (m *Memory) Earliest(ctx context.Context) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.records) == 0 {
		return time.Time{}, indexoai.ErrNoEarliestDatestamp
	}
	earliest := m.records[0].Datestamp
	for _, rec := range m.records[1:] {
		if rec.Datestamp.Before(earliest) {
			earliest = rec.Datestamp
		}
	}
	return earliest, nil
}

// Lookup finds a record by key.
func (m *Memory) Lookup(ctx context.Context, key string) (*indexoai.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byKey[key]
	if !ok {
		return nil, nil
	}
	rec := m.records[i]
	return &rec, nil
}

// Scan returns records in ID order.
func (m *Memory) Scan(ctx context.Context, q indexoai.Query) ([]indexoai.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	start := sort.Search(len(m.records), func(i int) bool { return m.records[i].ID >= q.ResumeID })
	var result []indexoai.Record
	for _, rec := range m.records[start:] {
		if q.Limit > 0 && len(result) == q.Limit {
			break
		}
		if q.Window.Contains(rec.Datestamp) {
			result = append(result, rec)
		}
	}
	return result, nil
}
