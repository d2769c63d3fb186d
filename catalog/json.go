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

// Package catalog provides record stores for the OAI endpoint: an in-memory
// catalog for tests and small collections, and a SQLite catalog. Records are
// exchanged as JSON Lines.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/miku/indexoai"
)

// valueJSON is the stored form of a typed value, Type selects the variant.
type valueJSON struct {
	Type   string   `json:"type"`
	Value  string   `json:"value,omitempty"`
	Number *float64 `json:"number,omitempty"`
	Title  string   `json:"title,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type entryJSON struct {
	Key         string      `json:"key"`
	SimpleDC    string      `json:"dc,omitempty"`
	QualifiedDC string      `json:"qdc,omitempty"`
	Values      []valueJSON `json:"values"`
}

type recordJSON struct {
	ID        int64       `json:"id"`
	Key       string      `json:"key"`
	Datestamp time.Time   `json:"datestamp"`
	Language  string      `json:"language,omitempty"`
	MimeType  string      `json:"mime_type,omitempty"`
	Entries   []entryJSON `json:"entries"`
}

func encodeValue(v indexoai.Value) (valueJSON, error) {
	switch v := v.(type) {
	case indexoai.String:
		return valueJSON{Type: v.Kind(), Value: string(v)}, nil
	case indexoai.PageRef:
		return valueJSON{Type: v.Kind(), Title: v.Title, Text: v.Text}, nil
	case indexoai.Number:
		f := float64(v)
		return valueJSON{Type: v.Kind(), Number: &f}, nil
	case indexoai.URI:
		return valueJSON{Type: v.Kind(), Value: string(v)}, nil
	case indexoai.LangCode:
		return valueJSON{Type: v.Kind(), Value: string(v)}, nil
	}
	return valueJSON{}, fmt.Errorf("%w: %T", indexoai.ErrUnknownValueType, v)
}

func decodeValue(v valueJSON) (indexoai.Value, error) {
	switch v.Type {
	case indexoai.String("").Kind():
		return indexoai.String(v.Value), nil
	case indexoai.PageRef{}.Kind():
		return indexoai.PageRef{Title: v.Title, Text: v.Text}, nil
	case indexoai.Number(0).Kind():
		if v.Number == nil {
			return nil, fmt.Errorf("number value without number")
		}
		return indexoai.Number(*v.Number), nil
	case indexoai.URI("").Kind():
		return indexoai.URI(v.Value), nil
	case indexoai.LangCode("").Kind():
		return indexoai.LangCode(v.Value), nil
	}
	return nil, fmt.Errorf("%w: %q", indexoai.ErrUnknownValueType, v.Type)
}

func encodeEntries(entries []indexoai.Entry) ([]entryJSON, error) {
	result := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		ej := entryJSON{Key: e.Key, SimpleDC: e.SimpleDC, QualifiedDC: e.QualifiedDC}
		for _, v := range e.Values {
			vj, err := encodeValue(v)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Key, err)
			}
			ej.Values = append(ej.Values, vj)
		}
		result = append(result, ej)
	}
	return result, nil
}

func decodeEntries(entries []entryJSON) ([]indexoai.Entry, error) {
	var result []indexoai.Entry
	for _, ej := range entries {
		e := indexoai.Entry{Key: ej.Key, SimpleDC: ej.SimpleDC, QualifiedDC: ej.QualifiedDC}
		for _, vj := range ej.Values {
			v, err := decodeValue(vj)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", ej.Key, err)
			}
			e.Values = append(e.Values, v)
		}
		result = append(result, e)
	}
	return result, nil
}

// MarshalRecord returns the JSON form of a record.
func MarshalRecord(rec indexoai.Record) ([]byte, error) {
	entries, err := encodeEntries(rec.Entries)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordJSON{
		ID:        rec.ID,
		Key:       rec.Key,
		Datestamp: rec.Datestamp.UTC(),
		Language:  rec.Language,
		MimeType:  rec.MimeType,
		Entries:   entries,
	})
}

// UnmarshalRecord parses the JSON form of a record.
func UnmarshalRecord(b []byte) (indexoai.Record, error) {
	var rj recordJSON
	if err := json.Unmarshal(b, &rj); err != nil {
		return indexoai.Record{}, err
	}
	if rj.Key == "" {
		return indexoai.Record{}, ErrNoKey
	}
	if rj.ID < 0 {
		return indexoai.Record{}, ErrNegativeID
	}
	entries, err := decodeEntries(rj.Entries)
	if err != nil {
		return indexoai.Record{}, err
	}
	return indexoai.Record{
		ID:        rj.ID,
		Key:       rj.Key,
		Datestamp: rj.Datestamp.UTC().Truncate(time.Second),
		Language:  rj.Language,
		MimeType:  rj.MimeType,
		Entries:   entries,
	}, nil
}

// ReadJSONL reads one record per line, blank lines are skipped.
func ReadJSONL(r io.Reader) ([]indexoai.Record, error) {
	var records []indexoai.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lineno int
	for scanner.Scan() {
		lineno++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := UnmarshalRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteJSONL writes records one per line.
func WriteJSONL(w io.Writer, records []indexoai.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		b, err := MarshalRecord(rec)
		if err != nil {
			return err
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
