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

package indexoai

import (
	"context"
	"strconv"
	"time"
)

// Value is one typed value of a metadata entry. The set of implementations is
// closed: String, PageRef, Number, URI and LangCode.
type Value interface {
	// Kind names the type, as stored by catalogs.
	Kind() string
	value()
}

// String is free text in the content language of the record.
type String string

// PageRef references another page, rendered by its display text.
type PageRef struct {
	Title string
	Text  string
}

// Number is a numeric literal.
type Number float64

// URI is an identifier in canonical URI form.
type URI string

// LangCode is a RFC 5646 language tag.
type LangCode string

func (String) Kind() string   { return "string" }
func (PageRef) Kind() string  { return "page" }
func (Number) Kind() string   { return "number" }
func (URI) Kind() string      { return "identifier" }
func (LangCode) Kind() string { return "langcode" }

func (String) value()   {}
func (PageRef) value()  {}
func (Number) value()   {}
func (URI) value()      {}
func (LangCode) value() {}

// MainText returns the display text, falling back to the title.
func (p PageRef) MainText() string {
	if p.Text != "" {
		return p.Text
	}
	return p.Title
}

// String formats a number without trailing zeros.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Entry is a metadata field of a record. SimpleDC and QualifiedDC name the
// element it maps to in oai_dc and prp_qdc, empty if it is not exported
// there.
type Entry struct {
	Key         string
	SimpleDC    string
	QualifiedDC string
	Values      []Value
}

// Record is an index page of the catalog.
type Record struct {
	// ID orders records and is what resumption tokens point at.
	ID int64
	// Key is the page name, used to build the OAI identifier.
	Key       string
	Datestamp time.Time
	// Language of the content, used for xml:lang.
	Language string
	// MimeType of the scan, may be empty.
	MimeType string
	Entries  []Entry
}

// Query selects records for a list request.
type Query struct {
	// ResumeID is an inclusive lower bound on the record ID.
	ResumeID int64
	Window   Window
	Limit    int
}

// Catalog gives read access to records.
type Catalog interface {
	// Earliest returns the smallest datestamp of all records, or
	// ErrNoEarliestDatestamp if there are none.
	Earliest(ctx context.Context) (time.Time, error)
	// Lookup returns the record with the given key, nil if it does not
	// exist.
	Lookup(ctx context.Context, key string) (*Record, error)
	// Scan returns at most Limit records matching the query, ordered by ID.
	Scan(ctx context.Context, q Query) ([]Record, error)
}
