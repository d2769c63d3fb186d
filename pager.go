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
	"time"
)

// Page is one response worth of a list request.
type Page struct {
	Records []Record
	// Cursor counts the records returned by earlier pages.
	Cursor int
	// Next is set if more records remain.
	Next *ResumptionToken
}

// End is the cursor after this page.
func (p Page) End() int {
	return p.Cursor + len(p.Records)
}

// Pager runs list requests against a catalog, ChunkSize records at a time.
type Pager struct {
	Catalog   Catalog
	ChunkSize int
}

// Page fetches the records of a fresh list request (token is nil) or of a
// resumed one. A resumed request keeps the upper bound of its token and
// ignores from.
func (p Pager) Page(ctx context.Context, prefix string, w Window, token *ResumptionToken) (Page, error) {
	chunk := p.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	q := Query{Window: w, Limit: chunk + 1}
	var cursor int
	if token != nil {
		prefix = token.Prefix
		q.ResumeID = token.ResumeID
		q.Window = Window{}
		if token.Until != nil {
			q.Window.Until = *token.Until
		}
		cursor = token.Cursor
	}
	rows, err := p.Catalog.Scan(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if len(rows) == 0 {
		return Page{}, NewError(NoRecordsMatch, "No records available match the request.")
	}
	page := Page{Cursor: cursor}
	if len(rows) > chunk {
		next := &ResumptionToken{
			Prefix:   prefix,
			ResumeID: rows[chunk].ID,
			Cursor:   cursor + chunk,
		}
		if !q.Window.Until.IsZero() {
			until := q.Window.Until.UTC().Truncate(time.Second)
			next.Until = &until
		}
		page.Next = next
		rows = rows[:chunk]
	}
	page.Records = rows
	return page, nil
}
