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

package harvest

import (
	"context"
	"time"

	"github.com/miku/indexoai"
)

// Info summarizes a repository.
type Info struct {
	Identify Identify         `json:"id"`
	Formats  []MetadataFormat `json:"formats,omitempty"`
	Sets     []Set            `json:"sets,omitempty"`
	Errors   []string         `json:"errors,omitempty"`
	Elapsed  float64          `json:"elapsed"`
}

type message struct {
	verb string
	resp Response
	err  error
}

// RepositoryInfo returns information about a repository. The three requests
// run concurrently, the whole call gives up after timeout. A repository
// without sets is not an error.
func RepositoryInfo(ctx context.Context, client Client, endpoint string, timeout time.Duration) (Info, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	verbs := []string{indexoai.Identify, indexoai.ListMetadataFormats, indexoai.ListSets}
	// buffered, so stragglers do not block after a timeout
	ch := make(chan message, len(verbs))
	for _, verb := range verbs {
		go func(verb string) {
			resp, err := client.Do(ctx, Request{Endpoint: endpoint, Verb: verb})
			ch <- message{verb: verb, resp: resp, err: err}
		}(verb)
	}

	var info Info
	for received := 0; received < len(verbs); received++ {
		select {
		case msg := <-ch:
			if msg.err != nil {
				if msg.verb == indexoai.ListSets && indexoai.IsCode(msg.err, indexoai.NoSetHierarchy) {
					continue
				}
				info.Errors = append(info.Errors, msg.verb+": "+msg.err.Error())
				continue
			}
			switch msg.verb {
			case indexoai.Identify:
				info.Identify = msg.resp.Identify
			case indexoai.ListMetadataFormats:
				info.Formats = msg.resp.ListMetadataFormats.Formats
			case indexoai.ListSets:
				info.Sets = msg.resp.ListSets.Sets
			}
		case <-ctx.Done():
			return info, ctx.Err()
		}
	}
	info.Elapsed = time.Since(start).Seconds()
	return info, nil
}
