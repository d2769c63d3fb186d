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

// Package harvest is a small OAI-PMH client. It follows resumption tokens
// and retries failed HTTP requests, which is enough to mirror a repository or
// to check that an endpoint behaves.
package harvest

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/miku/indexoai"
)

var (
	ErrNoEndpoint      = errors.New("request: an endpoint is required")
	ErrNoVerb          = errors.New("no verb")
	ErrBadVerb         = errors.New("bad verb")
	ErrTooManyRequests = errors.New("too many requests")
)

// Request can hold any parameter, that you want to send to an OAI server.
type Request struct {
	Endpoint        string
	Verb            string
	From            time.Time
	Until           time.Time
	Set             string
	Prefix          string
	Identifier      string
	ResumptionToken string
}

// URL returns the absolute URL for a given request. Catches basic errors like
// missing endpoint or bad verb.
func (r Request) URL() (s string, err error) {
	if r.Endpoint == "" {
		return s, ErrNoEndpoint
	}
	if r.Verb == "" {
		return s, ErrNoVerb
	}
	grammar, found := indexoai.VerbGrammar[r.Verb]
	if !found {
		return s, ErrBadVerb
	}

	values := url.Values{}
	values.Add(indexoai.ArgVerb, r.Verb)

	// Collectively these requests are called list requests (3.5):
	// ListIdentifiers, ListRecords, ListSets
	if r.ResumptionToken != "" && grammar.Exclusive != "" {
		// An exclusive argument with a value that is the flow control token.
		values.Add(indexoai.ArgResumptionToken, r.ResumptionToken)
		return fmt.Sprintf("%s?%s", r.Endpoint, values.Encode()), nil
	}

	allowed := make(map[string]bool)
	for _, name := range grammar.Required {
		allowed[name] = true
	}
	for _, name := range grammar.Optional {
		allowed[name] = true
	}
	maybeAdd := func(k string, v interface{}) {
		if !allowed[k] {
			return
		}
		switch val := v.(type) {
		case time.Time:
			if !val.IsZero() {
				values.Add(k, val.UTC().Format("2006-01-02"))
			}
		case string:
			if val != "" {
				values.Add(k, val)
			}
		default:
			panic(fmt.Sprintf("maybeAdd cannot handle %T", v))
		}
	}
	maybeAdd(indexoai.ArgIdentifier, r.Identifier)
	maybeAdd(indexoai.ArgMetadataPrefix, r.Prefix)
	maybeAdd(indexoai.ArgFrom, r.From)
	maybeAdd(indexoai.ArgUntil, r.Until)
	maybeAdd(indexoai.ArgSet, r.Set)
	return fmt.Sprintf("%s?%s", r.Endpoint, values.Encode()), nil
}
