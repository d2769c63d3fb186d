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
	"net/url"
	"strings"
)

// Protocol request arguments (4. Protocol Requests and Responses).
const (
	ArgVerb            = "verb"
	ArgIdentifier      = "identifier"
	ArgMetadataPrefix  = "metadataPrefix"
	ArgFrom            = "from"
	ArgUntil           = "until"
	ArgSet             = "set"
	ArgResumptionToken = "resumptionToken"
)

// Verbs.
const (
	Identify            = "Identify"
	ListMetadataFormats = "ListMetadataFormats"
	GetRecord           = "GetRecord"
	ListIdentifiers     = "ListIdentifiers"
	ListRecords         = "ListRecords"
	ListSets            = "ListSets"
)

// Grammar describes which arguments a verb accepts. If the exclusive argument
// is present, it is the only one looked at.
type Grammar struct {
	Exclusive string
	Required  []string
	Optional  []string
}

// VerbGrammar maps each verb to its arguments.
var VerbGrammar = map[string]Grammar{
	GetRecord: {
		Required: []string{ArgIdentifier, ArgMetadataPrefix},
	},
	Identify: {},
	ListIdentifiers: {
		Exclusive: ArgResumptionToken,
		Required:  []string{ArgMetadataPrefix},
		Optional:  []string{ArgFrom, ArgUntil, ArgSet},
	},
	ListMetadataFormats: {
		Optional: []string{ArgIdentifier},
	},
	ListRecords: {
		Exclusive: ArgResumptionToken,
		Required:  []string{ArgMetadataPrefix},
		Optional:  []string{ArgFrom, ArgUntil, ArgSet},
	},
	ListSets: {
		Exclusive: ArgResumptionToken,
	},
}

// argOrder is the order in which arguments are echoed back.
var argOrder = []string{
	ArgIdentifier,
	ArgMetadataPrefix,
	ArgFrom,
	ArgUntil,
	ArgSet,
	ArgResumptionToken,
}

// ParsedRequest is a verb together with the arguments its grammar let
// through.
type ParsedRequest struct {
	Verb string
	Args map[string]string
}

// Get returns the value of an argument, empty if absent.
func (r ParsedRequest) Get(name string) string {
	return r.Args[name]
}

// Has reports whether an argument was given.
func (r ParsedRequest) Has(name string) bool {
	_, ok := r.Args[name]
	return ok
}

// Attrs returns verb and arguments as ordered key value pairs, suitable for
// the request element.
func (r ParsedRequest) Attrs() [][2]string {
	if r.Verb == "" {
		return nil
	}
	attrs := [][2]string{{ArgVerb, r.Verb}}
	for _, name := range argOrder {
		if v, ok := r.Args[name]; ok {
			attrs = append(attrs, [2]string{name, v})
		}
	}
	return attrs
}

// ParseRequest checks the arguments of an incoming request against the
// grammar of its verb.
func ParseRequest(values url.Values) (ParsedRequest, error) {
	verb := values.Get(ArgVerb)
	grammar, ok := VerbGrammar[verb]
	if !ok {
		return ParsedRequest{}, NewError(BadVerb, "Unrecognized or no verb provided.")
	}
	req := ParsedRequest{Verb: verb, Args: make(map[string]string)}

	if grammar.Exclusive != "" {
		if vs, found := values[grammar.Exclusive]; found && len(vs) > 0 {
			req.Args[grammar.Exclusive] = vs[0]
			return req, nil
		}
	}
	for _, name := range grammar.Required {
		v := strings.TrimSpace(values.Get(name))
		if v == "" {
			return ParsedRequest{}, Errorf(BadArgument, "Missing required argument %q", name)
		}
		req.Args[name] = v
	}
	for _, name := range grammar.Optional {
		if vs, found := values[name]; found && len(vs) > 0 {
			req.Args[name] = vs[0]
		}
	}
	return req, nil
}
