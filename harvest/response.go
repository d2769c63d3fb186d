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
	"encoding/xml"

	"github.com/miku/indexoai"
)

// resumptionToken is part of OAI flow control (3.5)
type resumptionToken struct {
	Value string `xml:",chardata"`
	// A count of the number of elements of the complete list thus far
	// returned (i.e. cursor starts at 0).
	Cursor string `xml:"cursor,attr"`
	// An integer indicating the cardinality of the complete list, may be
	// only an estimate.
	CompleteListSize string `xml:"completeListSize,attr"`
}

// Header is the main response of ListIdentifiers requests and also
// transmitted in ListRecords.
type Header struct {
	XMLName    xml.Name `xml:"header" json:"-"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
}

// Set from a ListSets response.
type Set struct {
	XMLName xml.Name `xml:"set" json:"-"`
	Spec    string   `xml:"setSpec" json:"spec"`
	Name    string   `xml:"setName" json:"name"`
}

// Record with its metadata kept verbatim.
type Record struct {
	XMLName  xml.Name `xml:"record"`
	Header   Header   `xml:"header"`
	Metadata struct {
		Verbatim string `xml:",innerxml"`
	} `xml:"metadata"`
}

// Identify response.
type Identify struct {
	Name              string   `xml:"repositoryName,omitempty" json:"name,omitempty"`
	URL               string   `xml:"baseURL,omitempty" json:"url,omitempty"`
	Version           string   `xml:"protocolVersion,omitempty" json:"version,omitempty"`
	AdminEmail        string   `xml:"adminEmail,omitempty" json:"email,omitempty"`
	EarliestDatestamp string   `xml:"earliestDatestamp,omitempty" json:"earliest,omitempty"`
	DeletePolicy      string   `xml:"deletedRecord,omitempty" json:"delete,omitempty"`
	Granularity       string   `xml:"granularity,omitempty" json:"granularity,omitempty"`
	Compression       []string `xml:"compression,omitempty" json:"compression,omitempty"`
	Description       []struct {
		Identifier struct {
			Scheme               string `xml:"scheme,omitempty" json:"scheme,omitempty"`
			RepositoryIdentifier string `xml:"repositoryIdentifier,omitempty" json:"repositoryIdentifier,omitempty"`
			Delimiter            string `xml:"delimiter,omitempty" json:"delimiter,omitempty"`
			SampleIdentifier     string `xml:"sampleIdentifier,omitempty" json:"sampleIdentifier,omitempty"`
		} `xml:"oai-identifier,omitempty" json:"identifier,omitempty"`
	} `xml:"description,omitempty" json:"description,omitempty"`
}

// MetadataFormat as listed by ListMetadataFormats.
type MetadataFormat struct {
	Prefix    string `xml:"metadataPrefix" json:"prefix"`
	Schema    string `xml:"schema" json:"schema"`
	Namespace string `xml:"metadataNamespace" json:"namespace"`
}

// Response can hold most answers to an request to a OAI server.
type Response struct {
	XMLName xml.Name `xml:"OAI-PMH"`
	Date    string   `xml:"responseDate"`
	Request struct {
		Verb           string `xml:"verb,attr"`
		MetadataPrefix string `xml:"metadataPrefix,attr"`
		Endpoint       string `xml:",chardata"`
	} `xml:"request"`
	Error struct {
		Code    string `xml:"code,attr"`
		Message string `xml:",chardata"`
	} `xml:"error"`
	Identify            Identify `xml:"Identify"`
	ListMetadataFormats struct {
		Formats []MetadataFormat `xml:"metadataFormat"`
	} `xml:"ListMetadataFormats"`
	GetRecord struct {
		Record Record `xml:"record"`
	} `xml:"GetRecord"`
	ListIdentifiers struct {
		Headers []Header        `xml:"header"`
		Token   resumptionToken `xml:"resumptionToken"`
	} `xml:"ListIdentifiers"`
	ListRecords struct {
		Records []Record        `xml:"record"`
		Token   resumptionToken `xml:"resumptionToken"`
	} `xml:"ListRecords"`
	ListSets struct {
		Sets  []Set           `xml:"set"`
		Token resumptionToken `xml:"resumptionToken"`
	} `xml:"ListSets"`
}

// ResumptionToken returns the token of a list response, empty if the list
// is complete.
func (r Response) ResumptionToken() string {
	// In cases where the request that generated this response did not result
	// in an error or exception condition, the attributes and attribute values
	// of the request element must match the key=value pairs of the protocol
	// request (3.2 XML Response Format).
	switch r.Request.Verb {
	case indexoai.ListIdentifiers:
		return r.ListIdentifiers.Token.Value
	case indexoai.ListRecords:
		return r.ListRecords.Token.Value
	case indexoai.ListSets:
		return r.ListSets.Token.Value
	}
	return ""
}
