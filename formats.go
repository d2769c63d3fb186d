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

// Metadata prefixes supported by this repository.
const (
	PrefixOAIDC  = "oai_dc"
	PrefixPrpQDC = "prp_qdc"
)

// DefaultQDCSchema is the published schema location, used by NewFormats
// when no location is given.
const DefaultQDCSchema = "http://mediawiki.org/xml/proofreadpage/qdc.xsd"

// Format describes a metadata format.
type Format struct {
	Prefix    string
	Namespace string
	Schema    string
}

// Formats is the fixed table of metadata formats, in the order they are
// listed.
type Formats struct {
	formats []Format
}

// NewFormats returns the two supported formats. The qualified Dublin Core
// schema location depends on where the repository serves it.
func NewFormats(qdcSchema string) Formats {
	if qdcSchema == "" {
		qdcSchema = DefaultQDCSchema
	}
	return Formats{formats: []Format{
		{
			Prefix:    PrefixOAIDC,
			Namespace: "http://www.openarchives.org/OAI/2.0/oai_dc/",
			Schema:    "http://www.openarchives.org/OAI/2.0/oai_dc.xsd",
		},
		{
			Prefix:    PrefixPrpQDC,
			Namespace: "http://mediawiki.org/xml/proofreadpage/qdc/",
			Schema:    qdcSchema,
		},
	}}
}

// Resolve returns the format registered under prefix.
func (f Formats) Resolve(prefix string) (Format, error) {
	for _, format := range f.formats {
		if format.Prefix == prefix {
			return format, nil
		}
	}
	return Format{}, NewError(CannotDisseminateFormat, "Requested unsupported metadata format.")
}

// Known reports whether prefix is registered.
func (f Formats) Known(prefix string) bool {
	_, err := f.Resolve(prefix)
	return err == nil
}

// All returns all formats in a stable order.
func (f Formats) All() []Format {
	out := make([]Format, len(f.formats))
	copy(out, f.formats)
	return out
}
