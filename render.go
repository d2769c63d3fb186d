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
	"fmt"
	"io"
)

const (
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
)

// Renderer writes OAI records of catalog entries.
type Renderer struct {
	Identifier Identifier
	Formats    Formats
	// MimeType of the site, always listed as a dc:format.
	MimeType string
}

// RenderHeader writes the header of a record, it is the same for every
// metadata format.
func (r Renderer) RenderHeader(w io.Writer, rec Record) error {
	x := newXMLWriter(w)
	if err := r.header(x, rec); err != nil {
		return err
	}
	return x.flush()
}

// Render writes a complete record in the format named by prefix.
func (r Renderer) Render(w io.Writer, rec Record, prefix string) error {
	x := newXMLWriter(w)
	if err := r.record(x, rec, prefix); err != nil {
		return err
	}
	return x.flush()
}

func (r Renderer) header(x *xmlWriter, rec Record) error {
	datestamp, err := Datestamp(rec.Datestamp, GranularitySecond)
	if err != nil {
		return err
	}
	x.open("header")
	x.element("identifier", r.Identifier.Format(rec.Key))
	x.element("datestamp", datestamp)
	x.close("header")
	return x.err
}

func (r Renderer) record(x *xmlWriter, rec Record, prefix string) error {
	format, err := r.Formats.Resolve(prefix)
	if err != nil {
		return err
	}
	x.open("record")
	if err := r.header(x, rec); err != nil {
		return err
	}
	x.open("metadata")
	switch format.Prefix {
	case PrefixOAIDC:
		err = r.oaiDC(x, rec, format)
	case PrefixPrpQDC:
		err = r.prpQDC(x, rec, format)
	default:
		err = fmt.Errorf("no renderer for format %q", format.Prefix)
	}
	if err != nil {
		return err
	}
	x.close("metadata")
	x.close("record")
	return x.err
}

func (r Renderer) oaiDC(x *xmlWriter, rec Record, format Format) error {
	x.open("oai_dc:dc",
		"xmlns:oai_dc", format.Namespace,
		"xmlns:dc", nsDC,
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", format.Namespace+" "+format.Schema)
	x.element("dc:type", "Text")
	x.element("dc:format", r.MimeType)
	if rec.MimeType != "" {
		x.element("dc:format", rec.MimeType)
	}
	for _, entry := range rec.Entries {
		if err := r.entry(x, rec, entry, false); err != nil {
			return err
		}
	}
	x.close("oai_dc:dc")
	return x.err
}

func (r Renderer) prpQDC(x *xmlWriter, rec Record, format Format) error {
	x.open("prp_qdc:qdc",
		"xmlns:prp_qdc", format.Namespace,
		"xmlns:dc", nsDC,
		"xmlns:dcterms", nsDCTerms,
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", format.Namespace+" "+format.Schema)
	x.element("dc:type", "Text", "xsi:type", "dcterms:DCMIType")
	x.element("dc:format", r.MimeType, "xsi:type", "dcterms:IMT")
	if rec.MimeType != "" {
		x.element("dc:format", rec.MimeType, "xsi:type", "dcterms:IMT")
	}
	for _, entry := range rec.Entries {
		if err := r.entry(x, rec, entry, true); err != nil {
			return err
		}
	}
	x.close("prp_qdc:qdc")
	return x.err
}

// entry writes one element per value. Entries without a property in the
// requested schema are skipped.
func (r Renderer) entry(x *xmlWriter, rec Record, entry Entry, qualified bool) error {
	key := entry.SimpleDC
	if qualified {
		key = entry.QualifiedDC
	}
	if key == "" {
		return nil
	}
	for _, value := range entry.Values {
		switch v := value.(type) {
		case String:
			x.element(key, string(v), "xml:lang", rec.Language)
		case PageRef:
			x.element(key, v.MainText())
		case Number:
			if qualified {
				x.element(key, v.String(), "xsi:type", "xsi:decimal")
			} else {
				x.element(key, v.String())
			}
		case URI:
			if qualified {
				x.element(key, string(v), "xsi:type", "dcterms:URI")
			} else {
				x.element(key, string(v))
			}
		case LangCode:
			if qualified {
				x.element(key, string(v), "xsi:type", "dcterms:RFC5646")
			} else {
				x.element(key, string(v))
			}
		default:
			return fmt.Errorf("%w: %T in entry %q of %q", ErrUnknownValueType, value, entry.Key, rec.Key)
		}
	}
	return x.err
}
