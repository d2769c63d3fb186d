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
	"errors"
	"fmt"
)

// identify writes the repository description (4.2 Identify).
func (e *Endpoint) identify(ctx context.Context, x *xmlWriter, compression []string) error {
	earliest, err := e.Catalog.Earliest(ctx)
	if err != nil {
		if errors.Is(err, ErrNoEarliestDatestamp) {
			return err
		}
		return fmt.Errorf("earliest datestamp: %w", err)
	}
	if earliest.IsZero() {
		return ErrNoEarliestDatestamp
	}
	datestamp, err := Datestamp(earliest, GranularitySecond)
	if err != nil {
		return err
	}
	repo := e.Repository

	x.open(Identify)
	x.element("repositoryName", repo.RepositoryName)
	x.element("baseURL", repo.BaseURL)
	x.element("protocolVersion", "2.0")
	x.element("adminEmail", repo.AdminEmail)
	x.element("earliestDatestamp", datestamp)
	x.element("deletedRecord", "no")
	x.element("granularity", string(GranularitySecond))
	for _, enc := range compression {
		x.element("compression", enc)
	}
	e.identifierDescription(x)
	e.eprintsDescription(x)
	e.brandingDescription(x)
	x.close(Identify)
	return x.err
}

// identifierDescription documents the identifier scheme, see
// http://www.openarchives.org/OAI/2.0/guidelines-oai-identifier.htm
func (e *Endpoint) identifierDescription(x *xmlWriter) {
	id := e.Repository.Identifier
	x.open("description")
	x.open("oai-identifier",
		"xmlns", "http://www.openarchives.org/OAI/2.0/oai-identifier",
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", "http://www.openarchives.org/OAI/2.0/oai-identifier http://www.openarchives.org/OAI/2.0/oai-identifier.xsd")
	x.element("scheme", "oai")
	x.element("repositoryIdentifier", id.Repository)
	x.element("delimiter", ":")
	x.element("sampleIdentifier", id.Sample())
	x.close("oai-identifier")
	x.close("description")
}

// eprintsDescription, see http://www.openarchives.org/OAI/2.0/guidelines-eprints.htm
func (e *Endpoint) eprintsDescription(x *xmlWriter) {
	ep := e.Repository.Eprints
	x.open("description")
	x.open("eprints",
		"xmlns", "http://www.openarchives.org/OAI/1.1/eprints",
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", "http://www.openarchives.org/OAI/1.1/eprints http://www.openarchives.org/OAI/1.1/eprints.xsd")
	eprintsEntry(x, "content", ep.ContentURL, ep.ContentText)
	eprintsEntry(x, "metadataPolicy", ep.PolicyURL, "")
	eprintsEntry(x, "dataPolicy", ep.PolicyURL, "")
	x.close("eprints")
	x.close("description")
}

func eprintsEntry(x *xmlWriter, name, url, text string) {
	x.open(name)
	if url != "" {
		x.element("URL", url)
	}
	if text != "" {
		x.element("text", text)
	}
	x.close(name)
}

// brandingDescription is only written if a logo is configured, see
// http://www.openarchives.org/OAI/2.0/guidelines-branding.htm
func (e *Endpoint) brandingDescription(x *xmlWriter) {
	repo := e.Repository
	if repo.LogoURL == "" {
		return
	}
	x.open("description")
	x.open("branding",
		"xmlns", "http://www.openarchives.org/OAI/2.0/branding/",
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", "http://www.openarchives.org/OAI/2.0/branding/ http://www.openarchives.org/OAI/2.0/branding.xsd")
	x.open("collectionIcon")
	x.element("url", repo.LogoURL)
	x.element("link", repo.MainPageURL)
	x.element("title", repo.SiteName)
	x.close("collectionIcon")
	x.close("branding")
	x.close("description")
}
