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

//
// Package indexoai implements an OAI-PMH 2.0 repository for the index pages
// of a transcription wiki. The Open Archives Initiative Protocol for Metadata
// Harvesting (OAI-PMH) is a low-barrier mechanism for repository
// interoperability.
//
// Records are served as simple Dublin Core (oai_dc) and as qualified Dublin
// Core (prp_qdc). Sets and deleted records are not supported. Large lists are
// split into chunks of 50 records, the resumption token carries all state, so
// nothing is kept between requests.
//
// It comes with a command line tool, called `indexoai`.
//
// Basic usage:
//
//     $ indexoai load --database catalog.db records.jsonl
//     $ indexoai serve --database catalog.db --base-url http://localhost:8080/oai
//     $ indexoai harvest http://localhost:8080/oai > metadata.xml
//
package indexoai
