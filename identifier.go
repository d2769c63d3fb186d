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

// BasePath is the namespace of all record identifiers of this repository.
const BasePath = "pfpIndex"

// Identifier builds oai:<repository>:pfpIndex/<key> identifiers (see the OAI
// identifier guidelines).
type Identifier struct {
	Repository string
}

func (i Identifier) prefix() string {
	return "oai:" + i.Repository + ":" + BasePath + "/"
}

// Format returns the identifier for a record key.
func (i Identifier) Format(key string) string {
	return i.prefix() + escapeKey(key)
}

// Key extracts the record key, ok is false if the identifier does not belong
// to this repository.
func (i Identifier) Key(identifier string) (key string, ok bool) {
	if !strings.HasPrefix(identifier, i.prefix()) {
		return "", false
	}
	key, err := url.QueryUnescape(strings.TrimPrefix(identifier, i.prefix()))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// Sample returns an example identifier for the Identify description.
func (i Identifier) Sample() string {
	return i.Format("La_Fontaine_-_The_Original_Fables_Of,_1913.djvu")
}

// keyUnescaper restores characters that are safe in identifiers.
var keyUnescaper = strings.NewReplacer(
	"%3B", ";", "%40", "@", "%24", "$", "%21", "!", "%2A", "*",
	"%28", "(", "%29", ")", "%2C", ",", "%2F", "/", "%7E", "~", "%3A", ":",
)

// escapeKey percent-encodes a key like a query value, but leaves path
// punctuation such as slashes and commas readable.
func escapeKey(key string) string {
	return keyUnescaper.Replace(url.QueryEscape(key))
}
