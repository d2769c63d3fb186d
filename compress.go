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
	"compress/gzip"
	"compress/zlib"
	"io"
	"strings"
)

// supportedEncodings in order of preference.
var supportedEncodings = []string{"gzip", "deflate"}

// acceptedEncodings returns the supported content codings listed in an
// Accept-Encoding header. Codings refused with q=0 are left out.
func acceptedEncodings(header string) []string {
	offered := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		name := strings.ToLower(strings.TrimSpace(fields[0]))
		refused := false
		for _, param := range fields[1:] {
			p := strings.ReplaceAll(strings.TrimSpace(param), " ", "")
			if p == "q=0" || p == "q=0.0" || p == "q=0.00" || p == "q=0.000" {
				refused = true
			}
		}
		if name != "" && !refused {
			offered[name] = true
		}
	}
	var result []string
	for _, enc := range supportedEncodings {
		if offered[enc] {
			result = append(result, enc)
		}
	}
	return result
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// compress wraps w with the preferred accepted coding. The returned writer
// must be closed to flush compressed output.
func compress(w io.Writer, accepted []string) (io.WriteCloser, string) {
	if len(accepted) == 0 {
		return nopCloser{w}, ""
	}
	switch accepted[0] {
	case "gzip":
		return gzip.NewWriter(w), "gzip"
	case "deflate":
		// deflate as a content coding is the zlib format
		return zlib.NewWriter(w), "deflate"
	}
	return nopCloser{w}, ""
}
