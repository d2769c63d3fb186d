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
	"time"
)

// Granularity is the precision of datestamps (3.3.2 UTCdatetime).
type Granularity string

const (
	GranularitySecond Granularity = "YYYY-MM-DDThh:mm:ssZ"
	GranularityDay    Granularity = "YYYY-MM-DD"
)

const (
	secondLayout = "2006-01-02T15:04:05Z"
	dayLayout    = "2006-01-02"
)

// Datestamp formats t in the given granularity. A zero time is not a valid
// datestamp.
func Datestamp(t time.Time, g Granularity) (string, error) {
	if t.IsZero() {
		return "", ErrBogusDatestamp
	}
	switch g {
	case GranularitySecond:
		return t.UTC().Format(secondLayout), nil
	case GranularityDay:
		return t.UTC().Format(dayLayout), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
	}
}
