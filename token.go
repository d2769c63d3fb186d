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
	"regexp"
	"strconv"
	"time"
)

// tokenTimeLayout is the 14 digit timestamp carried by tokens with an upper
// bound.
const tokenTimeLayout = "20060102150405"

var (
	// prefix:resumeId:cursor, optionally followed by :until.
	tokenPattern = regexp.MustCompile(`^([a-z_]+):(\d+):(\d+)(?::(\d{14}))?$`)
	// prefix::resumeId:cursor immediately followed by until, as issued when
	// an upper bound is active.
	boundedTokenPattern = regexp.MustCompile(`^([a-z_]+)::(\d+):(\d+)(\d{14})$`)
)

// ResumptionToken carries everything needed to continue a list request (3.5
// Flow Control). There is no server side state.
type ResumptionToken struct {
	Prefix   string
	ResumeID int64
	Cursor   int
	Until    *time.Time
}

// TokenCodec encodes and decodes resumption tokens. The wire format is fixed,
// harvesters store these strings.
type TokenCodec struct {
	Formats Formats
}

// Encode returns the wire form of a token.
func (c TokenCodec) Encode(t ResumptionToken) string {
	if t.Until == nil {
		return fmt.Sprintf("%s:%d:%d", t.Prefix, t.ResumeID, t.Cursor)
	}
	return fmt.Sprintf("%s::%d:%d%s", t.Prefix, t.ResumeID, t.Cursor,
		t.Until.UTC().Format(tokenTimeLayout))
}

// Decode parses a token. Anything malformed, or naming a format we do not
// know, is a badResumptionToken.
func (c TokenCodec) Decode(s string) (ResumptionToken, error) {
	var token ResumptionToken
	m := tokenPattern.FindStringSubmatch(s)
	if m == nil {
		m = boundedTokenPattern.FindStringSubmatch(s)
	}
	if m == nil {
		return token, badToken()
	}
	token.Prefix = m[1]
	if !c.Formats.Known(token.Prefix) {
		return token, badToken()
	}
	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return token, badToken()
	}
	cursor, err := strconv.Atoi(m[3])
	if err != nil {
		return token, badToken()
	}
	token.ResumeID, token.Cursor = id, cursor
	if m[4] != "" {
		until, err := time.ParseInLocation(tokenTimeLayout, m[4], time.UTC)
		if err != nil {
			return token, badToken()
		}
		token.Until = &until
	}
	return token, nil
}

func badToken() *OAIError {
	return NewError(BadResumptionToken, "Invalid resumption token.")
}
