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
	"errors"
	"fmt"
)

// Code is an OAI-PMH error code (3.6 Error and Exception Conditions).
type Code string

const (
	BadVerb                 Code = "badVerb"
	BadArgument             Code = "badArgument"
	BadResumptionToken      Code = "badResumptionToken"
	CannotDisseminateFormat Code = "cannotDisseminateFormat"
	IDDoesNotExist          Code = "idDoesNotExist"
	NoRecordsMatch          Code = "noRecordsMatch"
	NoSetHierarchy          Code = "noSetHierarchy"
)

// Codes lists every error code this repository can answer with.
var Codes = []Code{
	BadVerb,
	BadArgument,
	BadResumptionToken,
	CannotDisseminateFormat,
	IDDoesNotExist,
	NoRecordsMatch,
	NoSetHierarchy,
}

// Faults in the surrounding system. These never turn into an error element,
// they abort the request.
var (
	ErrUnknownGranularity  = errors.New("unknown granularity")
	ErrNoEarliestDatestamp = errors.New("catalog has no earliest datestamp")
	ErrUnknownValueType    = errors.New("unknown value type")
	ErrBogusDatestamp      = errors.New("bogus datestamp")
)

// OAIError wraps OAI error codes and messages.
type OAIError struct {
	Code    Code
	Message string
}

// Error to satisfy interface.
func (e *OAIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError returns a protocol error.
func NewError(code Code, message string) *OAIError {
	return &OAIError{Code: code, Message: message}
}

// Errorf formats a protocol error message.
func Errorf(code Code, format string, a ...interface{}) *OAIError {
	return &OAIError{Code: code, Message: fmt.Sprintf(format, a...)}
}

// IsCode reports whether err is a protocol error with the given code.
func IsCode(err error, code Code) bool {
	var e *OAIError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
