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
	"regexp"
	"time"

	"github.com/jinzhu/now"
)

const oneDay = 24 * time.Hour

var ErrInvalidDateRange = errors.New("invalid date range")

var (
	dayPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	secondPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

// Window represent a span of time, from and until including. A zero bound is
// open.
type Window struct {
	From  time.Time
	Until time.Time
}

// ParseWindow turns the from and until arguments of a list request into a
// window. A date-only from starts at the beginning of the day, a date-only
// until lasts to the end of the day.
func ParseWindow(from, until string) (Window, error) {
	var w Window
	var err error
	if from != "" {
		if w.From, err = parseBound(ArgFrom, from, false); err != nil {
			return w, err
		}
	}
	if until != "" {
		if w.Until, err = parseBound(ArgUntil, until, true); err != nil {
			return w, err
		}
	}
	if !w.From.IsZero() && !w.Until.IsZero() && w.From.After(w.Until) {
		return w, Errorf(BadArgument, "'from' must not be later than 'until'")
	}
	return w, nil
}

func parseBound(name, value string, endOfDay bool) (time.Time, error) {
	switch {
	case dayPattern.MatchString(value):
		t, err := time.ParseInLocation(dayLayout, value, time.UTC)
		if err != nil {
			break
		}
		if endOfDay {
			return now.New(t).EndOfDay().Truncate(time.Second), nil
		}
		return now.New(t).BeginningOfDay(), nil
	case secondPattern.MatchString(value):
		t, err := time.ParseInLocation(secondLayout, value, time.UTC)
		if err != nil {
			break
		}
		return t, nil
	}
	return time.Time{}, Errorf(BadArgument, "Illegal timestamp format in '%s'", name)
}

// Contains reports whether t falls into the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}

type TimeShiftFunc func(time.Time) time.Time

func (w Window) makeWindows(left, right TimeShiftFunc) ([]Window, error) {
	var ws []Window
	if w.From.IsZero() || w.Until.IsZero() || w.From.After(w.Until) {
		return ws, ErrInvalidDateRange
	}
	var start, end time.Time
	from := w.From
	for {
		switch {
		case len(ws) == 0:
			start = now.New(w.From).BeginningOfDay()
		default:
			start = left(from)
		}
		end = right(from)
		if end.After(w.Until) {
			// the last window ends with the day of until
			return append(ws, Window{From: start, Until: now.New(w.Until).EndOfDay()}), nil
		}
		ws = append(ws, Window{From: start, Until: end})
		from = end.Add(oneDay)
	}
}

// Monthly splits a closed window into calendar months, used for incremental
// harvesting.
func (w Window) Monthly() ([]Window, error) {
	shiftLeft := func(t time.Time) time.Time {
		return now.New(t).BeginningOfMonth()
	}
	shiftRight := func(t time.Time) time.Time {
		return now.New(t).EndOfMonth()
	}
	return w.makeWindows(shiftLeft, shiftRight)
}
