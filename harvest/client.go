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

package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/miku/indexoai"
	"github.com/sethgrid/pester"
	"go.uber.org/zap"
)

// UserAgent to use for requests.
var UserAgent = fmt.Sprintf("indexoai/%s", indexoai.Version)

// HttpRequestDoer lets us use pester, DefaultClient or other HTTP client
// implementations interchangably.
type HttpRequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a simple client, that can turn a OAI request into a OAI response.
type Client struct {
	Logger *zap.Logger
	// doer is a delegate for HTTP requests.
	doer HttpRequestDoer
}

// NewClientDoer creates a new OAI client with a user supplied http client,
// e.g. pester.Client, http.DefaultClient.
func NewClientDoer(doer HttpRequestDoer) Client {
	return Client{doer: doer, Logger: zap.NewNop()}
}

// NewClient create a default client with resilient HTTP client.
func NewClient() Client {
	c := pester.New()
	c.Timeout = 5 * time.Minute
	c.MaxRetries = 8
	c.Backoff = pester.ExponentialBackoff
	return NewClientDoer(c)
}

// Do takes an OAI request and turns it into at most one single OAI response.
// A protocol error is returned as *indexoai.OAIError along with the response.
func (c Client) Do(ctx context.Context, req Request) (Response, error) {
	var response Response

	link, err := req.URL()
	if err != nil {
		return response, err
	}
	if c.Logger != nil {
		c.Logger.Debug("fetch", zap.String("url", link))
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return response, err
	}
	hreq.Header.Set("User-Agent", UserAgent)
	resp, err := c.doer.Do(hreq)
	if err != nil {
		return response, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("%s: %s", link, resp.Status)
	}

	if err := xml.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, err
	}
	if response.Error.Code != "" {
		e := response.Error
		return response, indexoai.NewError(indexoai.Code(e.Code), e.Message)
	}
	return response, nil
}

// WriterClient can execute requests, but writes results to a given writer.
type WriterClient struct {
	// RootTag is used as synthetic root element.
	RootTag string
	// MaxRequests, zero means no limit. Default of 16384 will prevent endless
	// loop due to broken resumptionToken implementations.
	MaxRequests int
	// client is a actual client used for executing the requests.
	client Client
	// w is where the XML gets written.
	w io.Writer
}

// NewWriterClient writes harvested XML to w.
func NewWriterClient(w io.Writer) WriterClient {
	return NewWriterClientWith(NewClient(), w)
}

// NewWriterClientWith uses the given client for HTTP requests.
func NewWriterClientWith(client Client, w io.Writer) WriterClient {
	return WriterClient{client: client, w: w, MaxRequests: 16384}
}

// writeResponse writes the items of a list response, or the complete
// response otherwise.
func (c WriterClient) writeResponse(resp Response) error {
	var v interface{}
	switch resp.Request.Verb {
	case indexoai.ListRecords:
		v = resp.ListRecords.Records
	case indexoai.ListIdentifiers:
		v = resp.ListIdentifiers.Headers
	case indexoai.ListSets:
		v = resp.ListSets.Sets
	default:
		v = resp
	}
	b, err := xml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.w.Write(b)
	return err
}

// startDocument will write the root start tag, if one is defined.
func (c WriterClient) startDocument() error {
	if c.RootTag == "" {
		return nil
	}
	_, err := io.WriteString(c.w, "<"+c.RootTag+">")
	return err
}

// endDocument will close the root tag.
func (c WriterClient) endDocument() error {
	if c.RootTag == "" {
		return nil
	}
	_, err := io.WriteString(c.w, "</"+c.RootTag+">")
	return err
}

// Do will execute a request and write all XML to the writer. It follows
// resumption tokens and returns the number of requests made.
func (c WriterClient) Do(ctx context.Context, req Request) (n int, err error) {
	if err := c.startDocument(); err != nil {
		return n, err
	}
	defer func() {
		if eerr := c.endDocument(); err == nil {
			err = eerr
		}
	}()
	for {
		if c.MaxRequests > 0 && n == c.MaxRequests {
			return n, ErrTooManyRequests
		}
		resp, err := c.client.Do(ctx, req)
		n++
		if err != nil {
			return n, err
		}
		if err := c.writeResponse(resp); err != nil {
			return n, err
		}
		token := resp.ResumptionToken()
		if token == "" {
			return n, nil
		}
		req.ResumptionToken = token
	}
}

// DoMonthly splits a list request into monthly windows and harvests them one
// after another. Empty months are skipped.
func (c WriterClient) DoMonthly(ctx context.Context, req Request) (n int, err error) {
	windows, err := indexoai.Window{From: req.From, Until: req.Until}.Monthly()
	if err != nil {
		return 0, err
	}
	client := c
	client.RootTag = ""
	if err := c.startDocument(); err != nil {
		return n, err
	}
	defer func() {
		if eerr := c.endDocument(); err == nil {
			err = eerr
		}
	}()
	for _, w := range windows {
		r := req
		r.From, r.Until = w.From, w.Until
		k, err := client.Do(ctx, r)
		n += k
		if err != nil && !indexoai.IsCode(err, indexoai.NoRecordsMatch) {
			return n, err
		}
	}
	return n, nil
}
