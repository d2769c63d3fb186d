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
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	nsOAI             = "http://www.openarchives.org/OAI/2.0/"
	schemaLocationOAI = "http://www.openarchives.org/OAI/2.0/ http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"
)

// Endpoint answers OAI-PMH requests for a catalog.
type Endpoint struct {
	Repository *Repository
	Catalog    Catalog
	Logger     *zap.Logger
	// Now is used for responseDate, defaults to time.Now.
	Now func() time.Time

	codec    TokenCodec
	pager    Pager
	renderer Renderer
}

// NewEndpoint wires an endpoint. A nil logger discards all output.
func NewEndpoint(repo *Repository, catalog Catalog, logger *zap.Logger) *Endpoint {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Endpoint{
		Repository: repo,
		Catalog:    catalog,
		Logger:     logger,
		Now:        time.Now,
		codec:      TokenCodec{Formats: repo.Formats},
		pager:      Pager{Catalog: catalog, ChunkSize: repo.ChunkSize},
		renderer: Renderer{
			Identifier: repo.Identifier,
			Formats:    repo.Formats,
			MimeType:   repo.MimeType,
		},
	}
}

// Respond writes the complete response document for the given request
// arguments. Protocol errors end up in the document and are returned as the
// code. A non-nil error is a fault of the catalog or its data, w may then
// hold a partial document and must be discarded.
func (e *Endpoint) Respond(ctx context.Context, w io.Writer, values url.Values, compression []string) (Code, error) {
	req, perr := ParseRequest(values)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return "", err
	}
	x := newXMLWriter(w)
	x.open("OAI-PMH",
		"xmlns", nsOAI,
		"xmlns:xsi", nsXSI,
		"xsi:schemaLocation", schemaLocationOAI)
	x.element("responseDate", e.Now().UTC().Format(secondLayout))
	var attrs []string
	for _, kv := range req.Attrs() {
		attrs = append(attrs, kv[0], kv[1])
	}
	x.element("request", e.Repository.BaseURL, attrs...)

	if perr == nil {
		perr = e.dispatch(ctx, x, req, compression)
	}
	var code Code
	if perr != nil {
		var oe *OAIError
		if !errors.As(perr, &oe) {
			return "", perr
		}
		code = oe.Code
		x.element("error", oe.Message, "code", string(oe.Code))
	}
	x.close("OAI-PMH")
	if err := x.flush(); err != nil {
		return code, err
	}
	_, err := io.WriteString(w, "\n")
	return code, err
}

func (e *Endpoint) dispatch(ctx context.Context, x *xmlWriter, req ParsedRequest, compression []string) error {
	switch req.Verb {
	case Identify:
		return e.identify(ctx, x, compression)
	case ListMetadataFormats:
		return e.listMetadataFormats(ctx, x, req)
	case GetRecord:
		return e.getRecord(ctx, x, req)
	case ListIdentifiers, ListRecords:
		return e.listRecords(ctx, x, req)
	case ListSets:
		return NewError(NoSetHierarchy, "This repository does not support sets.")
	}
	return NewError(BadVerb, "Unrecognized or no verb provided.")
}

// lookup resolves an OAI identifier to a record.
func (e *Endpoint) lookup(ctx context.Context, identifier string) (*Record, error) {
	notFound := NewError(IDDoesNotExist, "Requested identifier is invalid or does not exist.")
	key, ok := e.Repository.Identifier.Key(identifier)
	if !ok {
		return nil, notFound
	}
	rec, err := e.Catalog.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFound
	}
	return rec, nil
}

func (e *Endpoint) listMetadataFormats(ctx context.Context, x *xmlWriter, req ParsedRequest) error {
	// the identifier only has to exist, every record comes in every format
	if req.Has(ArgIdentifier) {
		if _, err := e.lookup(ctx, req.Get(ArgIdentifier)); err != nil {
			return err
		}
	}
	x.open("ListMetadataFormats")
	for _, f := range e.Repository.Formats.All() {
		x.open("metadataFormat")
		x.element("metadataPrefix", f.Prefix)
		x.element("schema", f.Schema)
		x.element("metadataNamespace", f.Namespace)
		x.close("metadataFormat")
	}
	x.close("ListMetadataFormats")
	return x.err
}

func (e *Endpoint) getRecord(ctx context.Context, x *xmlWriter, req ParsedRequest) error {
	format, err := e.Repository.Formats.Resolve(req.Get(ArgMetadataPrefix))
	if err != nil {
		return err
	}
	rec, err := e.lookup(ctx, req.Get(ArgIdentifier))
	if err != nil {
		return err
	}
	x.open(GetRecord)
	if err := e.renderer.record(x, *rec, format.Prefix); err != nil {
		return err
	}
	x.close(GetRecord)
	return x.err
}

func (e *Endpoint) listRecords(ctx context.Context, x *xmlWriter, req ParsedRequest) error {
	var (
		token  *ResumptionToken
		prefix string
		window Window
	)
	if req.Has(ArgResumptionToken) {
		t, err := e.codec.Decode(req.Get(ArgResumptionToken))
		if err != nil {
			return err
		}
		token, prefix = &t, t.Prefix
	} else {
		format, err := e.Repository.Formats.Resolve(req.Get(ArgMetadataPrefix))
		if err != nil {
			return err
		}
		prefix = format.Prefix
		if window, err = ParseWindow(req.Get(ArgFrom), req.Get(ArgUntil)); err != nil {
			return err
		}
		if req.Has(ArgSet) {
			return NewError(NoSetHierarchy, "This repository does not support sets.")
		}
	}

	page, err := e.pager.Page(ctx, prefix, window, token)
	if err != nil {
		return err
	}

	withData := req.Verb == ListRecords
	x.open(req.Verb)
	for _, rec := range page.Records {
		if withData {
			err = e.renderer.record(x, rec, prefix)
		} else {
			err = e.renderer.header(x, rec)
		}
		if err != nil {
			return err
		}
	}
	if page.Next != nil {
		x.open("resumptionToken", "cursor", strconv.Itoa(page.Cursor))
		x.text(e.codec.Encode(*page.Next))
		x.close("resumptionToken")
	}
	x.close(req.Verb)
	return x.err
}

// ServeHTTP answers GET and POST requests. Protocol errors are regular
// responses, faults are logged and answered with a 500.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	log := e.Logger.With(zap.String("request_id", requestID))

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	accepted := acceptedEncodings(r.Header.Get("Accept-Encoding"))
	var buf bytes.Buffer
	code, err := e.Respond(r.Context(), &buf, r.Form, accepted)
	if err != nil {
		log.Error("request failed",
			zap.String("verb", r.Form.Get(ArgVerb)),
			zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	body, encoding := compress(w, accepted)
	if encoding != "" {
		w.Header().Set("Content-Encoding", encoding)
		w.Header().Add("Vary", "Accept-Encoding")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(body, &buf); err != nil {
		log.Warn("write response", zap.Error(err))
	}
	if err := body.Close(); err != nil {
		log.Warn("close response", zap.Error(err))
	}
	log.Info("request",
		zap.String("verb", r.Form.Get(ArgVerb)),
		zap.String("code", string(code)),
		zap.Int("status", http.StatusOK),
		zap.Duration("elapsed", time.Since(start)))
}
