package indexoai

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestEndpoint(t *testing.T, c Catalog) *Endpoint {
	t.Helper()
	repo, err := NewRepository(Config{
		BaseURL:    "http://example.org/oai",
		AdminEmail: "admin@example.org",
	})
	if err != nil {
		t.Fatal(err)
	}
	e := NewEndpoint(repo, c, nil)
	e.Now = func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC) }
	return e
}

func TestRespond(t *testing.T) {
	var tests = []struct {
		query   string
		code    Code
		want    []string
		notWant []string
	}{
		{
			query: "",
			code:  BadVerb,
			want: []string{
				`<responseDate>2024-02-03T04:05:06Z</responseDate>`,
				`<request>http://example.org/oai</request>`,
				`<error code="badVerb">Unrecognized or no verb provided.</error>`,
			},
		},
		{
			query: "verb=Identify",
			want: []string{
				`<request verb="Identify">http://example.org/oai</request>`,
				`<repositoryName>example.org</repositoryName>`,
				`<protocolVersion>2.0</protocolVersion>`,
				`<adminEmail>admin@example.org</adminEmail>`,
				`<earliestDatestamp>2020-01-01T00:00:00Z</earliestDatestamp>`,
				`<deletedRecord>no</deletedRecord>`,
				`<granularity>YYYY-MM-DDThh:mm:ssZ</granularity>`,
				`<repositoryIdentifier>example.org</repositoryIdentifier>`,
				`<sampleIdentifier>oai:example.org:pfpIndex/La_Fontaine_-_The_Original_Fables_Of,_1913.djvu</sampleIdentifier>`,
			},
			notWant: []string{"<error", "<branding"},
		},
		{
			query: "verb=ListSets",
			code:  NoSetHierarchy,
			want:  []string{`<error code="noSetHierarchy">This repository does not support sets.</error>`},
		},
		{
			query: "verb=ListRecords&metadataPrefix=oai_dc&set=x",
			code:  NoSetHierarchy,
		},
		{
			query: "verb=ListRecords&metadataPrefix=marc21",
			code:  CannotDisseminateFormat,
			want:  []string{`<request verb="ListRecords" metadataPrefix="marc21">http://example.org/oai</request>`},
		},
		{
			query: "verb=ListRecords&metadataPrefix=oai_dc&from=yesterday",
			code:  BadArgument,
		},
		{
			query: "verb=ListRecords&metadataPrefix=oai_dc&from=2030-01-01",
			code:  NoRecordsMatch,
		},
		{
			query: "verb=ListRecords",
			code:  BadArgument,
			want:  []string{`<request>http://example.org/oai</request>`},
		},
		{
			query: "verb=ListRecords&resumptionToken=garbage",
			code:  BadResumptionToken,
		},
		{
			query: "verb=GetRecord&metadataPrefix=oai_dc&identifier=oai:example.org:pfpIndex/Missing.djvu",
			code:  IDDoesNotExist,
		},
		{
			query: "verb=GetRecord&metadataPrefix=oai_dc&identifier=oai:other.org:pfpIndex/Index_1.djvu",
			code:  IDDoesNotExist,
		},
		{
			query: "verb=GetRecord&metadataPrefix=marc21&identifier=oai:example.org:pfpIndex/Missing.djvu",
			code:  CannotDisseminateFormat,
		},
		{
			query: "verb=GetRecord&metadataPrefix=oai_dc&identifier=oai:example.org:pfpIndex/Index_3.djvu",
			want: []string{
				`<GetRecord>`,
				`<identifier>oai:example.org:pfpIndex/Index_3.djvu</identifier>`,
				`<datestamp>2020-01-01T02:00:00Z</datestamp>`,
				`<dc:title xml:lang="en">Title 3</dc:title>`,
			},
		},
		{
			query: "verb=ListMetadataFormats&identifier=oai:example.org:pfpIndex/Missing.djvu",
			code:  IDDoesNotExist,
		},
		{
			query: "verb=ListMetadataFormats&identifier=oai:example.org:pfpIndex/Index_1.djvu",
			want: []string{
				`<metadataPrefix>oai_dc</metadataPrefix>`,
				`<metadataPrefix>prp_qdc</metadataPrefix>`,
				`<metadataNamespace>http://mediawiki.org/xml/proofreadpage/qdc/</metadataNamespace>`,
				`<schema>http://example.org/schema/qdc.xsd</schema>`,
			},
		},
		{
			query: "verb=ListIdentifiers&metadataPrefix=oai_dc",
			want: []string{
				`<ListIdentifiers>`,
				`<identifier>oai:example.org:pfpIndex/Index_50.djvu</identifier>`,
				`<resumptionToken cursor="0">oai_dc:51:50</resumptionToken>`,
			},
			notWant: []string{"Index_51.djvu", "<metadata>"},
		},
		{
			query: "verb=ListRecords&resumptionToken=oai_dc:51:50",
			want: []string{
				`<request verb="ListRecords" resumptionToken="oai_dc:51:50">http://example.org/oai</request>`,
				`<identifier>oai:example.org:pfpIndex/Index_51.djvu</identifier>`,
				`<dc:title xml:lang="en">Title 51</dc:title>`,
			},
			notWant: []string{"<resumptionToken", "Index_50.djvu"},
		},
		{
			query: "verb=ListRecords&metadataPrefix=prp_qdc&until=2020-01-03",
			want: []string{
				`<prp_qdc:qdc`,
				`<resumptionToken cursor="0">prp_qdc::51:5020200103235959</resumptionToken>`,
			},
		},
	}

	e := newTestEndpoint(t, &sliceCatalog{records: makeRecords(60)})
	for _, test := range tests {
		values, err := url.ParseQuery(test.query)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		code, err := e.Respond(context.Background(), &buf, values, nil)
		if err != nil {
			t.Errorf("Respond(%q) got %v, want nil", test.query, err)
			continue
		}
		if code != test.code {
			t.Errorf("Respond(%q) got code %q, want %q", test.query, code, test.code)
		}
		out := buf.String()
		if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
			t.Errorf("Respond(%q) missing declaration", test.query)
		}
		for _, s := range test.want {
			if !strings.Contains(out, s) {
				t.Errorf("Respond(%q) missing %s in %s", test.query, s, out)
			}
		}
		for _, s := range test.notWant {
			if strings.Contains(out, s) {
				t.Errorf("Respond(%q) unexpected %s in %s", test.query, s, out)
			}
		}
	}
}

func TestRespondHarvestsEverything(t *testing.T) {
	e := newTestEndpoint(t, &sliceCatalog{records: makeRecords(120)})
	values := url.Values{"verb": {"ListIdentifiers"}, "metadataPrefix": {"oai_dc"}}
	var requests, identifiers int
	for {
		var buf bytes.Buffer
		if _, err := e.Respond(context.Background(), &buf, values, nil); err != nil {
			t.Fatal(err)
		}
		requests++
		out := buf.String()
		identifiers += strings.Count(out, "<identifier>")
		i := strings.Index(out, "<resumptionToken")
		if i == -1 {
			break
		}
		rest := out[i:]
		token := rest[strings.Index(rest, ">")+1 : strings.Index(rest, "</resumptionToken>")]
		values = url.Values{"verb": {"ListIdentifiers"}, "resumptionToken": {token}}
	}
	if requests != 3 {
		t.Errorf("got %d requests, want 3", requests)
	}
	if identifiers != 120 {
		t.Errorf("got %d identifiers, want 120", identifiers)
	}
}

func TestRespondIdentifyCompression(t *testing.T) {
	e := newTestEndpoint(t, &sliceCatalog{records: makeRecords(1)})
	e.Repository.LogoURL = "http://example.org/logo.png"
	var buf bytes.Buffer
	if _, err := e.Respond(context.Background(), &buf, url.Values{"verb": {"Identify"}}, []string{"gzip", "deflate"}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		"<compression>gzip</compression>",
		"<compression>deflate</compression>",
		"<url>http://example.org/logo.png</url>",
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("missing %s in %s", s, buf.String())
		}
	}
}

func TestRespondFaults(t *testing.T) {
	boom := errors.New("boom")
	bogus := makeRecords(1)
	bogus[0].Entries[0].Values = []Value{bogusValue{}}

	var tests = []struct {
		catalog Catalog
		query   string
		err     error
	}{
		{&sliceCatalog{}, "verb=Identify", ErrNoEarliestDatestamp},
		{&sliceCatalog{err: boom}, "verb=Identify", boom},
		{&sliceCatalog{err: boom}, "verb=ListRecords&metadataPrefix=oai_dc", boom},
		{&sliceCatalog{records: bogus}, "verb=ListRecords&metadataPrefix=oai_dc", ErrUnknownValueType},
		{&sliceCatalog{records: bogus}, "verb=ListIdentifiers&metadataPrefix=oai_dc", nil},
	}
	for _, test := range tests {
		e := newTestEndpoint(t, test.catalog)
		values, _ := url.ParseQuery(test.query)
		_, err := e.Respond(context.Background(), io.Discard, values, nil)
		if !errors.Is(err, test.err) {
			t.Errorf("Respond(%q) got %v, want %v", test.query, err, test.err)
		}
	}
}

func TestServeHTTP(t *testing.T) {
	var tests = []struct {
		method   string
		target   string
		body     string
		encoding string
		status   int
		want     string
	}{
		{"GET", "/oai?verb=Identify", "", "", http.StatusOK, "<Identify>"},
		{"GET", "/oai?verb=Identify", "", "gzip", http.StatusOK, "<Identify>"},
		{"GET", "/oai?verb=Identify", "", "deflate;q=0, gzip", http.StatusOK, "<Identify>"},
		{"GET", "/oai?verb=Nope", "", "", http.StatusOK, `code="badVerb"`},
		{"POST", "/oai", "verb=ListSets", "", http.StatusOK, `code="noSetHierarchy"`},
		{"PUT", "/oai?verb=Identify", "", "", http.StatusMethodNotAllowed, ""},
	}
	e := newTestEndpoint(t, &sliceCatalog{records: makeRecords(3)})
	for _, test := range tests {
		req := httptest.NewRequest(test.method, test.target, strings.NewReader(test.body))
		if test.body != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if test.encoding != "" {
			req.Header.Set("Accept-Encoding", test.encoding)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		resp := rec.Result()
		if resp.StatusCode != test.status {
			t.Errorf("%s %s got status %d, want %d", test.method, test.target, resp.StatusCode, test.status)
			continue
		}
		if resp.Header.Get("X-Request-Id") == "" {
			t.Errorf("%s %s missing request id", test.method, test.target)
		}
		if test.status != http.StatusOK {
			continue
		}
		if got := resp.Header.Get("Content-Type"); got != "application/xml; charset=utf-8" {
			t.Errorf("%s %s got content type %q", test.method, test.target, got)
		}
		body := io.Reader(resp.Body)
		if resp.Header.Get("Content-Encoding") == "gzip" {
			zr, err := gzip.NewReader(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			body = zr
		} else if strings.Contains(test.encoding, "gzip") {
			t.Errorf("%s %s expected gzip encoding", test.method, test.target)
		}
		b, err := io.ReadAll(body)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), test.want) {
			t.Errorf("%s %s missing %s in %s", test.method, test.target, test.want, string(b))
		}
	}
}

func TestServeHTTPFault(t *testing.T) {
	e := newTestEndpoint(t, &sliceCatalog{err: errors.New("database is locked")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/oai?verb=ListRecords&metadataPrefix=oai_dc", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "database is locked") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}
