package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/miku/indexoai"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// testRecords returns n records with IDs 1..n, one day apart.
func testRecords(n int) []indexoai.Record {
	var records []indexoai.Record
	for i := 1; i <= n; i++ {
		records = append(records, indexoai.Record{
			ID:        int64(i),
			Key:       fmt.Sprintf("Index_%d.djvu", i),
			Datestamp: epoch.AddDate(0, 0, i-1),
			Language:  "en",
			MimeType:  "image/vnd.djvu",
			Entries: []indexoai.Entry{
				{Key: "title", SimpleDC: "dc:title", QualifiedDC: "dc:title",
					Values: []indexoai.Value{indexoai.String(fmt.Sprintf("Title %d", i))}},
				{Key: "author", SimpleDC: "dc:creator", QualifiedDC: "dc:creator",
					Values: []indexoai.Value{indexoai.PageRef{Title: "Author:Someone", Text: "Someone"}}},
				{Key: "year", SimpleDC: "dc:date", QualifiedDC: "dcterms:issued",
					Values: []indexoai.Value{indexoai.Number(1900 + i)}},
				{Key: "source", QualifiedDC: "dc:source",
					Values: []indexoai.Value{indexoai.URI("http://example.org/" + fmt.Sprint(i))}},
				{Key: "language", SimpleDC: "dc:language", QualifiedDC: "dc:language",
					Values: []indexoai.Value{indexoai.LangCode("en"), indexoai.LangCode("de")}},
			},
		})
	}
	return records
}

var ctx = context.Background()
