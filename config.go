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
	"net/url"
)

// DefaultChunkSize is the maximum number of records per list response.
const DefaultChunkSize = 50

// Version of the software.
const Version = "0.2.0"

var ErrNoBaseURL = errors.New("config: base_url is required")

// Config is the repository configuration as loaded from file or environment.
type Config struct {
	BaseURL        string  `mapstructure:"base_url"`
	RepositoryName string  `mapstructure:"repository_name"`
	AdminEmail     string  `mapstructure:"admin_email"`
	MimeType       string  `mapstructure:"mime_type"`
	QDCSchemaURL   string  `mapstructure:"qdc_schema_url"`
	ChunkSize      int     `mapstructure:"chunk_size"`
	LogoURL        string  `mapstructure:"logo_url"`
	MainPageURL    string  `mapstructure:"main_page_url"`
	SiteName       string  `mapstructure:"site_name"`
	Eprints        Eprints `mapstructure:"eprints"`
}

// Eprints configures the eprints description of Identify.
type Eprints struct {
	ContentURL  string `mapstructure:"content_url"`
	ContentText string `mapstructure:"content_text"`
	PolicyURL   string `mapstructure:"policy_url"`
}

// Repository is the validated, immutable view of a Config. It is built once
// at startup and shared by all requests.
type Repository struct {
	Config
	Identifier Identifier
	Formats    Formats
}

// NewRepository validates the configuration and derives the repository
// identifier from the host of the base URL.
func NewRepository(c Config) (*Repository, error) {
	if c.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("config: base_url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("config: base_url %q has no host", c.BaseURL)
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.MimeType == "" {
		c.MimeType = "text/html"
	}
	if c.RepositoryName == "" {
		c.RepositoryName = u.Hostname()
	}
	if c.QDCSchemaURL == "" {
		// the schema mounted next to the endpoint
		c.QDCSchemaURL = (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: SchemaPath}).String()
	}
	return &Repository{
		Config:     c,
		Identifier: Identifier{Repository: u.Hostname()},
		Formats:    NewFormats(c.QDCSchemaURL),
	}, nil
}
