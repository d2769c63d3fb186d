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

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miku/indexoai"
	"github.com/miku/indexoai/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagJSONL string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over OAI-PMH",
	Long: `Serves the SQLite catalog at the path of the base URL. With --jsonl
the records are read into memory instead and no database is touched.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	serveCmd.Flags().String("base-url", "", "public URL of the endpoint, e.g. https://example.org/oai")
	serveCmd.Flags().StringVar(&flagJSONL, "jsonl", "", "serve records from a JSON lines file")
}

// openCatalog returns the configured catalog and a function to release it.
func openCatalog() (indexoai.Catalog, func() error, error) {
	if flagJSONL != "" {
		records, err := catalog.ReadJSONLFile(flagJSONL)
		if err != nil {
			return nil, nil, err
		}
		m, err := catalog.NewMemory(records...)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loaded records", zap.String("file", flagJSONL), zap.Int("count", m.Len()))
		return m, func() error { return nil }, nil
	}
	path, err := databasePath()
	if err != nil {
		return nil, nil, err
	}
	db, err := catalog.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("opened catalog", zap.String("database", path))
	return db, db.Close, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}
	cat, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCatalog(); err != nil {
			logger.Warn("close catalog", zap.Error(err))
		}
	}()

	u, err := url.Parse(repo.BaseURL)
	if err != nil {
		return err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.Handle(path, indexoai.NewEndpoint(repo, cat, logger))
	mux.Handle(indexoai.SchemaPath, indexoai.SchemaHandler())

	srv := &http.Server{
		Addr:              v.GetString(cfgKeyListen),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("path", path),
			zap.String("repository", repo.Identifier.Repository))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
