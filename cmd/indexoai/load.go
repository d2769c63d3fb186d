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
	"github.com/miku/indexoai/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE...",
	Short: "Load JSON lines records, optionally gzipped, into the SQLite catalog",
	Long: `Each line holds one record. Records are matched by key, a record
that is loaded again replaces the stored one and keeps its ID.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	path, err := databasePath()
	if err != nil {
		return err
	}
	db, err := catalog.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, name := range args {
		records, err := catalog.ReadJSONLFile(name)
		if err != nil {
			return err
		}
		if err := db.Load(cmd.Context(), records); err != nil {
			return err
		}
		logger.Info("loaded",
			zap.String("file", name),
			zap.String("database", path),
			zap.Int("count", len(records)))
	}
	return nil
}
