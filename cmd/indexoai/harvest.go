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
	"bufio"
	"os"
	"time"

	"github.com/miku/indexoai"
	"github.com/miku/indexoai/harvest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagPrefix     string
	flagFrom       string
	flagUntil      string
	flagSet        string
	flagRoot       string
	flagIdentifier bool
	flagMonthly    bool
)

var harvestCmd = &cobra.Command{
	Use:   "harvest ENDPOINT",
	Short: "Harvest records from an OAI-PMH endpoint to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runHarvest,
}

func init() {
	harvestCmd.Flags().StringVar(&flagPrefix, "prefix", indexoai.PrefixOAIDC, "OAI metadataPrefix")
	harvestCmd.Flags().StringVar(&flagFrom, "from", "", "OAI from, YYYY-MM-DD")
	harvestCmd.Flags().StringVar(&flagUntil, "until", "", "OAI until, YYYY-MM-DD")
	harvestCmd.Flags().StringVar(&flagSet, "set", "", "OAI set")
	harvestCmd.Flags().StringVar(&flagRoot, "root", "", "name of artificial root element tag to use")
	harvestCmd.Flags().BoolVar(&flagIdentifier, "identifiers", false, "only list identifiers")
	harvestCmd.Flags().BoolVar(&flagMonthly, "monthly", false, "split the request into monthly windows, requires --from")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	req := harvest.Request{
		Endpoint: args[0],
		Verb:     indexoai.ListRecords,
		Prefix:   flagPrefix,
		Set:      flagSet,
	}
	if flagIdentifier {
		req.Verb = indexoai.ListIdentifiers
	}
	var err error
	if flagFrom != "" {
		if req.From, err = time.Parse("2006-01-02", flagFrom); err != nil {
			return err
		}
	}
	if flagUntil != "" {
		if req.Until, err = time.Parse("2006-01-02", flagUntil); err != nil {
			return err
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	client := harvest.NewClient()
	client.Logger = logger
	wc := harvest.NewWriterClientWith(client, w)
	wc.RootTag = flagRoot

	start := time.Now()
	var n int
	if flagMonthly {
		if req.Until.IsZero() {
			req.Until = time.Now()
		}
		n, err = wc.DoMonthly(cmd.Context(), req)
	} else {
		n, err = wc.Do(cmd.Context(), req)
	}
	logger.Info("harvest",
		zap.String("endpoint", req.Endpoint),
		zap.Int("requests", n),
		zap.Duration("elapsed", time.Since(start)))
	return err
}
