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
	"encoding/json"
	"os"
	"time"

	"github.com/miku/indexoai/harvest"
	"github.com/spf13/cobra"
)

var flagTimeout time.Duration

var infoCmd = &cobra.Command{
	Use:   "info ENDPOINT",
	Short: "Show repository information as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := harvest.NewClient()
		client.Logger = logger
		info, err := harvest.RepositoryInfo(cmd.Context(), client, args[0], flagTimeout)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(info)
	},
}

func init() {
	infoCmd.Flags().DurationVar(&flagTimeout, "timeout", 5*time.Minute, "give up after this duration")
}
