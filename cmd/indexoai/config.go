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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/miku/indexoai"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "indexoai"
	configType = "yaml"
	envPrefix  = "INDEXOAI"

	// DefaultDir holds config and catalog, relative to the home directory.
	DefaultDir = ".indexoai"

	cfgKeyListen   = "listen"
	cfgKeyDatabase = "database"
	cfgKeyBaseURL  = "base_url"
)

// v holds the merged configuration of file, environment and flags.
var v = viper.New()

// initConfig reads the config file, if any. Environment variables like
// INDEXOAI_BASE_URL or INDEXOAI_EPRINTS_POLICY_URL override the file, flags
// override both.
func initConfig(cmd *cobra.Command) error {
	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, DefaultDir)

	v.SetDefault(cfgKeyListen, ":8080")
	v.SetDefault(cfgKeyDatabase, filepath.Join(dir, "catalog.db"))
	v.SetDefault(cfgKeyBaseURL, "")
	v.SetDefault("repository_name", "")
	v.SetDefault("admin_email", "")
	v.SetDefault("mime_type", "text/html")
	v.SetDefault("qdc_schema_url", "")
	v.SetDefault("chunk_size", indexoai.DefaultChunkSize)
	v.SetDefault("logo_url", "")
	v.SetDefault("main_page_url", "")
	v.SetDefault("site_name", "")
	v.SetDefault("eprints.content_url", "")
	v.SetDefault("eprints.content_text", "")
	v.SetDefault("eprints.policy_url", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag(cfgKeyDatabase, cmd.Flags().Lookup("database")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("listen"); f != nil {
		if err := v.BindPFlag(cfgKeyListen, f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("base-url"); f != nil {
		if err := v.BindPFlag(cfgKeyBaseURL, f); err != nil {
			return err
		}
	}

	if flagConfig != "" {
		v.SetConfigFile(flagConfig)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || flagConfig != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// repository builds the repository settings from the merged configuration.
func repository() (*indexoai.Repository, error) {
	var c indexoai.Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return indexoai.NewRepository(c)
}

// databasePath expands a leading tilde.
func databasePath() (string, error) {
	return homedir.Expand(v.GetString(cfgKeyDatabase))
}
