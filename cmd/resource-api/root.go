/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"github.com/spf13/cobra"
	"github.com/tomoncle/resource-api/config"
	"github.com/tomoncle/resource-api/database"
	"github.com/tomoncle/resource-api/utils"

	_ "github.com/tomoncle/resource-api/model"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "resource-api",
		Short:         "CRUD HTTP service for resources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		configureLogging(cfg)
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newMigrateCmd(load))
	return root
}

// configureLogging applies the log settings to every named logger, then
// installs the database logger with its own level when one is configured.
func configureLogging(cfg *config.Config) {
	utils.ConfigureLogLevel(cfg.Log.Level)
	utils.ConfigureConsoleLogFormat(cfg.Log.Format)

	dbLogger := database.NewDefaultLogger()
	if cfg.Log.Database != "" {
		dbLogger.SetLevel(database.ParseLogLevel(cfg.Log.Database))
	}
	database.InitLogger(dbLogger)
}
