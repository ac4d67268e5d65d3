// Copyright 2025 Midgard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/midgard-labs/midgard/keys"
	"github.com/midgard-labs/midgard/ledger"
	"github.com/midgard-labs/midgard/node"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runConfig is the node configuration loaded from the config file and
// environment
type runConfig struct {
	Listen         string            `mapstructure:"listen"`
	Discrimination string            `mapstructure:"discrimination"`
	Fees           ledger.LinearFees `mapstructure:"fees"`
	Funds          []ledger.Fund     `mapstructure:"funds"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ledger node",
	RunE:  runNode,
}

func init() {
	runCmd.Flags().String("listen", ":8300", "REST API listen address")
	if err := viper.BindPFlag(
		"listen",
		runCmd.Flags().Lookup("listen"),
	); err != nil {
		panic(err)
	}
	viper.SetDefault("discrimination", "test")
	rootCmd.AddCommand(runCmd)
}

func runNode(cmd *cobra.Command, args []string) error {
	var cfg runConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	discrimination, err := keys.ParseDiscrimination(cfg.Discrimination)
	if err != nil {
		return err
	}
	logger := newLogger()

	genesis := ledger.GenesisConfig{
		Discrimination: discrimination,
		Fees:           cfg.Fees,
		Funds:          cfg.Funds,
	}
	l, err := ledger.NewLedger(genesis, ledger.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "building ledger from genesis")
	}
	logger.Info(
		"initialized ledger",
		"block0", l.Block0Hash().String(),
		"discrimination", discrimination.String(),
		"funds", len(cfg.Funds),
	)

	n := node.New(
		node.Config{
			ListenAddress: cfg.Listen,
			Logger:        logger,
		},
		l,
	)
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	return n.Run(ctx)
}
