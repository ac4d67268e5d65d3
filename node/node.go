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

// Package node runs the ledger behind a REST API. Submitted messages are
// applied synchronously and their outcomes tracked in a fragment log that
// clients poll for confirmation.
package node

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/midgard-labs/midgard/ledger"
	"golang.org/x/sync/errgroup"
)

// Node serves the REST API over a single ledger instance
type Node struct {
	config     Config
	ledger     *ledger.Ledger
	fragments  *fragmentLog
	metrics    *nodeMetrics
	logger     *slog.Logger
	httpServer *http.Server
}

// Config configures the node
type Config struct {
	ListenAddress string
	Logger        *slog.Logger
}

// New creates a node over an existing ledger
func New(config Config, l *ledger.Ledger) *Node {
	n := &Node{
		config:    config,
		ledger:    l,
		fragments: newFragmentLog(),
		logger:    config.Logger,
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.metrics = newNodeMetrics(func() float64 {
		return float64(len(l.ActivePools()))
	})
	n.httpServer = &http.Server{
		Addr:         config.ListenAddress,
		Handler:      n.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return n
}

// Run serves the API until the context is canceled, then shuts down
// gracefully
func (n *Node) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n.logger.Info("listening", "address", n.config.ListenAddress)
		err := n.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		n.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			10*time.Second,
		)
		defer cancel()
		return n.httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
