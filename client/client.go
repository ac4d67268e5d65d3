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

// Package client is the REST client for the node API: chain settings,
// account state, stake pool queries, and message submission with
// confirmation polling.
package client

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"github.com/midgard-labs/midgard/ledger"
	"github.com/midgard-labs/midgard/wallet"
	"github.com/pkg/errors"
)

// Fragment states reported by the node's status endpoint
const (
	FragmentStatePending  = "Pending"
	FragmentStateInABlock = "InABlock"
	FragmentStateRejected = "Rejected"
)

// FragmentStatus is the submission outcome reported by the node
type FragmentStatus struct {
	FragmentId ledger.FragmentId `json:"fragment_id"`
	Status     string            `json:"status"`
	Reason     string            `json:"reason,omitempty"`
}

type messageResponse struct {
	Id ledger.FragmentId `json:"id"`
}

// Client talks to a node's REST API
type Client struct {
	http         *resty.Client
	waitAttempts uint
	waitDelay    time.Duration
}

// ClientOptionFunc configures a Client during construction
type ClientOptionFunc func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithWaitPolicy sets the polling policy used by SubmitAndWait
func WithWaitPolicy(attempts uint, delay time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.waitAttempts = attempts
		c.waitDelay = delay
	}
}

// New creates a client for the node at the given base URL
func New(baseURL string, opts ...ClientOptionFunc) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		waitAttempts: 10,
		waitDelay:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func checkResponse(res *resty.Response, err error, what string) error {
	if err != nil {
		return errors.Wrapf(err, "fetching %s", what)
	}
	if res.IsError() {
		return errors.Errorf(
			"fetching %s: unexpected status %s",
			what,
			res.Status(),
		)
	}
	return nil
}

// Settings fetches the chain parameters
func (c *Client) Settings(ctx context.Context) (*ledger.Settings, error) {
	var settings ledger.Settings
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&settings).
		Get("/api/v0/settings")
	if err := checkResponse(res, err, "settings"); err != nil {
		return nil, err
	}
	return &settings, nil
}

// AccountState fetches the committed state of an account
func (c *Client) AccountState(
	ctx context.Context,
	address string,
) (*ledger.AccountState, error) {
	var state ledger.AccountState
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&state).
		SetPathParam("address", address).
		Get("/api/v0/account/{address}")
	if err := checkResponse(res, err, "account state"); err != nil {
		return nil, err
	}
	return &state, nil
}

// StakePools fetches the ids of currently active pools
func (c *Client) StakePools(ctx context.Context) ([]ledger.PoolId, error) {
	var pools []ledger.PoolId
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&pools).
		Get("/api/v0/stake_pools")
	if err := checkResponse(res, err, "stake pools"); err != nil {
		return nil, err
	}
	return pools, nil
}

// PostMessage submits a serialized transaction and returns its fragment id.
// Acceptance of the message is not acceptance of the transaction; callers
// poll FragmentStatus or use SubmitAndWait for the outcome.
func (c *Client) PostMessage(
	ctx context.Context,
	msg []byte,
) (ledger.FragmentId, error) {
	var msgResp messageResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(msg).
		SetResult(&msgResp).
		Post("/api/v0/message")
	if err := checkResponse(res, err, "message submission"); err != nil {
		return ledger.FragmentId{}, err
	}
	return msgResp.Id, nil
}

// FragmentStatus fetches the tracked status of a submitted message
func (c *Client) FragmentStatus(
	ctx context.Context,
	fragmentId ledger.FragmentId,
) (*FragmentStatus, error) {
	var status FragmentStatus
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&status).
		SetPathParam("id", fragmentId.String()).
		Get("/api/v0/fragment/{id}/status")
	if err := checkResponse(res, err, "fragment status"); err != nil {
		return nil, err
	}
	return &status, nil
}

// SubmitAndWait submits a message and polls until the node reports it in a
// block. A rejection stops the polling immediately.
func (c *Client) SubmitAndWait(
	ctx context.Context,
	msg []byte,
) (ledger.FragmentId, error) {
	fragmentId, err := c.PostMessage(ctx, msg)
	if err != nil {
		return ledger.FragmentId{}, err
	}
	err = retry.Do(
		func() error {
			status, err := c.FragmentStatus(ctx, fragmentId)
			if err != nil {
				return err
			}
			switch status.Status {
			case FragmentStateInABlock:
				return nil
			case FragmentStateRejected:
				return retry.Unrecoverable(SubmissionRejectedError{
					FragmentId: fragmentId,
					Reason:     status.Reason,
				})
			default:
				return errors.Errorf(
					"fragment %s still pending",
					fragmentId.String(),
				)
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.waitAttempts),
		retry.Delay(c.waitDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		var rejectedErr SubmissionRejectedError
		if errors.As(err, &rejectedErr) {
			return fragmentId, rejectedErr
		}
		return fragmentId, SubmissionTimeoutError{
			FragmentId: fragmentId,
			Err:        err,
		}
	}
	return fragmentId, nil
}

// SyncCounter reconciles a wallet account's local transaction counter with
// the node's committed state. Used after a rejected submission left the
// local counter ahead.
func (c *Client) SyncCounter(
	ctx context.Context,
	account *wallet.Account,
) error {
	state, err := c.AccountState(ctx, account.Address())
	if err != nil {
		return err
	}
	account.ResetCounter(state.Counter)
	return nil
}
