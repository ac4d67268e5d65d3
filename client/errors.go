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

package client

import (
	"fmt"

	"github.com/midgard-labs/midgard/ledger"
)

// SubmissionRejectedError indicates the node rejected a submitted fragment
type SubmissionRejectedError struct {
	FragmentId ledger.FragmentId
	Reason     string
}

func (e SubmissionRejectedError) Error() string {
	return fmt.Sprintf(
		"fragment %s rejected: %s",
		e.FragmentId.String(),
		e.Reason,
	)
}

// SubmissionTimeoutError indicates a fragment did not reach a final state
// within the wait policy
type SubmissionTimeoutError struct {
	FragmentId ledger.FragmentId
	Err        error
}

func (e SubmissionTimeoutError) Error() string {
	return fmt.Sprintf(
		"timed out waiting for fragment %s: %v",
		e.FragmentId.String(),
		e.Err,
	)
}

func (e SubmissionTimeoutError) Unwrap() error { return e.Err }
