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

package ledger

import (
	"fmt"
)

// DuplicatePoolIdError indicates a registration for a pool id that already exists
type DuplicatePoolIdError struct {
	PoolId PoolId
}

func (e DuplicatePoolIdError) Error() string {
	return fmt.Sprintf("stake pool already registered: %s", e.PoolId.String())
}

// UnknownPoolError indicates a certificate referencing a pool id absent from
// the pool table
type UnknownPoolError struct {
	PoolId PoolId
}

func (e UnknownPoolError) Error() string {
	return fmt.Sprintf("unknown stake pool: %s", e.PoolId.String())
}

// AlreadyRetiredError indicates a retirement for a pool that is already retired.
// A repeat retirement is an error, not a no-op.
type AlreadyRetiredError struct {
	PoolId PoolId
}

func (e AlreadyRetiredError) Error() string {
	return fmt.Sprintf("stake pool already retired: %s", e.PoolId.String())
}

// InsufficientFundsError indicates declared input value below the amount
// required to cover the transaction
type InsufficientFundsError struct {
	Available uint64
	Required  uint64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: have %d, need %d",
		e.Available,
		e.Required,
	)
}

// SignatureOrderError indicates a witness computed before the transaction
// body was finalized
type SignatureOrderError struct{}

func (SignatureOrderError) Error() string {
	return "witness must be computed over the finalized transaction body"
}

// MissingWitnessError indicates a transaction serialized without a witness
type MissingWitnessError struct{}

func (MissingWitnessError) Error() string {
	return "transaction has no witness signature"
}

// InvalidWitnessError indicates a witness signature that does not verify
// against the spending account's key
type InvalidWitnessError struct {
	Address string
}

func (e InvalidWitnessError) Error() string {
	return fmt.Sprintf("invalid witness signature for account %s", e.Address)
}

// InvalidPoolAuthError indicates a missing or bad pool-owner authorization
// signature on a pool-affecting certificate
type InvalidPoolAuthError struct{}

func (InvalidPoolAuthError) Error() string {
	return "invalid pool owner authorization signature"
}

// UnknownAccountError indicates an address absent from the account table
type UnknownAccountError struct {
	Address string
}

func (e UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account: %s", e.Address)
}

// BadTransactionCounterError indicates a transaction counter that does not
// match the account's current counter
type BadTransactionCounterError struct {
	Expected uint32
	Actual   uint32
}

func (e BadTransactionCounterError) Error() string {
	return fmt.Sprintf(
		"bad transaction counter: expected %d, got %d",
		e.Expected,
		e.Actual,
	)
}

// UnknownCertificateError indicates a certificate type the ledger does not handle
type UnknownCertificateError struct {
	CertType uint
}

func (e UnknownCertificateError) Error() string {
	return fmt.Sprintf("unknown certificate type: %d", e.CertType)
}

// WrongChainError indicates a transaction built against a different genesis block
type WrongChainError struct {
	Expected Blake2b256
	Actual   Blake2b256
}

func (e WrongChainError) Error() string {
	return fmt.Sprintf(
		"transaction built for chain %s, this chain is %s",
		e.Actual.String(),
		e.Expected.String(),
	)
}
