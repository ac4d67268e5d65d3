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
	"errors"
)

// SpendingAccount is the account handle a transaction spends from. Confirm
// advances the handle's local transaction counter; it is called exactly once
// per successfully assembled transaction, independent of submission outcome.
type SpendingAccount interface {
	Address() string
	Counter() uint32
	Sign(msg []byte) []byte
	Confirm()
}

// Signer produces an authorization signature over the finalized body
type Signer interface {
	Sign(msg []byte) []byte
}

// TxBuilder assembles a balanced, witnessed transaction. The steps mirror
// the submission workflow: add the account input and optional certificate,
// finalize against the fee schedule, seal with the spending witness, add the
// owner authorization where required, then serialize to a message.
type TxBuilder struct {
	block0Hash Blake2b256
	fees       LinearFees
	input      *TransactionInput
	cert       *CertificateWrapper
	body       *TransactionBody
	bodyBytes  []byte
	witness    []byte
	auth       []byte
	account    SpendingAccount
}

func NewTxBuilder(block0Hash Blake2b256, fees LinearFees) *TxBuilder {
	return &TxBuilder{
		block0Hash: block0Hash,
		fees:       fees,
	}
}

// AddAccount sets the spending account input
func (b *TxBuilder) AddAccount(address string, value uint64) *TxBuilder {
	b.input = &TransactionInput{
		Address: address,
		Value:   value,
	}
	return b
}

// AddCertificate attaches a certificate. At most one certificate is carried
// per transaction; a repeat call replaces the previous one.
func (b *TxBuilder) AddCertificate(cert Certificate) *TxBuilder {
	b.cert = &CertificateWrapper{
		Type:        cert.Type(),
		Certificate: cert,
	}
	return b
}

// Finalize computes the fee from the schedule, checks the input covers it,
// and fixes the transaction body. The spending account supplies the
// transaction counter included in the signed body.
func (b *TxBuilder) Finalize(account SpendingAccount) error {
	if b.input == nil {
		return errors.New("no account input added")
	}
	fee := b.fees.Fee(b.cert != nil)
	if b.input.Value < fee {
		return InsufficientFundsError{
			Available: b.input.Value,
			Required:  fee,
		}
	}
	body := &TransactionBody{
		Block0Hash:  b.block0Hash,
		Input:       *b.input,
		Counter:     account.Counter(),
		Fee:         fee,
		Certificate: b.cert,
	}
	bodyBytes, err := body.SignedBytes()
	if err != nil {
		return err
	}
	b.body = body
	b.bodyBytes = bodyBytes
	b.account = account
	return nil
}

// Seal computes the witness over the finalized body. Sealing before
// Finalize is a protocol violation.
func (b *TxBuilder) Seal() error {
	if b.body == nil {
		return SignatureOrderError{}
	}
	b.witness = b.account.Sign(b.bodyBytes)
	return nil
}

// AddAuth appends the pool-owner authorization signature over the same
// finalized body the witness covers
func (b *TxBuilder) AddAuth(signer Signer) error {
	if b.body == nil {
		return SignatureOrderError{}
	}
	b.auth = signer.Sign(b.bodyBytes)
	return nil
}

// Message serializes the assembled transaction and advances the spending
// account's local counter. The counter advance is unconditional with regard
// to later submission outcome; callers that need to recover from a rejected
// submission reconcile through the account handle.
func (b *TxBuilder) Message() ([]byte, error) {
	if b.body == nil {
		return nil, SignatureOrderError{}
	}
	if b.witness == nil {
		return nil, MissingWitnessError{}
	}
	tx := &Transaction{
		Body:    *b.body,
		Witness: b.witness,
		Auth:    b.auth,
	}
	msg, err := tx.Message()
	if err != nil {
		return nil, err
	}
	b.account.Confirm()
	return msg, nil
}
