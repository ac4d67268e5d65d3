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
	"github.com/midgard-labs/midgard/cbor"
)

// TransactionInput is a single account input: the spending account's address
// and the value withdrawn from it
type TransactionInput struct {
	cbor.StructAsArray
	Address string
	Value   uint64
}

// TransactionBody is the signed portion of a transaction. The witness and
// any owner authorization are computed over this body's CBOR encoding, so
// every field here is covered by the signatures.
type TransactionBody struct {
	cbor.StructAsArray
	Block0Hash  Blake2b256
	Input       TransactionInput
	Counter     uint32
	Fee         uint64
	Certificate *CertificateWrapper
}

// SignedBytes returns the canonical encoding the witness signs
func (b *TransactionBody) SignedBytes() ([]byte, error) {
	return cbor.Encode(b)
}

// HasCertificate reports whether a certificate is attached
func (b *TransactionBody) HasCertificate() bool {
	return b.Certificate != nil
}

// Transaction is a finalized, witnessed transaction ready for submission.
// Auth is empty unless the certificate requires pool-owner authorization.
type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body    TransactionBody
	Witness []byte
	Auth    []byte
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	type tTransaction Transaction
	var tmp tTransaction
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*t = Transaction(tmp)
	t.SetCbor(cborData)
	return nil
}

// Id returns the fragment id used to track the transaction through
// submission and inclusion
func (t *Transaction) Id() (FragmentId, error) {
	data := t.Cbor()
	if data == nil {
		var err error
		data, err = cbor.EncodeGeneric(t)
		if err != nil {
			return FragmentId{}, err
		}
	}
	return Blake2b256Hash(data), nil
}

// Message serializes the transaction to the wire format accepted by the
// node's message endpoint
func (t *Transaction) Message() ([]byte, error) {
	if data := t.Cbor(); data != nil {
		return data, nil
	}
	return cbor.EncodeGeneric(t)
}

// DecodeTransaction parses a wire message into a transaction
func DecodeTransaction(data []byte) (*Transaction, error) {
	var tx Transaction
	if _, err := cbor.Decode(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
