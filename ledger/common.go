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

// Package ledger implements the account-based stake-pool lifecycle ledger:
// linear fees, certificates, transaction assembly, and the state machine
// that applies accepted certificates to account and pool state.
package ledger

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/midgard-labs/midgard/cbor"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
)

type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromString parses a hex-encoded Blake2b-256 hash
func NewBlake2b256FromString(s string) (Blake2b256, error) {
	var b Blake2b256
	data, err := hex.DecodeString(s)
	if err != nil {
		return b, err
	}
	if len(data) != Blake2b256Size {
		return b, fmt.Errorf("invalid hash length: %d", len(data))
	}
	copy(b[:], data)
	return b, nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b256) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := NewBlake2b256FromString(tmp)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Blake2b256Size)
	copy(hashBytes, b[:])
	return cbor.Encode(hashBytes)
}

func (b *Blake2b256) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != Blake2b256Size {
		return fmt.Errorf("invalid hash length: %d", len(tmp))
	}
	copy(b[:], tmp)
	return nil
}

func (b Blake2b256) Bech32(prefix string) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(b[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}

// PoolId identifies a stake pool. It is derived from the pool's registration
// certificate and is stable for the life of the pool.
type PoolId = Blake2b256

// NewPoolIdFromString parses a hex-encoded pool id
func NewPoolIdFromString(s string) (PoolId, error) {
	return NewBlake2b256FromString(s)
}

// FragmentId identifies a submitted transaction message
type FragmentId = Blake2b256
