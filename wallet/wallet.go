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

// Package wallet provides the client-side account handle used to assemble
// and authorize transactions. The handle tracks a local transaction counter
// that advances on every assembled transaction, whether or not the node
// later accepts it; ResetCounter reconciles the handle against the node's
// committed state after a rejected submission.
package wallet

import (
	"sync"

	"github.com/midgard-labs/midgard/keys"
)

// Account is a spending account bound to an Ed25519 key pair and a network
// discrimination. It satisfies the transaction builder's account interface.
type Account struct {
	mu             sync.Mutex
	keyPair        *keys.KeyPair
	discrimination keys.Discrimination
	counter        uint32
}

// NewAccount generates an account with a fresh key pair
func NewAccount(discrimination keys.Discrimination) (*Account, error) {
	keyPair, err := keys.NewKeyPair()
	if err != nil {
		return nil, err
	}
	return &Account{
		keyPair:        keyPair,
		discrimination: discrimination,
	}, nil
}

// NewAccountFromSeed derives an account from a 32-byte seed
func NewAccountFromSeed(
	seed []byte,
	discrimination keys.Discrimination,
) (*Account, error) {
	keyPair, err := keys.NewKeyPairFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return &Account{
		keyPair:        keyPair,
		discrimination: discrimination,
	}, nil
}

// NewAccountFromBech32 reconstructs an account from a bech32-encoded secret key
func NewAccountFromBech32(
	secretKey string,
	discrimination keys.Discrimination,
) (*Account, error) {
	keyPair, err := keys.KeyPairFromBech32(secretKey)
	if err != nil {
		return nil, err
	}
	return &Account{
		keyPair:        keyPair,
		discrimination: discrimination,
	}, nil
}

// Address returns the account's single address
func (a *Account) Address() string {
	return a.keyPair.Address(a.discrimination)
}

// PublicKeyBech32 returns the canonical encoding of the account's public key
func (a *Account) PublicKeyBech32() string {
	return a.keyPair.PublicKeyBech32()
}

// SecretKeyBech32 returns the canonical encoding of the account's secret key
func (a *Account) SecretKeyBech32() string {
	return a.keyPair.SecretKeyBech32()
}

// KeyPair returns the underlying key pair, usable as an authorization signer
func (a *Account) KeyPair() *keys.KeyPair {
	return a.keyPair
}

// Counter returns the local transaction counter
func (a *Account) Counter() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counter
}

// Sign signs the message with the account's secret key
func (a *Account) Sign(msg []byte) []byte {
	return a.keyPair.Sign(msg)
}

// Confirm advances the local counter after a transaction is assembled. The
// advance does not wait for submission: a later rejection leaves the local
// counter ahead of the committed one until ResetCounter is called.
func (a *Account) Confirm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counter++
}

// ResetCounter reconciles the local counter with the node's committed value
func (a *Account) ResetCounter(counter uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counter = counter
}
