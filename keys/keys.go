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

// Package keys provides the key material used by accounts and stake pools:
// Ed25519 spending keys, VRF keys for leader election, and KES keys for
// forward-secure block signing. All public material has a canonical bech32
// encoding with a scheme-specific prefix.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	PrefixEd25519Secret = "ed25519_sk"
	PrefixEd25519Public = "ed25519_pk"
	PrefixKesSecret     = "kes_sk"
	PrefixKesPublic     = "kes_pk"
	PrefixVrfSecret     = "vrf_sk"
	PrefixVrfPublic     = "vrf_pk"
)

// Discrimination selects the address namespace for a network
type Discrimination int

const (
	DiscriminationProduction Discrimination = iota
	DiscriminationTest
)

// AddressPrefix returns the bech32 prefix for addresses under this discrimination
func (d Discrimination) AddressPrefix() string {
	if d == DiscriminationTest {
		return "ta"
	}
	return "ca"
}

func (d Discrimination) String() string {
	if d == DiscriminationTest {
		return "test"
	}
	return "production"
}

// ParseDiscrimination parses a discrimination name as used in configuration
func ParseDiscrimination(s string) (Discrimination, error) {
	switch s {
	case "production":
		return DiscriminationProduction, nil
	case "test":
		return DiscriminationTest, nil
	default:
		return DiscriminationProduction, fmt.Errorf(
			"unknown discrimination: %q",
			s,
		)
	}
}

// InvalidKeyEncodingError indicates key material that could not be parsed
type InvalidKeyEncodingError struct {
	Encoded string
	Err     error
}

func (e InvalidKeyEncodingError) Error() string {
	return fmt.Sprintf("invalid key encoding %q: %v", e.Encoded, e.Err)
}

func (e InvalidKeyEncodingError) Unwrap() error { return e.Err }

// EncodeBech32 encodes data as bech32 with the given prefix
func EncodeBech32(prefix string, data []byte) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(data, 8, 5, true)
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

// DecodeBech32 decodes a bech32 string and checks it carries the expected prefix
func DecodeBech32(prefix string, encoded string) ([]byte, error) {
	hrp, data, err := bech32.DecodeNoLimit(encoded)
	if err != nil {
		return nil, InvalidKeyEncodingError{Encoded: encoded, Err: err}
	}
	if hrp != prefix {
		return nil, InvalidKeyEncodingError{
			Encoded: encoded,
			Err:     fmt.Errorf("expected prefix %q, got %q", prefix, hrp),
		}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, InvalidKeyEncodingError{Encoded: encoded, Err: err}
	}
	return decoded, nil
}

// KeyPair holds an Ed25519 spending key pair
type KeyPair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewKeyPair generates a fresh Ed25519 key pair
func NewKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyPair{priv: priv, pub: pub}, nil
}

// NewKeyPairFromSeed derives a key pair from a 32-byte seed
func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			ed25519.SeedSize,
			len(seed),
		)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		priv: priv,
		pub:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// KeyPairFromBech32 reconstructs a key pair from a bech32-encoded secret key
func KeyPairFromBech32(encoded string) (*KeyPair, error) {
	seed, err := DecodeBech32(PrefixEd25519Secret, encoded)
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, InvalidKeyEncodingError{
			Encoded: encoded,
			Err:     fmt.Errorf("expected %d-byte seed, got %d", ed25519.SeedSize, len(seed)),
		}
	}
	return NewKeyPairFromSeed(seed)
}

// PublicKey returns the raw public key
func (k *KeyPair) PublicKey() ed25519.PublicKey {
	return k.pub
}

// PublicKeyBech32 returns the canonical encoding of the public key
func (k *KeyPair) PublicKeyBech32() string {
	return EncodeBech32(PrefixEd25519Public, k.pub)
}

// SecretKeyBech32 returns the canonical encoding of the secret key seed
func (k *KeyPair) SecretKeyBech32() string {
	return EncodeBech32(PrefixEd25519Secret, k.priv.Seed())
}

// Sign signs the message with the secret key
func (k *KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}

// Address derives the single account address for this key pair
func (k *KeyPair) Address(d Discrimination) string {
	return EncodeBech32(d.AddressPrefix(), k.pub)
}

// PublicKeyFromBech32 decodes a bech32-encoded Ed25519 public key
func PublicKeyFromBech32(encoded string) (ed25519.PublicKey, error) {
	data, err := DecodeBech32(PrefixEd25519Public, encoded)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.PublicKeySize {
		return nil, InvalidKeyEncodingError{
			Encoded: encoded,
			Err:     fmt.Errorf("expected %d-byte key, got %d", ed25519.PublicKeySize, len(data)),
		}
	}
	return ed25519.PublicKey(data), nil
}

// PublicKeyFromAddress recovers the account public key embedded in an address
func PublicKeyFromAddress(addr string, d Discrimination) (ed25519.PublicKey, error) {
	data, err := DecodeBech32(d.AddressPrefix(), addr)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.PublicKeySize {
		return nil, InvalidKeyEncodingError{
			Encoded: addr,
			Err:     fmt.Errorf("expected %d-byte key, got %d", ed25519.PublicKeySize, len(data)),
		}
	}
	return ed25519.PublicKey(data), nil
}
