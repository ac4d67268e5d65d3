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

package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// KES uses the MMM (Malkin-Micciancio-Miner) sum composition scheme with
// Ed25519 as the base signature scheme. A key of depth d covers 2^d periods.

const (
	// KesSeedSize is the size of a KES seed in bytes
	KesSeedSize = 32

	// KesPublicKeySize is the size of a KES public key in bytes
	KesPublicKeySize = 32

	// KesDepth is the sum-composition tree depth, giving 64 periods
	KesDepth = 6

	// kesSigmaSize is the size of the Ed25519 leaf signature
	kesSigmaSize = ed25519.SignatureSize
)

// KesSignatureSize returns the signature size for a given tree depth
func KesSignatureSize(depth uint) int {
	return kesSigmaSize + int(depth)*2*KesPublicKeySize
}

// KesKeyPair holds a KES key pair used by stake pools for block signing
type KesKeyPair struct {
	seed []byte
	pub  []byte
}

// NewKesKeyPair generates a KES key pair from a fresh random seed
func NewKesKeyPair() (*KesKeyPair, error) {
	seed := make([]byte, KesSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewKesKeyPairFromSeed(seed)
}

// NewKesKeyPairFromSeed derives a KES key pair of depth KesDepth from a 32-byte seed
func NewKesKeyPairFromSeed(seed []byte) (*KesKeyPair, error) {
	if len(seed) != KesSeedSize {
		return nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			KesSeedSize,
			len(seed),
		)
	}
	seedCopy := make([]byte, KesSeedSize)
	copy(seedCopy, seed)
	return &KesKeyPair{
		seed: seedCopy,
		pub:  kesPublicKeyFromSeed(KesDepth, seedCopy),
	}, nil
}

// PublicKey returns the raw KES public key
func (k *KesKeyPair) PublicKey() []byte {
	return k.pub
}

// PublicKeyBech32 returns the canonical encoding of the KES public key
func (k *KesKeyPair) PublicKeyBech32() string {
	return EncodeBech32(PrefixKesPublic, k.pub)
}

// SecretKeyBech32 returns the canonical encoding of the KES seed
func (k *KesKeyPair) SecretKeyBech32() string {
	return EncodeBech32(PrefixKesSecret, k.seed)
}

// Sign produces a KES signature for the given period.
// Signature layout is the leaf Ed25519 signature followed by the
// (left, right) public key pair for each tree level, leaf to root.
func (k *KesKeyPair) Sign(period uint64, msg []byte) ([]byte, error) {
	if period >= uint64(1)<<KesDepth {
		return nil, fmt.Errorf(
			"period %d out of range for depth %d",
			period,
			KesDepth,
		)
	}
	sig := make([]byte, 0, KesSignatureSize(KesDepth))
	pairs := make([][]byte, 0, KesDepth*2)
	seed := k.seed
	half := uint64(1) << (KesDepth - 1)
	for depth := KesDepth; depth > 0; depth-- {
		leftSeed := kesExpandSeed(seed, 0x01)
		rightSeed := kesExpandSeed(seed, 0x02)
		leftPub := kesPublicKeyFromSeed(uint(depth)-1, leftSeed)
		rightPub := kesPublicKeyFromSeed(uint(depth)-1, rightSeed)
		// Record pairs root-first; they are reversed below to get the
		// leaf-to-root wire layout
		pairs = append(pairs, leftPub, rightPub)
		if period < half {
			seed = leftSeed
		} else {
			seed = rightSeed
			period -= half
		}
		half >>= 1
	}
	leafKey := ed25519.NewKeyFromSeed(seed)
	sig = append(sig, ed25519.Sign(leafKey, msg)...)
	for i := len(pairs) - 2; i >= 0; i -= 2 {
		sig = append(sig, pairs[i]...)
		sig = append(sig, pairs[i+1]...)
	}
	return sig, nil
}

// KesVerify verifies a KES signature against a public key and period
func KesVerify(pub []byte, period uint64, msg []byte, sig []byte) bool {
	if len(sig) != KesSignatureSize(KesDepth) ||
		period >= uint64(1)<<KesDepth {
		return false
	}
	// Walk the key pairs root-first, checking that each level hashes to the
	// key above it and descending into the side selected by the period
	expected := pub
	half := uint64(1) << (KesDepth - 1)
	offset := len(sig)
	for depth := KesDepth; depth > 0; depth-- {
		left := sig[offset-2*KesPublicKeySize : offset-KesPublicKeySize]
		right := sig[offset-KesPublicKeySize : offset]
		if string(KesHashPair(left, right)) != string(expected) {
			return false
		}
		if period < half {
			expected = left
		} else {
			expected = right
			period -= half
		}
		half >>= 1
		offset -= 2 * KesPublicKeySize
	}
	return ed25519.Verify(ed25519.PublicKey(expected), msg, sig[:kesSigmaSize])
}

// KesPublicKeyFromBech32 decodes a bech32-encoded KES public key
func KesPublicKeyFromBech32(encoded string) ([]byte, error) {
	data, err := DecodeBech32(PrefixKesPublic, encoded)
	if err != nil {
		return nil, err
	}
	if len(data) != KesPublicKeySize {
		return nil, InvalidKeyEncodingError{
			Encoded: encoded,
			Err:     fmt.Errorf("expected %d-byte key, got %d", KesPublicKeySize, len(data)),
		}
	}
	return data, nil
}

// KesHashPair computes the combined public key for a pair of subtree keys
func KesHashPair(left []byte, right []byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating blake2b hash: %s", err))
	}
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// kesExpandSeed expands a seed using blake2b with a domain separator
func kesExpandSeed(seed []byte, separator byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating blake2b hash: %s", err))
	}
	h.Write([]byte{separator})
	h.Write(seed)
	return h.Sum(nil)
}

// kesPublicKeyFromSeed derives the public key for a subtree of the given depth
func kesPublicKeyFromSeed(depth uint, seed []byte) []byte {
	if depth == 0 {
		leafKey := ed25519.NewKeyFromSeed(seed)
		return leafKey.Public().(ed25519.PublicKey)
	}
	leftPub := kesPublicKeyFromSeed(depth-1, kesExpandSeed(seed, 0x01))
	rightPub := kesPublicKeyFromSeed(depth-1, kesExpandSeed(seed, 0x02))
	return KesHashPair(leftPub, rightPub)
}
