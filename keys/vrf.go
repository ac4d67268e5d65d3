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
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	// VrfSeedSize is the size of a VRF seed/secret key in bytes
	VrfSeedSize = 32

	// VrfPublicKeySize is the size of a VRF public key in bytes
	VrfPublicKeySize = 32
)

// VrfKeyPair holds a VRF key pair used by stake pools for leader election.
// The secret key is the original seed; the public key is derived per
// RFC 8032 section 5.1.5 (SHA-512 scalar derivation with clamping).
type VrfKeyPair struct {
	seed []byte
	pub  []byte
}

// NewVrfKeyPair generates a VRF key pair from a fresh random seed
func NewVrfKeyPair() (*VrfKeyPair, error) {
	seed := make([]byte, VrfSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewVrfKeyPairFromSeed(seed)
}

// NewVrfKeyPairFromSeed derives a VRF key pair from a 32-byte seed
func NewVrfKeyPairFromSeed(seed []byte) (*VrfKeyPair, error) {
	if len(seed) != VrfSeedSize {
		return nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			VrfSeedSize,
			len(seed),
		)
	}
	// Derive secret scalar x from SHA512(seed)[0:32] with clamping, then
	// compute public key Y = x * B
	h := sha512.Sum512(seed)
	xScalar := edwards25519.NewScalar()
	if _, err := xScalar.SetBytesWithClamping(h[:32]); err != nil {
		return nil, err
	}
	Y := (&edwards25519.Point{}).ScalarBaseMult(xScalar)
	seedCopy := make([]byte, VrfSeedSize)
	copy(seedCopy, seed)
	return &VrfKeyPair{
		seed: seedCopy,
		pub:  Y.Bytes(),
	}, nil
}

// PublicKey returns the raw VRF public key
func (k *VrfKeyPair) PublicKey() []byte {
	return k.pub
}

// PublicKeyBech32 returns the canonical encoding of the VRF public key
func (k *VrfKeyPair) PublicKeyBech32() string {
	return EncodeBech32(PrefixVrfPublic, k.pub)
}

// SecretKeyBech32 returns the canonical encoding of the VRF secret key
func (k *VrfKeyPair) SecretKeyBech32() string {
	return EncodeBech32(PrefixVrfSecret, k.seed)
}

// VrfPublicKeyFromBech32 decodes a bech32-encoded VRF public key and checks
// it is a valid curve point
func VrfPublicKeyFromBech32(encoded string) ([]byte, error) {
	data, err := DecodeBech32(PrefixVrfPublic, encoded)
	if err != nil {
		return nil, err
	}
	if len(data) != VrfPublicKeySize {
		return nil, InvalidKeyEncodingError{
			Encoded: encoded,
			Err:     fmt.Errorf("expected %d-byte key, got %d", VrfPublicKeySize, len(data)),
		}
	}
	if _, err := (&edwards25519.Point{}).SetBytes(data); err != nil {
		return nil, InvalidKeyEncodingError{Encoded: encoded, Err: err}
	}
	return data, nil
}
