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
	"crypto/ed25519"
	"fmt"

	"github.com/midgard-labs/midgard/cbor"
	"github.com/midgard-labs/midgard/keys"
)

const (
	CertificateTypePoolRegistration = 0
	CertificateTypeStakeDelegation  = 1
	CertificateTypePoolRetirement   = 2
)

// Certificate is a signed declaration of a ledger-state-changing intent.
// Certificates are immutable values; cross-referential validation (pool
// existence, duplication) happens at ledger application time, not here.
type Certificate interface {
	isCertificate()
	Cbor() []byte
	Type() uint
}

type CertificateWrapper struct {
	Type        uint
	Certificate Certificate
}

func (c *CertificateWrapper) UnmarshalCBOR(data []byte) error {
	// Decode the variant selected by the leading type value
	tmpCert, err := cbor.DecodeById(
		data,
		map[int]any{
			CertificateTypePoolRegistration: &PoolRegistrationCertificate{},
			CertificateTypeStakeDelegation:  &StakeDelegationCertificate{},
			CertificateTypePoolRetirement:   &PoolRetirementCertificate{},
		},
	)
	if err != nil {
		return fmt.Errorf("decode certificate: %w", err)
	}
	cert, ok := tmpCert.(Certificate)
	if !ok {
		return fmt.Errorf("unexpected certificate type %T", tmpCert)
	}
	c.Type = cert.Type()
	c.Certificate = cert
	return nil
}

func (c *CertificateWrapper) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(c.Certificate)
}

// PoolRegistrationCertificate declares a new stake pool with its VRF and KES
// key material and the owner authorized to manage it
type PoolRegistrationCertificate struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	CertType            uint
	VrfPublicKey        []byte
	KesPublicKey        []byte
	StartValidity       uint32
	ManagementThreshold uint32
	Owner               []byte
}

// NewPoolRegistrationCertificate builds a registration certificate from
// bech32-encoded key material. Key parsing failures surface immediately;
// duplicate pool detection is deferred to ledger application.
func NewPoolRegistrationCertificate(
	vrfPublicKey string,
	kesPublicKey string,
	startValidity uint32,
	managementThreshold uint32,
	ownerPublicKey string,
) (*PoolRegistrationCertificate, error) {
	vrfKey, err := keys.VrfPublicKeyFromBech32(vrfPublicKey)
	if err != nil {
		return nil, err
	}
	kesKey, err := keys.KesPublicKeyFromBech32(kesPublicKey)
	if err != nil {
		return nil, err
	}
	ownerKey, err := keys.PublicKeyFromBech32(ownerPublicKey)
	if err != nil {
		return nil, err
	}
	return &PoolRegistrationCertificate{
		CertType:            CertificateTypePoolRegistration,
		VrfPublicKey:        vrfKey,
		KesPublicKey:        kesKey,
		StartValidity:       startValidity,
		ManagementThreshold: managementThreshold,
		Owner:               ownerKey,
	}, nil
}

func (c PoolRegistrationCertificate) isCertificate() {}

func (c *PoolRegistrationCertificate) UnmarshalCBOR(cborData []byte) error {
	type tPoolRegistrationCertificate PoolRegistrationCertificate
	var tmp tPoolRegistrationCertificate
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*c = PoolRegistrationCertificate(tmp)
	c.SetCbor(cborData)
	return nil
}

func (c *PoolRegistrationCertificate) Type() uint {
	return c.CertType
}

// PoolId derives the deterministic pool identifier from the certificate content
func (c *PoolRegistrationCertificate) PoolId() (PoolId, error) {
	data := c.Cbor()
	if data == nil {
		var err error
		data, err = cbor.EncodeGeneric(c)
		if err != nil {
			return PoolId{}, err
		}
	}
	return Blake2b256Hash(data), nil
}

// StakeDelegationCertificate delegates an account's stake to a pool
type StakeDelegationCertificate struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	CertType uint
	PoolId   PoolId
	Account  []byte
}

// NewStakeDelegationCertificate builds a delegation certificate for the
// account identified by the bech32-encoded public key. Pool existence is
// checked at ledger application, not here.
func NewStakeDelegationCertificate(
	poolId PoolId,
	accountPublicKey string,
) (*StakeDelegationCertificate, error) {
	accountKey, err := keys.PublicKeyFromBech32(accountPublicKey)
	if err != nil {
		return nil, err
	}
	return &StakeDelegationCertificate{
		CertType: CertificateTypeStakeDelegation,
		PoolId:   poolId,
		Account:  accountKey,
	}, nil
}

func (c StakeDelegationCertificate) isCertificate() {}

func (c *StakeDelegationCertificate) UnmarshalCBOR(cborData []byte) error {
	type tStakeDelegationCertificate StakeDelegationCertificate
	var tmp tStakeDelegationCertificate
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*c = StakeDelegationCertificate(tmp)
	c.SetCbor(cborData)
	return nil
}

func (c *StakeDelegationCertificate) Type() uint {
	return c.CertType
}

// AccountPublicKey returns the delegating account's key
func (c *StakeDelegationCertificate) AccountPublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(c.Account)
}

// PoolRetirementCertificate retires a stake pool
type PoolRetirementCertificate struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	CertType uint
	PoolId   PoolId
}

// NewPoolRetirementCertificate builds a retirement certificate. Pool
// existence and current status are checked at ledger application.
func NewPoolRetirementCertificate(poolId PoolId) *PoolRetirementCertificate {
	return &PoolRetirementCertificate{
		CertType: CertificateTypePoolRetirement,
		PoolId:   poolId,
	}
}

func (c PoolRetirementCertificate) isCertificate() {}

func (c *PoolRetirementCertificate) UnmarshalCBOR(cborData []byte) error {
	type tPoolRetirementCertificate PoolRetirementCertificate
	var tmp tPoolRetirementCertificate
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*c = PoolRetirementCertificate(tmp)
	c.SetCbor(cborData)
	return nil
}

func (c *PoolRetirementCertificate) Type() uint {
	return c.CertType
}
