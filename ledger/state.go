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
	"log/slog"
	"sync"

	"github.com/midgard-labs/midgard/keys"
)

// PoolStatus is the lifecycle state of a stake pool. Pools are never
// deleted; a retired pool stays in the table for history queries.
type PoolStatus int

const (
	PoolStatusActive PoolStatus = iota
	PoolStatusRetired
)

func (s PoolStatus) String() string {
	switch s {
	case PoolStatusActive:
		return "active"
	case PoolStatusRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// StakePool is the ledger's view of a registered pool
type StakePool struct {
	Id           PoolId
	Registration *PoolRegistrationCertificate
	Status       PoolStatus
}

// DelegationState lists the pools an account delegates to. Retired pools
// are not removed from the list; retirement does not revoke delegations.
type DelegationState struct {
	Pools []PoolId `json:"pools"`
}

// AccountState is a read-only snapshot of an account
type AccountState struct {
	Value      uint64          `json:"value"`
	Counter    uint32          `json:"counter"`
	Delegation DelegationState `json:"delegation"`
}

// Settings are the chain parameters clients need to build transactions
type Settings struct {
	Fees       LinearFees `json:"fees"`
	Block0Hash Blake2b256 `json:"block0Hash"`
}

type accountEntry struct {
	balance    uint64
	counter    uint32
	delegation *PoolId
}

// Ledger is the stake-pool lifecycle state machine. A single instance
// accepts transactions sequentially; each certificate application is an
// atomic unit with no partial state mutation on failure.
type Ledger struct {
	mu             sync.RWMutex
	discrimination keys.Discrimination
	block0Hash     Blake2b256
	fees           LinearFees
	accounts       map[string]*accountEntry
	pools          map[PoolId]*StakePool
	poolOrder      []PoolId
	logger         *slog.Logger
}

// LedgerOptionFunc configures a Ledger during construction
type LedgerOptionFunc func(*Ledger)

// WithLogger sets the logger used for applied transactions
func WithLogger(logger *slog.Logger) LedgerOptionFunc {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// NewLedger creates a ledger from the genesis configuration, seeding the
// initial account funds
func NewLedger(genesis GenesisConfig, opts ...LedgerOptionFunc) (*Ledger, error) {
	l := &Ledger{
		discrimination: genesis.Discrimination,
		block0Hash:     genesis.Block0Hash(),
		fees:           genesis.Fees,
		accounts:       make(map[string]*accountEntry),
		pools:          make(map[PoolId]*StakePool),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, fund := range genesis.Funds {
		// Fail fast on addresses that cannot spend later
		if _, err := keys.PublicKeyFromAddress(fund.Address, genesis.Discrimination); err != nil {
			return nil, err
		}
		if existing, ok := l.accounts[fund.Address]; ok {
			existing.balance += fund.Value
			continue
		}
		l.accounts[fund.Address] = &accountEntry{balance: fund.Value}
	}
	return l, nil
}

// Settings returns the chain parameters
func (l *Ledger) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Settings{
		Fees:       l.fees,
		Block0Hash: l.block0Hash,
	}
}

// Block0Hash returns the genesis block hash
func (l *Ledger) Block0Hash() Blake2b256 {
	return l.block0Hash
}

// Discrimination returns the address discrimination this chain uses
func (l *Ledger) Discrimination() keys.Discrimination {
	return l.discrimination
}

// ApplyTransaction validates and applies a transaction. Validation order:
// witness and owner authorization signatures, then structural certificate
// checks, then fee deduction. Any failure leaves the ledger unchanged.
func (l *Ledger) ApplyTransaction(tx *Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Body.Block0Hash != l.block0Hash {
		return WrongChainError{
			Expected: l.block0Hash,
			Actual:   tx.Body.Block0Hash,
		}
	}

	addr := tx.Body.Input.Address
	acct, ok := l.accounts[addr]
	if !ok {
		return UnknownAccountError{Address: addr}
	}

	// Witness check: the spending key signs the finalized body
	bodyBytes, err := tx.Body.SignedBytes()
	if err != nil {
		return err
	}
	spendKey, err := keys.PublicKeyFromAddress(addr, l.discrimination)
	if err != nil {
		return err
	}
	if !ed25519.Verify(spendKey, bodyBytes, tx.Witness) {
		return InvalidWitnessError{Address: addr}
	}
	if tx.Body.Counter != acct.counter {
		return BadTransactionCounterError{
			Expected: acct.counter,
			Actual:   tx.Body.Counter,
		}
	}

	// Owner authorization and structural checks, computed before any
	// mutation so a failure aborts the whole application
	var commit func()
	if tx.Body.Certificate != nil {
		commit, err = l.prepareCertificate(
			tx.Body.Certificate.Certificate,
			bodyBytes,
			tx.Auth,
		)
		if err != nil {
			return err
		}
	}

	// Fee deduction: the full declared input value is withdrawn
	if acct.balance < tx.Body.Input.Value {
		return InsufficientFundsError{
			Available: acct.balance,
			Required:  tx.Body.Input.Value,
		}
	}

	acct.balance -= tx.Body.Input.Value
	acct.counter++
	if commit != nil {
		commit()
	}
	l.logger.Info(
		"applied transaction",
		"account", addr,
		"value", tx.Body.Input.Value,
		"fee", tx.Body.Fee,
		"counter", acct.counter,
		"certificate", tx.Body.HasCertificate(),
	)
	return nil
}

// prepareCertificate verifies the owner authorization and structural rules
// for a certificate and returns the commit closure that applies it
func (l *Ledger) prepareCertificate(
	cert Certificate,
	bodyBytes []byte,
	auth []byte,
) (func(), error) {
	switch cert := cert.(type) {
	case *PoolRegistrationCertificate:
		if !ed25519.Verify(ed25519.PublicKey(cert.Owner), bodyBytes, auth) {
			return nil, InvalidPoolAuthError{}
		}
		poolId, err := cert.PoolId()
		if err != nil {
			return nil, err
		}
		if _, exists := l.pools[poolId]; exists {
			return nil, DuplicatePoolIdError{PoolId: poolId}
		}
		return func() {
			l.pools[poolId] = &StakePool{
				Id:           poolId,
				Registration: cert,
				Status:       PoolStatusActive,
			}
			l.poolOrder = append(l.poolOrder, poolId)
			l.logger.Info("registered stake pool", "pool", poolId.String())
		}, nil
	case *StakeDelegationCertificate:
		if !ed25519.Verify(cert.AccountPublicKey(), bodyBytes, auth) {
			return nil, InvalidPoolAuthError{}
		}
		// Delegation may target a pool in any lifecycle state
		if _, exists := l.pools[cert.PoolId]; !exists {
			return nil, UnknownPoolError{PoolId: cert.PoolId}
		}
		// The delegation belongs to the certificate's account, which is
		// not necessarily the paying account
		delegatorAddr := keys.EncodeBech32(
			l.discrimination.AddressPrefix(),
			cert.Account,
		)
		delegator, exists := l.accounts[delegatorAddr]
		if !exists {
			return nil, UnknownAccountError{Address: delegatorAddr}
		}
		poolId := cert.PoolId
		return func() {
			// Overwrites any previous delegation; delegating twice to the
			// same pool leaves state unchanged
			delegator.delegation = &poolId
			l.logger.Info(
				"delegated stake",
				"account", delegatorAddr,
				"pool", poolId.String(),
			)
		}, nil
	case *PoolRetirementCertificate:
		pool, exists := l.pools[cert.PoolId]
		if !exists {
			return nil, UnknownPoolError{PoolId: cert.PoolId}
		}
		if !ed25519.Verify(
			ed25519.PublicKey(pool.Registration.Owner),
			bodyBytes,
			auth,
		) {
			return nil, InvalidPoolAuthError{}
		}
		if pool.Status == PoolStatusRetired {
			return nil, AlreadyRetiredError{PoolId: cert.PoolId}
		}
		return func() {
			pool.Status = PoolStatusRetired
			l.logger.Info("retired stake pool", "pool", pool.Id.String())
		}, nil
	default:
		return nil, UnknownCertificateError{CertType: cert.Type()}
	}
}

// ActivePools lists the ids of pools currently in the Active state, in
// registration order. Retired pools are excluded.
func (l *Ledger) ActivePools() []PoolId {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ret := make([]PoolId, 0, len(l.poolOrder))
	for _, poolId := range l.poolOrder {
		if pool, ok := l.pools[poolId]; ok && pool.Status == PoolStatusActive {
			ret = append(ret, poolId)
		}
	}
	return ret
}

// Pool returns the ledger's view of a pool in any lifecycle state
func (l *Ledger) Pool(poolId PoolId) (StakePool, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pool, ok := l.pools[poolId]
	if !ok {
		return StakePool{}, false
	}
	return *pool, true
}

// AccountState returns a snapshot of the latest committed account state
func (l *Ledger) AccountState(address string) (*AccountState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[address]
	if !ok {
		return nil, UnknownAccountError{Address: address}
	}
	state := &AccountState{
		Value:   acct.balance,
		Counter: acct.counter,
		// Empty rather than nil so the REST rendering is an empty list
		Delegation: DelegationState{Pools: []PoolId{}},
	}
	if acct.delegation != nil {
		state.Delegation.Pools = []PoolId{*acct.delegation}
	}
	return state, nil
}
