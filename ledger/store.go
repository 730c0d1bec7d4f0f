// Package ledger owns the engine's shared mutable state.
//
// The Store is an explicitly owned object passed into every component
// operation: the activation gate, the mining ledger, the stacking ledger
// and the claim engine all mutate the same Store reference. There are no
// package-level singletons. Execution is externally serialized (one block,
// many ordered operations), so the Store carries no locking.
//
// Token balances are NOT part of the Store's own state: fungible-token
// bookkeeping is an external collaborator behind the TokenLedger
// interface. The Store only holds a reference to it plus the reward-pool
// address commitments are burned into.
package ledger

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stackmint-labs/go-stackmint/inter"
)

// RewardPoolAddress is the address holding pooled mining commitments.
// Commits transfer into it; matured claims pay out of it.
var RewardPoolAddress = common.HexToAddress("0x00000000000000000000000000005374614b4d4e")

type claimKey struct {
	stacker common.Address
	cycle   idx.Epoch
}

// Store is the single shared state object of the engine.
type Store struct {
	registered map[common.Address]bool
	activation *inter.ActivationRecord

	miners    map[idx.Block]inter.MinersList
	cycles    map[idx.Epoch]*inter.RewardCycleRecord
	positions map[common.Address][]inter.StackerPosition
	claims    map[claimKey]*inter.ClaimRecord

	tokens TokenLedger
}

// NewStore creates an empty Store bound to the given token ledger.
func NewStore(tokens TokenLedger) *Store {
	return &Store{
		registered: make(map[common.Address]bool),
		miners:     make(map[idx.Block]inter.MinersList),
		cycles:     make(map[idx.Epoch]*inter.RewardCycleRecord),
		positions:  make(map[common.Address][]inter.StackerPosition),
		claims:     make(map[claimKey]*inter.ClaimRecord),
		tokens:     tokens,
	}
}

// Tokens returns the external token-ledger collaborator.
func (s *Store) Tokens() TokenLedger {
	return s.tokens
}

// IsRegistered reports whether the miner is in the registered set.
func (s *Store) IsRegistered(miner common.Address) bool {
	return s.registered[miner]
}

// RegisteredCount returns the size of the registered-miner set.
func (s *Store) RegisteredCount() uint32 {
	return uint32(len(s.registered))
}

// SetRegistered adds a miner to the registered set.
func (s *Store) SetRegistered(miner common.Address) {
	s.registered[miner] = true
}

// Activation returns the activation record, or false if the registration
// threshold has not been reached yet.
func (s *Store) Activation() (inter.ActivationRecord, bool) {
	if s.activation == nil {
		return inter.ActivationRecord{}, false
	}
	return *s.activation, true
}

// SetActivation records the activation heights. The record is write-once:
// a second call is ignored, so activation never changes once computed.
func (s *Store) SetActivation(rec inter.ActivationRecord) {
	if s.activation != nil {
		return
	}
	cpy := rec
	s.activation = &cpy
}

// MinersOf returns the commitment list of the given block.
// Absent blocks yield an empty list.
func (s *Store) MinersOf(height idx.Block) inter.MinersList {
	return s.miners[height]
}

// AppendCommit appends a commitment to its block's list, preserving
// insertion order. The caller has already validated the commitment.
func (s *Store) AppendCommit(c inter.MinerCommit) {
	s.miners[c.Height] = append(s.miners[c.Height], c)
}

// CycleRecord returns the aggregate record of the given cycle.
// Absent cycles yield a zero record with the cycle index filled in.
func (s *Store) CycleRecord(cycle idx.Epoch) inter.RewardCycleRecord {
	if rec, ok := s.cycles[cycle]; ok {
		return *rec
	}
	return inter.RewardCycleRecord{Cycle: cycle}
}

func (s *Store) cycleRecord(cycle idx.Epoch) *inter.RewardCycleRecord {
	rec, ok := s.cycles[cycle]
	if !ok {
		rec = &inter.RewardCycleRecord{Cycle: cycle}
		s.cycles[cycle] = rec
	}
	return rec
}

// AddCycleCommitted accrues a mining commitment into the cycle's total.
func (s *Store) AddCycleCommitted(cycle idx.Epoch, amount uint64) {
	s.cycleRecord(cycle).TotalCommitted += amount
}

// AddCycleLocked accrues a locked position amount into the cycle's total.
func (s *Store) AddCycleLocked(cycle idx.Epoch, amount uint64) {
	s.cycleRecord(cycle).TotalLocked += amount
}

// PositionsOf returns all positions owned by the given stacker.
func (s *Store) PositionsOf(stacker common.Address) []inter.StackerPosition {
	return s.positions[stacker]
}

// AddPosition records a new locked position. The caller is responsible for
// accruing the per-cycle locked totals alongside.
func (s *Store) AddPosition(p inter.StackerPosition) {
	s.positions[p.Stacker] = append(s.positions[p.Stacker], p)
}

// Claim returns the claim record for a (stacker, cycle) pair. A pair that
// was never claimed yields an unclaimed record.
func (s *Store) Claim(stacker common.Address, cycle idx.Epoch) inter.ClaimRecord {
	if rec, ok := s.claims[claimKey{stacker, cycle}]; ok {
		return *rec
	}
	return inter.ClaimRecord{Stacker: stacker, Cycle: cycle}
}

// MarkClaimed flips the claim flag for a (stacker, cycle) pair. The flag
// only ever goes from false to true.
func (s *Store) MarkClaimed(stacker common.Address, cycle idx.Epoch) {
	key := claimKey{stacker, cycle}
	if rec, ok := s.claims[key]; ok {
		rec.Claimed = true
		return
	}
	s.claims[key] = &inter.ClaimRecord{Stacker: stacker, Cycle: cycle, Claimed: true}
}
