package stacking

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// Distributor computes a stacker's proportional share of a cycle's mining
// revenue.
type Distributor struct {
	rules   stackmint.Rules
	store   *ledger.Store
	stacked *Ledger
}

// NewDistributor creates a distributor over the given store and stacking
// ledger.
func NewDistributor(rules stackmint.Rules, store *ledger.Store, stacked *Ledger) *Distributor {
	return &Distributor{
		rules:   rules,
		store:   store,
		stacked: stacked,
	}
}

// EntitledReward returns the stacker's share of the cycle's accrued mining
// commitments:
//
//	floor(locked(stacker, cycle) / totalLocked(cycle) * totalCommitted(cycle))
//
// It is 0 when the cycle has no commitments or the stacker has nothing
// locked in it. Truncation is load-bearing: the shares of all stackers
// never sum to more than the cycle's total commitments.
func (d *Distributor) EntitledReward(stacker common.Address, cycle idx.Epoch) uint64 {
	rec := d.store.CycleRecord(cycle)
	if rec.TotalCommitted == 0 || rec.TotalLocked == 0 {
		return 0
	}
	locked := d.stacked.LockedAmount(stacker, cycle)
	if locked == 0 {
		return 0
	}

	// locked * TotalCommitted can overflow uint64, so the intermediate
	// product goes through big.Int.
	share := new(big.Int).SetUint64(locked)
	share.Mul(share, new(big.Int).SetUint64(rec.TotalCommitted))
	share.Div(share, new(big.Int).SetUint64(rec.TotalLocked))
	return share.Uint64()
}
