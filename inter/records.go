// Package inter defines StackMint's core ledger records shared between the
// mining, stacking and claim components.
//
// Key concepts:
//   - MinerCommit: one miner's entry in one block's winner lottery
//   - MinersList: the ordered commitment list of a single block
//   - ActivationRecord: the one-shot record created when registrations
//     reach the activation threshold
//   - StackerPosition: a time-locked token position spanning reward cycles
//   - RewardCycleRecord: per-cycle aggregate totals
//   - ClaimRecord: the one-shot flag guarding each (stacker, cycle) payout
//
// These records are plain data. All mutation happens through the ledger
// store and the component operations that own it.
package inter

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// MinerCommit is a single mining commitment: an amount a miner stakes at a
// given block height to enter that block's winner lottery.
type MinerCommit struct {
	// Miner is the committing miner's address.
	Miner common.Address

	// Amount is the committed token amount. Strictly positive.
	Amount uint64

	// Height is the block the commitment belongs to.
	Height idx.Block
}

// MinersList is the ordered sequence of commitments for one block.
// Insertion order is semantically meaningful: it determines lottery
// indexing, so the list must never be reordered.
type MinersList []MinerCommit

// Total returns the sum of all committed amounts in the list.
// An empty list totals 0 with no special-casing.
func (l MinersList) Total() uint64 {
	total := uint64(0)
	for _, c := range l {
		total += c.Amount
	}
	return total
}

// Has reports whether the given miner appears in the list.
func (l MinersList) Has(miner common.Address) bool {
	_, ok := l.IndexOf(miner)
	return ok
}

// IndexOf returns the position of the given miner's commitment in the list.
// The second return value is false when the miner has no entry.
func (l MinersList) IndexOf(miner common.Address) (int, bool) {
	for i, c := range l {
		if c.Miner == miner {
			return i, true
		}
	}
	return 0, false
}

// ActivationRecord pins the block heights around mining activation.
// It is created exactly once, when the registration count first reaches the
// activation threshold, and is immutable from then on.
type ActivationRecord struct {
	// ThresholdHeight is the height at which the threshold was reached.
	ThresholdHeight idx.Block

	// ActivationHeight is the first height at which mining is open:
	// ThresholdHeight plus the fixed activation delay.
	ActivationHeight idx.Block
}

// StackerPosition is a locked-token position. It contributes its Amount to
// the locked total of every cycle in [StartCycle, StartCycle+LockPeriod).
type StackerPosition struct {
	// Stacker is the position owner's address.
	Stacker common.Address

	// Amount is the locked token amount. Strictly positive.
	Amount uint64

	// StartCycle is the first reward cycle the position covers.
	StartCycle idx.Epoch

	// LockPeriod is the number of consecutive cycles covered, in 1..32.
	LockPeriod uint32
}

// Covers reports whether the position contributes to the given cycle.
func (p StackerPosition) Covers(cycle idx.Epoch) bool {
	return cycle >= p.StartCycle && cycle < p.StartCycle+idx.Epoch(p.LockPeriod)
}

// RewardCycleRecord aggregates one reward cycle's totals. Both fields grow
// additively while the cycle is live and are read-only once it has elapsed.
type RewardCycleRecord struct {
	// Cycle is the reward-cycle index.
	Cycle idx.Epoch

	// TotalCommitted is the sum of all mining commitments accrued in the
	// cycle's blocks. This is the revenue pool stackers share.
	TotalCommitted uint64

	// TotalLocked is the sum of all position amounts covering the cycle.
	TotalLocked uint64
}

// ClaimRecord guards the one-shot payout for a (stacker, cycle) pair.
// Claimed flips to true exactly once; any later claim for the same pair is
// rejected.
type ClaimRecord struct {
	Stacker common.Address
	Cycle   idx.Epoch
	Claimed bool
}

func (c MinerCommit) String() string {
	return fmt.Sprintf("{miner=%s amount=%d height=%d}", c.Miner.Hex(), c.Amount, c.Height)
}

func (p StackerPosition) String() string {
	return fmt.Sprintf("{stacker=%s amount=%d cycles=[%d,%d)}",
		p.Stacker.Hex(), p.Amount, p.StartCycle, p.StartCycle+idx.Epoch(p.LockPeriod))
}
