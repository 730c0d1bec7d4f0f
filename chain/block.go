// Package chain drives the engine block by block. A Block is an ordered
// list of operations pinned to a height; the Evaluator applies each
// operation against the shared store and produces a result list parallel
// to the operation list.
//
// Key concepts:
//   - Block: a height plus the operations submitted in it
//   - Op: one state-changing or read-only operation
//   - Result: per-op outcome, index i of the results answers op i
//
// Operations inside a block are applied strictly in submission order, and
// each operation is atomic: all of its preconditions are checked before
// any of its state changes, so a failed operation contributes an error
// result and nothing else.
package chain

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// Block is one evaluation unit: every op in Ops executes at Height.
type Block struct {
	Height idx.Block
	Ops    []Op
}

// Op is one operation inside a block. The concrete types below form a
// closed set; an op is applied by the Evaluator at the block's height.
type Op interface {
	apply(e *Evaluator, height idx.Block) Result
}

// Result is the outcome of one applied op. Err is nil on success; the
// value fields are populated only by the query ops that answer them.
type Result struct {
	Err error

	// Amount answers the numeric queries: block commit totals and
	// entitled rewards.
	Amount uint64

	// Winner answers OpGetWinner. Defined reports whether the answer
	// exists (a block with commitments, a height with a defined cycle).
	Winner  common.Address
	Cycle   idx.Epoch
	Defined bool
}

// OpRegisterMiner registers a miner with the activation gate.
type OpRegisterMiner struct {
	Miner common.Address
}

// OpMineTokens commits Amount for Miner in the current block's lottery.
type OpMineTokens struct {
	Miner  common.Address
	Amount uint64
}

// OpStackTokens locks Amount for Stacker over LockPeriod cycles starting
// at StartCycle.
type OpStackTokens struct {
	Stacker    common.Address
	Amount     uint64
	StartCycle idx.Epoch
	LockPeriod uint32
}

// OpClaimReward redeems Stacker's share of Cycle's mining revenue.
type OpClaimReward struct {
	Stacker common.Address
	Cycle   idx.Epoch
}

// OpGetCommitTotal queries the committed total of the block at Height.
type OpGetCommitTotal struct {
	Height idx.Block
}

// OpGetWinner queries the lottery winner of the block at Height.
type OpGetWinner struct {
	Height idx.Block
}

// OpGetEntitledReward queries Stacker's entitled share of Cycle.
type OpGetEntitledReward struct {
	Stacker common.Address
	Cycle   idx.Epoch
}

// OpGetRewardCycle queries the reward cycle containing Height.
type OpGetRewardCycle struct {
	Height idx.Block
}

func (op OpRegisterMiner) apply(e *Evaluator, height idx.Block) Result {
	return Result{Err: e.gate.Register(op.Miner, height)}
}

func (op OpMineTokens) apply(e *Evaluator, height idx.Block) Result {
	return Result{Err: e.mining.Commit(op.Miner, op.Amount, height)}
}

func (op OpStackTokens) apply(e *Evaluator, height idx.Block) Result {
	return Result{Err: e.stacking.Stack(op.Stacker, op.Amount, height, op.StartCycle, op.LockPeriod)}
}

func (op OpClaimReward) apply(e *Evaluator, height idx.Block) Result {
	return Result{Err: e.claims.Claim(op.Cycle, op.Stacker)}
}

func (op OpGetCommitTotal) apply(e *Evaluator, height idx.Block) Result {
	return Result{Amount: e.mining.TotalOf(op.Height)}
}

func (op OpGetWinner) apply(e *Evaluator, height idx.Block) Result {
	commit, ok := e.selector.WinnerOf(op.Height, e.store.MinersOf(op.Height))
	return Result{Winner: commit.Miner, Amount: commit.Amount, Defined: ok}
}

func (op OpGetEntitledReward) apply(e *Evaluator, height idx.Block) Result {
	return Result{Amount: e.distributor.EntitledReward(op.Stacker, op.Cycle)}
}

func (op OpGetRewardCycle) apply(e *Evaluator, height idx.Block) Result {
	cycle, ok := e.rules.RewardCycleOf(op.Height)
	return Result{Cycle: cycle, Defined: ok}
}
