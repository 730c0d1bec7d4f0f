package mining

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// Ledger records per-block mining commitments.
//
// A successful commit appends to the block's ordered commitment list,
// accrues the amount into the block's reward cycle, and transfers the
// amount into the reward pool. Every precondition is evaluated before any
// mutation, so a failing commit leaves the store untouched.
type Ledger struct {
	rules stackmint.Rules
	store *ledger.Store
	gate  *ActivationGate
	log   *logrus.Entry
}

// NewLedger creates a mining ledger over the given store and gate.
func NewLedger(rules stackmint.Rules, store *ledger.Store, gate *ActivationGate) *Ledger {
	return &Ledger{
		rules: rules,
		store: store,
		gate:  gate,
		log:   logrus.WithField("module", "mining"),
	}
}

// CanCommit checks whether a commitment would be accepted, without any
// side effects. The check order is fixed and callers rely on it:
// mining-closed, round-full, already-mined, zero-amount, balance.
func (l *Ledger) CanCommit(miner common.Address, amount uint64, height idx.Block) error {
	if !l.gate.IsMiningOpen(height) {
		return inter.ErrMiningClosed
	}
	if len(l.store.MinersOf(height)) >= l.rules.Mining.MaxCommitsPerBlock {
		return inter.ErrRoundFull
	}
	if l.store.MinersOf(height).Has(miner) {
		return inter.ErrAlreadyMined
	}
	if amount == 0 {
		return inter.ErrCannotMine
	}
	if amount > l.store.Tokens().SpendableOf(miner) {
		return inter.ErrInsufficientBalance
	}
	return nil
}

// Commit records a mining commitment for the block at the given height.
func (l *Ledger) Commit(miner common.Address, amount uint64, height idx.Block) error {
	if err := l.CanCommit(miner, amount, height); err != nil {
		return err
	}

	l.store.AppendCommit(inter.MinerCommit{
		Miner:  miner,
		Amount: amount,
		Height: height,
	})
	if cycle, ok := l.rules.RewardCycleOf(height); ok {
		l.store.AddCycleCommitted(cycle, amount)
	}
	if err := l.store.Tokens().Transfer(miner, ledger.RewardPoolAddress, amount); err != nil {
		// CanCommit already proved the balance; the token ledger
		// disagreeing means the collaborator broke its contract.
		return err
	}

	l.log.WithFields(logrus.Fields{
		"miner":  miner.Hex(),
		"amount": amount,
		"height": height,
	}).Debug("mining commitment recorded")
	return nil
}

// TotalOf returns the sum of committed amounts in the given block.
func (l *Ledger) TotalOf(height idx.Block) uint64 {
	return l.store.MinersOf(height).Total()
}

// HasMined reports whether the miner committed in the given block.
func (l *Ledger) HasMined(miner common.Address, height idx.Block) bool {
	return l.store.MinersOf(height).Has(miner)
}
