// Package stacking implements the stacking side of the engine: time-locked
// token positions, per-cycle reward distribution, and the one-shot claim
// protocol paying stackers their share of mining revenue.
package stacking

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// Ledger records locked-token positions keyed by stacker and start cycle.
//
// A successful stack creates one position and accrues its amount into the
// locked total of every covered cycle. Preconditions are all evaluated
// before any mutation.
type Ledger struct {
	rules stackmint.Rules
	store *ledger.Store
	log   *logrus.Entry
}

// NewLedger creates a stacking ledger over the given store.
func NewLedger(rules stackmint.Rules, store *ledger.Store) *Ledger {
	return &Ledger{
		rules: rules,
		store: store,
		log:   logrus.WithField("module", "stacking"),
	}
}

// CanStack checks whether a stack operation would be accepted, without any
// side effects. Check order: start cycle, lock period, amount, balance.
//
// The start cycle must be strictly after the cycle containing `now`:
// a position cannot contribute to a cycle already in progress. Before the
// first stacking-eligible block every start cycle is open.
func (l *Ledger) CanStack(stacker common.Address, amount uint64, now idx.Block, startCycle idx.Epoch, lockPeriod uint32) error {
	if current, ok := l.rules.RewardCycleOf(now); ok && startCycle <= current {
		return inter.ErrCannotStack
	}
	if lockPeriod == 0 || lockPeriod > l.rules.Stacking.MaxLockPeriod {
		return inter.ErrCannotStack
	}
	if amount == 0 {
		return inter.ErrCannotStack
	}
	if amount > l.store.Tokens().SpendableOf(stacker) {
		return inter.ErrInsufficientBalance
	}
	return nil
}

// Stack locks amount for lockPeriod cycles starting at startCycle.
func (l *Ledger) Stack(stacker common.Address, amount uint64, now idx.Block, startCycle idx.Epoch, lockPeriod uint32) error {
	if err := l.CanStack(stacker, amount, now, startCycle, lockPeriod); err != nil {
		return err
	}

	pos := inter.StackerPosition{
		Stacker:    stacker,
		Amount:     amount,
		StartCycle: startCycle,
		LockPeriod: lockPeriod,
	}
	l.store.AddPosition(pos)
	for cycle := startCycle; cycle < startCycle+idx.Epoch(lockPeriod); cycle++ {
		l.store.AddCycleLocked(cycle, amount)
	}
	if err := l.store.Tokens().Transfer(stacker, ledger.RewardPoolAddress, amount); err != nil {
		// CanStack already proved the balance.
		return err
	}

	l.log.WithFields(logrus.Fields{
		"stacker": stacker.Hex(),
		"amount":  amount,
		"start":   startCycle,
		"lock":    lockPeriod,
	}).Debug("stacking position locked")
	return nil
}

// LockedAmount returns the sum of the stacker's position amounts covering
// the given cycle, 0 when none do.
func (l *Ledger) LockedAmount(stacker common.Address, cycle idx.Epoch) uint64 {
	locked := uint64(0)
	for _, pos := range l.store.PositionsOf(stacker) {
		if pos.Covers(cycle) {
			locked += pos.Amount
		}
	}
	return locked
}
