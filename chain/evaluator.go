package chain

import (
	"github.com/sirupsen/logrus"

	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/mining"
	"github.com/stackmint-labs/go-stackmint/stacking"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// Evaluator bundles the engine's components over one shared store and
// applies blocks against them.
//
// The evaluator owns the wiring, not the state: all mutable state lives
// in the ledger.Store, so snapshotting and restoring the store is enough
// to snapshot and restore the engine.
type Evaluator struct {
	rules stackmint.Rules
	store *ledger.Store

	gate        *mining.ActivationGate
	mining      *mining.Ledger
	selector    *mining.WinnerSelector
	stacking    *stacking.Ledger
	distributor *stacking.Distributor
	claims      *stacking.ClaimEngine

	log *logrus.Entry
}

// NewEvaluator assembles an engine over the given rules and token ledger.
// A nil seeder selects the default Keccak-based one.
func NewEvaluator(rules stackmint.Rules, tokens ledger.TokenLedger, seeder mining.Seeder) *Evaluator {
	store := ledger.NewStore(tokens)
	gate := mining.NewActivationGate(rules, store)
	stacked := stacking.NewLedger(rules, store)
	selector := mining.NewWinnerSelector(seeder)
	distributor := stacking.NewDistributor(rules, store, stacked)

	return &Evaluator{
		rules:       rules,
		store:       store,
		gate:        gate,
		mining:      mining.NewLedger(rules, store, gate),
		selector:    selector,
		stacking:    stacked,
		distributor: distributor,
		claims:      stacking.NewClaimEngine(rules, store, selector, distributor),
		log:         logrus.WithField("module", "chain"),
	}
}

// Rules returns the evaluator's rules.
func (e *Evaluator) Rules() stackmint.Rules {
	return e.rules
}

// Store returns the evaluator's backing store.
func (e *Evaluator) Store() *ledger.Store {
	return e.store
}

// Gate returns the activation gate.
func (e *Evaluator) Gate() *mining.ActivationGate {
	return e.gate
}

// Mining returns the mining ledger.
func (e *Evaluator) Mining() *mining.Ledger {
	return e.mining
}

// Selector returns the winner selector.
func (e *Evaluator) Selector() *mining.WinnerSelector {
	return e.selector
}

// Stacking returns the stacking ledger.
func (e *Evaluator) Stacking() *stacking.Ledger {
	return e.stacking
}

// Distributor returns the reward distributor.
func (e *Evaluator) Distributor() *stacking.Distributor {
	return e.distributor
}

// Claims returns the claim engine.
func (e *Evaluator) Claims() *stacking.ClaimEngine {
	return e.claims
}

// ApplyBlock applies the block's ops in submission order and returns one
// result per op, at matching indexes. A failed op affects only its own
// result; later ops still run against the state the earlier ones left.
func (e *Evaluator) ApplyBlock(b Block) []Result {
	results := make([]Result, len(b.Ops))
	failed := 0
	for i, op := range b.Ops {
		results[i] = op.apply(e, b.Height)
		if results[i].Err != nil {
			failed++
		}
	}

	e.log.WithFields(logrus.Fields{
		"height": b.Height,
		"ops":    len(b.Ops),
		"failed": failed,
	}).Debug("block applied")
	return results
}
