// Package mining implements the proof-of-burn mining side of the engine:
// miner registration and activation gating, per-block commitment
// bookkeeping, and the deterministic weighted winner lottery.
//
// All components operate on a shared ledger.Store reference and a fixed
// stackmint.Rules value; they hold no state of their own.
package mining

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// ActivationGate tracks miner registrations and decides when mining opens.
//
// Registrations are bounded by the activation threshold: the registration
// that reaches the threshold locks the set and pins the activation record
// (threshold height plus the fixed activation delay). The record is
// write-once; activation never moves once computed.
type ActivationGate struct {
	rules stackmint.Rules
	store *ledger.Store
	log   *logrus.Entry
}

// NewActivationGate creates a gate over the given store.
func NewActivationGate(rules stackmint.Rules, store *ledger.Store) *ActivationGate {
	return &ActivationGate{
		rules: rules,
		store: store,
		log:   logrus.WithField("module", "mining"),
	}
}

// Register adds a miner to the registered set at the given height.
// It fails with AlreadyRegistered for a repeat registration and with
// ThresholdReached once the set is full. The registration that reaches the
// threshold records the activation heights as a side effect.
func (g *ActivationGate) Register(miner common.Address, height idx.Block) error {
	if g.store.IsRegistered(miner) {
		return inter.ErrAlreadyRegistered
	}
	if g.store.RegisteredCount() >= g.rules.Mining.ActivationThreshold {
		return inter.ErrThresholdReached
	}

	g.store.SetRegistered(miner)

	if g.store.RegisteredCount() == g.rules.Mining.ActivationThreshold {
		rec := inter.ActivationRecord{
			ThresholdHeight:  height,
			ActivationHeight: height + g.rules.Mining.ActivationDelay,
		}
		g.store.SetActivation(rec)
		g.log.WithFields(logrus.Fields{
			"height":     height,
			"activation": rec.ActivationHeight,
		}).Info("activation threshold reached, mining opens after delay")
	}
	return nil
}

// IsMiningOpen reports whether mining is open at the given height: the
// activation record exists and the height has reached the activation height.
func (g *ActivationGate) IsMiningOpen(height idx.Block) bool {
	rec, ok := g.store.Activation()
	return ok && height >= rec.ActivationHeight
}
