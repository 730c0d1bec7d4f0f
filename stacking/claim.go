package stacking

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/mining"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// ClaimEngine authorizes and idempotently executes reward claims.
//
// Authorization (CanClaim) and payout (Claim) are separate paths: the
// former checks a caller against a cycle's recorded lottery winner, the
// latter pays a stacker its entitled share exactly once per
// (stacker, cycle) pair.
type ClaimEngine struct {
	rules       stackmint.Rules
	store       *ledger.Store
	selector    *mining.WinnerSelector
	distributor *Distributor
	log         *logrus.Entry
}

// NewClaimEngine creates a claim engine over the given collaborators.
func NewClaimEngine(rules stackmint.Rules, store *ledger.Store, selector *mining.WinnerSelector, distributor *Distributor) *ClaimEngine {
	return &ClaimEngine{
		rules:       rules,
		store:       store,
		selector:    selector,
		distributor: distributor,
		log:         logrus.WithField("module", "stacking"),
	}
}

// CanClaim checks a caller's claim against the cycle's resolved block.
// Check order is fixed: authorization, maturity, claim flag.
//
//   - Unauthorized when the caller is not the recorded winner at
//     winnerIndex of the lottery for the cycle's resolved block.
//   - ImmatureReward while the current height has not yet passed the
//     cycle's reward-maturity height.
//   - AlreadyClaimed when the record is settled.
func (e *ClaimEngine) CanClaim(caller common.Address, winnerIndex int, cycle idx.Epoch, rec inter.ClaimRecord, currentHeight idx.Block) error {
	resolved := e.rules.FirstBlockOf(cycle)
	list := e.store.MinersOf(resolved)

	won, ok := e.selector.WinnerIndexOf(resolved, list)
	if !ok || won != winnerIndex || list[won].Miner != caller {
		return inter.ErrUnauthorized
	}
	if currentHeight <= e.rules.MaturityHeightOf(cycle) {
		return inter.ErrImmatureReward
	}
	if rec.Claimed {
		return inter.ErrAlreadyClaimed
	}
	return nil
}

// Claim pays the stacker its entitled share of the cycle's mining revenue
// and settles the claim record, exactly once.
//
// It fails with NothingToRedeem when the stacker has no position
// contributing to the cycle, or when the record is already settled; a
// repeat claim can never double-pay.
func (e *ClaimEngine) Claim(cycle idx.Epoch, stacker common.Address) error {
	if e.distributor.stacked.LockedAmount(stacker, cycle) == 0 {
		return inter.ErrNothingToRedeem
	}
	if e.store.Claim(stacker, cycle).Claimed {
		return inter.ErrNothingToRedeem
	}

	reward := e.distributor.EntitledReward(stacker, cycle)

	// Settle before paying, so a re-entrant token ledger cannot trigger a
	// second payout for the same pair.
	e.store.MarkClaimed(stacker, cycle)
	if reward > 0 {
		if err := e.store.Tokens().Transfer(ledger.RewardPoolAddress, stacker, reward); err != nil {
			return err
		}
	}

	e.log.WithFields(logrus.Fields{
		"stacker": stacker.Hex(),
		"cycle":   cycle,
		"reward":  reward,
	}).Debug("stacking reward claimed")
	return nil
}
