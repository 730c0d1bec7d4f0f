package stacking

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/mining"
)

type testClaimEnv struct {
	*testStackingEnv
	selector *mining.WinnerSelector
	engine   *ClaimEngine
}

func newTestClaimEnv() *testClaimEnv {
	env := newTestStackingEnv()
	selector := mining.NewWinnerSelector(nil)
	distributor := NewDistributor(env.rules, env.store, env.ledger)
	return &testClaimEnv{
		testStackingEnv: env,
		selector:        selector,
		engine:          NewClaimEngine(env.rules, env.store, selector, distributor),
	}
}

// seedCommit plants a commitment directly into the store (and the pool),
// bypassing the mining gate: claim tests only need the resulting state.
func (env *testClaimEnv) seedCommit(miner common.Address, amount uint64, height idx.Block) {
	env.store.AppendCommit(inter.MinerCommit{Miner: miner, Amount: amount, Height: height})
	if cycle, ok := env.rules.RewardCycleOf(height); ok {
		env.store.AddCycleCommitted(cycle, amount)
	}
	env.tokens.Mint(ledger.RewardPoolAddress, amount)
}

// TestClaim_paysOnceThenRejects verifies the one-shot claim protocol:
// the first claim pays the entitlement and flips the flag, the second
// fails with NothingToRedeem and never double-pays.
func TestClaim_paysOnceThenRejects(t *testing.T) {
	require := require.New(t)
	env := newTestClaimEnv()

	stacker := env.fund("0x01", 500)
	miner := common.HexToAddress("0x02")

	require.NoError(env.ledger.Stack(stacker, 500, 5, 1, 1))
	env.seedCommit(miner, 1000, env.rules.FirstBlockOf(1))

	require.NoError(env.engine.Claim(1, stacker))
	require.Equal(uint64(1000), env.tokens.SpendableOf(stacker))
	require.True(env.store.Claim(stacker, 1).Claimed)

	require.Equal(inter.ErrNothingToRedeem, env.engine.Claim(1, stacker))
	require.Equal(uint64(1000), env.tokens.SpendableOf(stacker), "repeat claim must not pay")
}

// TestClaim_noPosition verifies NothingToRedeem for a stacker with no
// position contributing to the cycle.
func TestClaim_noPosition(t *testing.T) {
	require := require.New(t)
	env := newTestClaimEnv()

	stacker := env.fund("0x01", 500)
	require.NoError(env.ledger.Stack(stacker, 500, 5, 2, 1))

	// Position covers cycle 2 only.
	require.Equal(inter.ErrNothingToRedeem, env.engine.Claim(1, stacker))
	require.Equal(inter.ErrNothingToRedeem, env.engine.Claim(3, stacker))
}

// TestClaim_zeroEntitlementStillSettles verifies that claiming a covered
// cycle with no mining revenue pays 0 but settles the record, so the pair
// cannot be retried later.
func TestClaim_zeroEntitlementStillSettles(t *testing.T) {
	require := require.New(t)
	env := newTestClaimEnv()

	stacker := env.fund("0x01", 100)
	require.NoError(env.ledger.Stack(stacker, 100, 5, 1, 1))

	require.NoError(env.engine.Claim(1, stacker))
	require.Equal(uint64(0), env.tokens.SpendableOf(stacker))
	require.True(env.store.Claim(stacker, 1).Claimed)
	require.Equal(inter.ErrNothingToRedeem, env.engine.Claim(1, stacker))
}

// TestCanClaim_checkOrder verifies the fixed precedence of the claim
// authorization checks: unauthorized, immature, already-claimed.
func TestCanClaim_checkOrder(t *testing.T) {
	require := require.New(t)
	env := newTestClaimEnv()

	winner := common.HexToAddress("0x0a")
	loser := common.HexToAddress("0x0b")
	cycle := idx.Epoch(1)
	resolved := env.rules.FirstBlockOf(cycle)

	// A single commitment: the winner is index 0 regardless of seed.
	env.seedCommit(winner, 100, resolved)

	mature := env.rules.MaturityHeightOf(cycle) + 1
	immature := env.rules.MaturityHeightOf(cycle)
	unclaimed := inter.ClaimRecord{Stacker: winner, Cycle: cycle}
	claimed := inter.ClaimRecord{Stacker: winner, Cycle: cycle, Claimed: true}

	// Unauthorized beats immature and already-claimed: a non-winner with a
	// settled record at an immature height still reports Unauthorized.
	require.Equal(inter.ErrUnauthorized, env.engine.CanClaim(loser, 0, cycle, claimed, immature))
	// A wrong index is unauthorized even for the right caller.
	require.Equal(inter.ErrUnauthorized, env.engine.CanClaim(winner, 1, cycle, unclaimed, mature))

	// Immature beats already-claimed.
	require.Equal(inter.ErrImmatureReward, env.engine.CanClaim(winner, 0, cycle, claimed, immature))

	// Already-claimed is the last gate.
	require.Equal(inter.ErrAlreadyClaimed, env.engine.CanClaim(winner, 0, cycle, claimed, mature))

	// All checks pass.
	require.NoError(env.engine.CanClaim(winner, 0, cycle, unclaimed, mature))
}

// TestCanClaim_emptyResolvedBlock verifies that a cycle whose resolved
// block has no commitments authorizes nobody.
func TestCanClaim_emptyResolvedBlock(t *testing.T) {
	env := newTestClaimEnv()

	rec := inter.ClaimRecord{}
	if err := env.engine.CanClaim(common.HexToAddress("0x01"), 0, 3, rec, 10000); err != inter.ErrUnauthorized {
		t.Fatalf("CanClaim on empty block = %v, want Unauthorized", err)
	}
}

// TestCanClaim_matchesLotteryWinner verifies authorization against the
// actual weighted lottery outcome of the resolved block.
func TestCanClaim_matchesLotteryWinner(t *testing.T) {
	require := require.New(t)
	env := newTestClaimEnv()

	cycle := idx.Epoch(2)
	resolved := env.rules.FirstBlockOf(cycle)
	miners := []common.Address{
		common.HexToAddress("0x0a"),
		common.HexToAddress("0x0b"),
		common.HexToAddress("0x0c"),
	}
	for i, m := range miners {
		env.seedCommit(m, uint64(10*(i+1)), resolved)
	}

	wonIndex, ok := env.selector.WinnerIndexOf(resolved, env.store.MinersOf(resolved))
	require.True(ok)

	mature := env.rules.MaturityHeightOf(cycle) + 1
	rec := inter.ClaimRecord{}

	require.NoError(env.engine.CanClaim(miners[wonIndex], wonIndex, cycle, rec, mature))
	for i, m := range miners {
		if i == wonIndex {
			continue
		}
		require.Equal(inter.ErrUnauthorized, env.engine.CanClaim(m, i, cycle, rec, mature))
	}
}
