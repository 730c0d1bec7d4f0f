package stacking

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/stackmint-labs/go-stackmint/inter"
	"github.com/stackmint-labs/go-stackmint/ledger"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

type testStackingEnv struct {
	rules  stackmint.Rules
	store  *ledger.Store
	tokens *ledger.MemLedger
	ledger *Ledger
}

func newTestStackingEnv() *testStackingEnv {
	rules := stackmint.FakeNetRules()
	tokens := ledger.NewMemLedger()
	store := ledger.NewStore(tokens)
	return &testStackingEnv{
		rules:  rules,
		store:  store,
		tokens: tokens,
		ledger: NewLedger(rules, store),
	}
}

func (env *testStackingEnv) fund(hex string, amount uint64) common.Address {
	addr := common.HexToAddress(hex)
	env.tokens.Mint(addr, amount)
	return addr
}

// TestStack_validation verifies the CannotStack conditions: a start cycle
// not strictly after the current one, a lock period of 0 or above the cap,
// and a zero amount; then InsufficientBalance last.
func TestStack_validation(t *testing.T) {
	env := newTestStackingEnv()
	stacker := env.fund("0x01", 1000)

	// FakeNet: FirstStackingBlock=10, RewardCycleLength=20.
	// Height 35 is inside cycle 1.
	now := idx.Block(35)

	tests := []struct {
		name   string
		amount uint64
		start  idx.Epoch
		lock   uint32
		want   error
	}{
		{"start in the past", 100, 0, 1, inter.ErrCannotStack},
		{"start is current cycle", 100, 1, 1, inter.ErrCannotStack},
		{"zero lock period", 100, 2, 0, inter.ErrCannotStack},
		{"lock period above cap", 100, 2, stackmint.MaxLockPeriod + 1, inter.ErrCannotStack},
		{"zero amount", 0, 2, 1, inter.ErrCannotStack},
		{"insufficient balance", 1001, 2, 1, inter.ErrInsufficientBalance},
		{"valid", 1000, 2, stackmint.MaxLockPeriod, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.ledger.CanStack(stacker, tt.amount, now, tt.start, tt.lock)
			if err != tt.want {
				t.Errorf("CanStack = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestStack_startBeforeFirstStackingBlock verifies that before the first
// stacking-eligible block the clock is undefined and any start cycle,
// including cycle 0, is open.
func TestStack_startBeforeFirstStackingBlock(t *testing.T) {
	require := require.New(t)
	env := newTestStackingEnv()
	stacker := env.fund("0x01", 500)

	require.NoError(env.ledger.Stack(stacker, 500, 5, 0, 2))
	require.Equal(uint64(500), env.ledger.LockedAmount(stacker, 0))
	require.Equal(uint64(500), env.ledger.LockedAmount(stacker, 1))
	require.Equal(uint64(0), env.ledger.LockedAmount(stacker, 2))
}

// TestStack_accruesLockedTotals verifies that a position contributes its
// amount to every covered cycle, and that the per-cycle locked total is
// the sum over all contributing positions.
func TestStack_accruesLockedTotals(t *testing.T) {
	require := require.New(t)
	env := newTestStackingEnv()

	a := env.fund("0x0a", 1000)
	b := env.fund("0x0b", 1000)
	now := idx.Block(5)

	require.NoError(env.ledger.Stack(a, 300, now, 1, 3)) // cycles 1,2,3
	require.NoError(env.ledger.Stack(b, 200, now, 2, 2)) // cycles 2,3
	require.NoError(env.ledger.Stack(a, 100, now, 3, 1)) // cycle 3

	tests := []struct {
		cycle idx.Epoch
		total uint64
	}{
		{0, 0},
		{1, 300},
		{2, 500},
		{3, 600},
		{4, 0},
	}
	for _, tt := range tests {
		require.Equal(tt.total, env.store.CycleRecord(tt.cycle).TotalLocked, "cycle %d", tt.cycle)
	}

	// LockedAmount sums a stacker's own overlapping positions.
	require.Equal(uint64(300), env.ledger.LockedAmount(a, 2))
	require.Equal(uint64(400), env.ledger.LockedAmount(a, 3))
	require.Equal(uint64(200), env.ledger.LockedAmount(b, 3))
	require.Equal(uint64(0), env.ledger.LockedAmount(b, 1))
}

// TestStack_transfersToPool verifies the stacker-to-pool transfer and that
// a failing stack moves nothing.
func TestStack_transfersToPool(t *testing.T) {
	require := require.New(t)
	env := newTestStackingEnv()
	stacker := env.fund("0x01", 400)

	require.NoError(env.ledger.Stack(stacker, 250, 5, 1, 2))
	require.Equal(uint64(150), env.tokens.SpendableOf(stacker))
	require.Equal(uint64(250), env.tokens.SpendableOf(ledger.RewardPoolAddress))

	require.Equal(inter.ErrInsufficientBalance, env.ledger.Stack(stacker, 151, 5, 1, 2))
	require.Equal(uint64(150), env.tokens.SpendableOf(stacker))
	require.Equal(uint64(250), env.tokens.SpendableOf(ledger.RewardPoolAddress))
	require.Equal(uint64(250), env.store.CycleRecord(1).TotalLocked, "failed stack must not accrue")
}
