package inter

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// TestMinersListTotal verifies commitment totals, including the empty-list
// base case which must be 0 without special-casing.
func TestMinersListTotal(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(0), MinersList(nil).Total())
	require.Equal(uint64(0), MinersList{}.Total())

	list := MinersList{
		{Miner: common.HexToAddress("0x01"), Amount: 30, Height: 7},
		{Miner: common.HexToAddress("0x02"), Amount: 70, Height: 7},
	}
	require.Equal(uint64(100), list.Total())
}

// TestMinersListMembership verifies Has and IndexOf over insertion order.
func TestMinersListMembership(t *testing.T) {
	require := require.New(t)

	a := common.HexToAddress("0xaa")
	b := common.HexToAddress("0xbb")
	c := common.HexToAddress("0xcc")

	list := MinersList{
		{Miner: a, Amount: 1, Height: 3},
		{Miner: b, Amount: 2, Height: 3},
	}

	require.True(list.Has(a))
	require.True(list.Has(b))
	require.False(list.Has(c))

	i, ok := list.IndexOf(b)
	require.True(ok)
	require.Equal(1, i)

	_, ok = list.IndexOf(c)
	require.False(ok)
}

// TestStackerPositionCovers verifies the half-open cycle interval of a
// position: [StartCycle, StartCycle+LockPeriod).
func TestStackerPositionCovers(t *testing.T) {
	pos := StackerPosition{
		Stacker:    common.HexToAddress("0x01"),
		Amount:     500,
		StartCycle: 4,
		LockPeriod: 3,
	}

	tests := []struct {
		cycle idx.Epoch
		want  bool
	}{
		{3, false}, // before start
		{4, true},  // first covered cycle
		{5, true},
		{6, true},  // last covered cycle
		{7, false}, // past the half-open end
	}
	for _, tt := range tests {
		if got := pos.Covers(tt.cycle); got != tt.want {
			t.Errorf("Covers(%d) = %v, want %v", tt.cycle, got, tt.want)
		}
	}
}

// TestErrorSentinels verifies that the closed error taxonomy works with
// errors.Is by pointer identity and exposes stable codes and messages.
func TestErrorSentinels(t *testing.T) {
	require := require.New(t)

	all := []*Error{
		ErrAlreadyRegistered, ErrThresholdReached, ErrMiningClosed,
		ErrRoundFull, ErrAlreadyMined, ErrCannotMine,
		ErrInsufficientBalance, ErrCannotStack, ErrUnauthorized,
		ErrImmatureReward, ErrAlreadyClaimed, ErrNothingToRedeem,
	}

	seen := map[Code]bool{}
	for _, e := range all {
		require.NotEmpty(e.Error())
		require.NotEqual("unknown error code", e.Error())
		require.False(seen[e.Code()], "duplicate code %d", e.Code())
		seen[e.Code()] = true

		// Sentinels match themselves and nothing else.
		require.True(errors.Is(e, e))
	}
	require.False(errors.Is(ErrCannotMine, ErrCannotStack))
	require.Equal("nothing to redeem", ErrNothingToRedeem.Error())
}
