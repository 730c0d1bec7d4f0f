package mining

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/stackmint-labs/go-stackmint/inter"
)

// Seeder derives the lottery's pseudo-random value from a block height.
// Implementations must be pure: the same height always yields the same
// seed. The engine consumes the seed, it does not generate randomness.
type Seeder interface {
	Seed(height idx.Block) uint64
}

// KeccakSeeder is the default Seeder: the first 8 bytes, big-endian, of
// Keccak256 over the big-endian height. A deterministic pseudo-random
// process in the H(height)[:8] style.
type KeccakSeeder struct{}

var _ Seeder = (*KeccakSeeder)(nil)

// Seed implements Seeder.
func (KeccakSeeder) Seed(height idx.Block) uint64 {
	digest := crypto.Keccak256(bigendian.Uint64ToBytes(uint64(height)))
	return bigendian.BytesToUint64(digest[:8])
}

// WinnerSelector runs the weighted lottery over a block's commitments.
//
// Each commitment owns the half-open interval
// [cumulative_before, cumulative_after) of the total committed amount; the
// commitment whose interval contains the seed-derived value wins. Win
// probability is therefore proportional to the committed amount, with ties
// broken by earliest insertion order.
type WinnerSelector struct {
	seeder Seeder
}

// NewWinnerSelector creates a selector over the given seeder.
// A nil seeder selects the default KeccakSeeder.
func NewWinnerSelector(seeder Seeder) *WinnerSelector {
	if seeder == nil {
		seeder = KeccakSeeder{}
	}
	return &WinnerSelector{seeder: seeder}
}

// WinnerIndexOf returns the index of the winning commitment in the list.
// The second return value is false when the list is empty.
func (s *WinnerSelector) WinnerIndexOf(height idx.Block, list inter.MinersList) (int, bool) {
	total := list.Total()
	if total == 0 {
		// Commitment amounts are strictly positive, so a zero total means
		// an empty list.
		return 0, false
	}

	r := s.seeder.Seed(height) % total

	cumulative := uint64(0)
	for i, c := range list {
		cumulative += c.Amount
		if r < cumulative {
			return i, true
		}
	}
	// Unreachable: r < total and the cumulative sum ends at total.
	return len(list) - 1, true
}

// WinnerOf returns the winning commitment of the block's lottery, or false
// when the list is empty. Repeated calls with the same height and list
// always select the same winner.
func (s *WinnerSelector) WinnerOf(height idx.Block, list inter.MinersList) (inter.MinerCommit, bool) {
	i, ok := s.WinnerIndexOf(height, list)
	if !ok {
		return inter.MinerCommit{}, false
	}
	return list[i], true
}
