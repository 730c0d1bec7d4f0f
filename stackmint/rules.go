// Package stackmint defines the protocol rules and configuration parameters
// for the StackMint token-economics engine.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Mining rules: activation threshold, activation delay, commit caps
//   - Stacking rules: reward-cycle geometry, lock-period bounds, maturity delay
//   - The reward-cycle clock mapping block heights to cycle indices and back
//
// The Rules type serves as the central configuration structure that defines
// all protocol-critical parameters for a given StackMint deployment. Rules
// are fixed per process: components take a Rules value at construction and
// never mutate it.
package stackmint

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// Network identification constants
const (
	// MainNetworkID is the chain ID for the StackMint mainnet (0x534d = "SM").
	MainNetworkID uint64 = 0x534d

	// TestNetworkID is the chain ID for the StackMint testnet.
	TestNetworkID uint64 = 0x534e

	// FakeNetworkID is the chain ID for local/fake networks used in testing.
	FakeNetworkID uint64 = 0x534f
)

// MiningRules defines the parameters gating block-commitment mining.
type MiningRules struct {
	// ActivationThreshold is the number of distinct miner registrations
	// required before mining opens. Once the threshold is reached the
	// registration set is locked and no further registrations are accepted.
	ActivationThreshold uint32

	// ActivationDelay is the number of blocks between the registration that
	// reaches the threshold and the first block at which mining is open.
	ActivationDelay idx.Block

	// MaxCommitsPerBlock caps the length of a single block's commitment
	// list. Commits past the cap are rejected with RoundFull.
	MaxCommitsPerBlock int
}

// StackingRules defines the reward-cycle geometry and lock bounds.
type StackingRules struct {
	// FirstStackingBlock is the first block height eligible for stacking.
	// The reward-cycle clock is undefined below this height.
	FirstStackingBlock idx.Block

	// RewardCycleLength is the number of blocks per reward cycle.
	RewardCycleLength idx.Block

	// MaxLockPeriod is the maximum number of consecutive cycles a single
	// stacking position may cover.
	MaxLockPeriod uint32

	// RewardMaturity is the number of blocks past the end of a cycle before
	// claims against that cycle open. This leaves room for the cycle's last
	// block to be contested before payouts begin.
	RewardMaturity idx.Block
}

// Rules describes the complete configuration for a StackMint network.
// This is the main type used throughout the codebase to access protocol
// parameters.
type Rules struct {
	// Name is the human-readable network identifier (e.g. "main", "fake").
	Name string

	// NetworkID is the numeric chain identifier.
	NetworkID uint64

	// Mining holds the activation and commitment rules.
	Mining MiningRules

	// Stacking holds the reward-cycle and lock rules.
	Stacking StackingRules
}

// RewardCycleOf maps a block height to its reward-cycle index.
// The second return value is false when height precedes the first
// stacking-eligible block, where the clock is undefined.
func (r Rules) RewardCycleOf(height idx.Block) (idx.Epoch, bool) {
	if height < r.Stacking.FirstStackingBlock {
		return 0, false
	}
	return idx.Epoch((height - r.Stacking.FirstStackingBlock) / r.Stacking.RewardCycleLength), true
}

// FirstBlockOf returns the first block height of the given reward cycle.
// It is the exact inverse of RewardCycleOf on cycle boundaries:
// RewardCycleOf(FirstBlockOf(c)) == c for every cycle c.
func (r Rules) FirstBlockOf(cycle idx.Epoch) idx.Block {
	return r.Stacking.FirstStackingBlock + idx.Block(cycle)*r.Stacking.RewardCycleLength
}

// MaturityHeightOf returns the height at which claims against the given
// cycle open. A claim is authorized only once the current height has passed
// this value, i.e. the cycle has fully elapsed and the maturity delay has
// run out.
func (r Rules) MaturityHeightOf(cycle idx.Epoch) idx.Block {
	return r.FirstBlockOf(cycle+1) + r.Stacking.RewardMaturity
}

// Validate checks the rules for internal consistency. It is called by the
// launcher after assembling a config, so a malformed preset fails fast
// instead of producing undefined cycle arithmetic at runtime.
func (r Rules) Validate() error {
	if r.Stacking.RewardCycleLength == 0 {
		return errors.New("reward cycle length must be positive")
	}
	if r.Mining.ActivationThreshold == 0 {
		return errors.New("activation threshold must be positive")
	}
	if r.Mining.MaxCommitsPerBlock <= 0 {
		return errors.New("max commits per block must be positive")
	}
	if r.Stacking.MaxLockPeriod == 0 {
		return fmt.Errorf("max lock period must be positive")
	}
	return nil
}

// MainNetRules returns the configuration rules for the StackMint mainnet.
// This is the production configuration with conservative parameters.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Mining:    DefaultMiningRules(),
		Stacking:  DefaultStackingRules(),
	}
}

// TestNetRules returns the configuration rules for the StackMint testnet.
// Testnet uses the same geometry as mainnet for realistic testing.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Mining:    DefaultMiningRules(),
		Stacking:  DefaultStackingRules(),
	}
}

// FakeNetRules returns the configuration rules for fake/local networks.
// Fake networks use accelerated parameters so a full
// register-mine-stack-claim round trip fits in a short test run:
//   - a single registration activates mining after a handful of blocks
//   - short reward cycles and a minimal maturity delay
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Mining: MiningRules{
			ActivationThreshold: 1,
			ActivationDelay:     5,
			MaxCommitsPerBlock:  MaxCommitsPerBlock,
		},
		Stacking: StackingRules{
			FirstStackingBlock: 10,
			RewardCycleLength:  20,
			MaxLockPeriod:      MaxLockPeriod,
			RewardMaturity:     2,
		},
	}
}

// Protocol-wide caps shared by every network preset.
const (
	// MaxCommitsPerBlock is the protocol cap on commitments per block.
	MaxCommitsPerBlock = 32

	// MaxLockPeriod is the protocol cap on lock periods, in cycles.
	MaxLockPeriod = 32
)

// DefaultMiningRules returns the mainnet mining configuration.
func DefaultMiningRules() MiningRules {
	return MiningRules{
		ActivationThreshold: 20,   // 20 independent miners before the lottery opens
		ActivationDelay:     150,  // ~one day of settle time after the threshold
		MaxCommitsPerBlock:  MaxCommitsPerBlock,
	}
}

// DefaultStackingRules returns the mainnet stacking configuration.
func DefaultStackingRules() StackingRules {
	return StackingRules{
		FirstStackingBlock: 24000, // stacking opens well after chain launch
		RewardCycleLength:  2100,  // ~two weeks per cycle
		MaxLockPeriod:      MaxLockPeriod,
		RewardMaturity:     100, // payouts open 100 blocks after a cycle ends
	}
}
