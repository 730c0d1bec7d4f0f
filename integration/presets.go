package integration

import "fmt"

// Package integration provides simulation profiles for driving the engine
// end to end on a dev network. Profiles bundle the scale parameters of a
// scripted run (participant counts, funding, commitment sizes) into named
// presets (Smoke, Lottery, Stacking) so a full register-mine-stack-claim
// round trip can be launched without tweaking a dozen flags.
//
// Usage:
//   profile := integration.SmokeProfile()    // minimal round trip
//   profile := integration.LotteryProfile()  // many miners, lottery-heavy
//   profile := integration.StackingProfile() // many stackers, payout-heavy
//
// Each profile returns a SimProfile struct that the launcher merges with
// CLI overrides before handing it to the simulator.

// SimProfile captures the tunable parameters that vary across simulation
// profiles. It intentionally excludes the protocol rules themselves: those
// come from the rules preset, so the same profile can run against fake or
// main geometry.
type SimProfile struct {
	Name         string // human-readable identifier (e.g., "smoke", "lottery")
	Miners       int    // number of simulated miners registered at genesis
	Stackers     int    // number of simulated stackers
	Funds        uint64 // genesis balance minted to each participant
	CommitAmount uint64 // base amount each miner commits per mined block
	StackAmount  uint64 // base amount each stacker locks per position
	LockPeriod   uint32 // cycles each position covers
	Cycles       int    // reward cycles the scripted run spans
}

func DefaultProfile() SimProfile {

	return SimProfile{
		Name:         "default",
		Miners:       2,
		Stackers:     2,
		Funds:        1_000_000, // enough for every participant to act in every cycle
		CommitAmount: 1000,
		StackAmount:  500,
		LockPeriod:   2,
		Cycles:       3,
	}
}

// SmokeProfile returns the smallest profile that still exercises the whole
// operation surface: one miner, one stacker, one cycle of activity plus
// the maturity tail needed to claim.
//
// Use cases:
//   - Quick sanity runs during development
//   - CI smoke checks
func SmokeProfile() SimProfile {
	p := DefaultProfile()
	p.Name = "smoke"
	p.Miners = 1
	p.Stackers = 1
	p.Cycles = 1
	p.LockPeriod = 1
	return p
}

// LotteryProfile returns a miner-heavy profile. Many miners commit into
// every block, so the weighted lottery and the per-block commitment cap
// get real contention.
//
// Trade-offs:
//   - Runs longer than smoke (more ops per block)
//   - Reward splits stay trivial (few stackers)
func LotteryProfile() SimProfile {
	p := DefaultProfile()
	p.Name = "lottery"
	p.Miners = 16
	p.Stackers = 1
	p.CommitAmount = 250
	p.Cycles = 4
	return p
}

// StackingProfile returns a stacker-heavy profile. Many positions with
// different lock periods overlap, so per-cycle locked totals, proportional
// splits and truncation get exercised.
func StackingProfile() SimProfile {
	p := DefaultProfile()
	p.Name = "stacking"
	p.Miners = 2
	p.Stackers = 12
	p.StackAmount = 300
	p.LockPeriod = 3
	p.Cycles = 5
	return p
}

// GetProfileByName looks up a profile by its string identifier. This
// helper backs CLI flags like --sim.profile=lottery.
func GetProfileByName(name string) (SimProfile, error) {
	switch name {
	case "smoke":
		return SmokeProfile(), nil
	case "lottery":
		return LotteryProfile(), nil
	case "stacking":
		return StackingProfile(), nil
	case "default":
		return DefaultProfile(), nil
	default:
		return SimProfile{}, fmt.Errorf("unknown profile: %q (valid: smoke, lottery, stacking, default)", name)
	}
}

// Validate rejects profiles that cannot drive a meaningful run.
func (p SimProfile) Validate() error {
	if p.Miners <= 0 {
		return fmt.Errorf("profile %q: at least one miner required", p.Name)
	}
	if p.Stackers <= 0 {
		return fmt.Errorf("profile %q: at least one stacker required", p.Name)
	}
	if p.CommitAmount == 0 || p.StackAmount == 0 {
		return fmt.Errorf("profile %q: amounts must be positive", p.Name)
	}
	if p.LockPeriod == 0 || p.Cycles <= 0 {
		return fmt.Errorf("profile %q: lock period and cycle count must be positive", p.Name)
	}
	return nil
}
