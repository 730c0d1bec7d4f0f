package launcher

import (
	"fmt"
	"os"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/stackmint-labs/go-stackmint/chain"
	"github.com/stackmint-labs/go-stackmint/ledger"
)

// simulate runs a scripted register-mine-stack-claim round trip against a
// fresh engine, driven by the configured simulation profile. It exists to
// exercise the whole operation surface on a dev network and to produce a
// snapshot that other commands can inspect.
func simulate(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	if err := cfg.Sim.Validate(); err != nil {
		return err
	}

	log := logrus.WithField("module", "launcher")
	log.WithFields(logrus.Fields{
		"rules":   cfg.Rules.Name,
		"profile": cfg.Sim.Name,
	}).Info("starting simulation")

	tokens := ledger.NewMemLedger()
	eval := chain.NewEvaluator(cfg.Rules, tokens, nil)

	if cfg.Node.SnapshotPath != "" {
		if raw, readErr := os.ReadFile(cfg.Node.SnapshotPath); readErr == nil {
			if err := eval.Store().DecodeSnapshot(raw); err != nil {
				return fmt.Errorf("load snapshot %s: %w", cfg.Node.SnapshotPath, err)
			}
			log.WithField("path", cfg.Node.SnapshotPath).Info("snapshot loaded")
		}
	}

	sim := &simulator{cfg: cfg, tokens: tokens, eval: eval, log: log}
	if err := sim.run(); err != nil {
		return err
	}

	if cfg.Node.SnapshotPath != "" {
		raw, encErr := eval.Store().EncodeSnapshot()
		if encErr != nil {
			return encErr
		}
		if err := os.WriteFile(cfg.Node.SnapshotPath, raw, 0o644); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.WithField("path", cfg.Node.SnapshotPath).Info("snapshot saved")
	}
	return nil
}

type simulator struct {
	cfg    Config
	tokens *ledger.MemLedger
	eval   *chain.Evaluator
	log    *logrus.Entry

	miners   []common.Address
	stackers []common.Address
}

// participantAddress derives a stable dev-network address from a role and
// an index, so repeated runs act on the same identities.
func participantAddress(role string, i int) common.Address {
	digest := crypto.Keccak256([]byte(fmt.Sprintf("stackmint/sim/%s/%d", role, i)))
	return common.BytesToAddress(digest[12:])
}

func (s *simulator) run() error {
	rules := s.cfg.Rules
	profile := s.cfg.Sim

	for i := 0; i < profile.Miners; i++ {
		addr := participantAddress("miner", i)
		s.tokens.Mint(addr, profile.Funds)
		s.miners = append(s.miners, addr)
	}
	for i := 0; i < profile.Stackers; i++ {
		addr := participantAddress("stacker", i)
		s.tokens.Mint(addr, profile.Funds)
		s.stackers = append(s.stackers, addr)
	}

	// Registrations: enough miners to reach the threshold. Extra miners
	// stay unregistered; commitment does not require registration.
	var registrations []chain.Op
	for i := 0; i < profile.Miners && uint32(i) < rules.Mining.ActivationThreshold; i++ {
		registrations = append(registrations, chain.OpRegisterMiner{Miner: s.miners[i]})
	}
	if err := s.apply(chain.Block{Height: 1, Ops: registrations}); err != nil {
		return err
	}
	rec, ok := s.eval.Store().Activation()
	if !ok {
		return fmt.Errorf("profile %q cannot reach the activation threshold (%d miners, threshold %d)",
			profile.Name, profile.Miners, rules.Mining.ActivationThreshold)
	}

	// Stack every position before the first simulated cycle begins.
	lock := profile.LockPeriod
	var stacks []chain.Op
	for _, stacker := range s.stackers {
		stacks = append(stacks, chain.OpStackTokens{
			Stacker:    stacker,
			Amount:     profile.StackAmount,
			StartCycle: 1,
			LockPeriod: lock,
		})
	}
	stackHeight := rec.ActivationHeight
	if stackHeight >= rules.FirstBlockOf(1) {
		return fmt.Errorf("rules geometry leaves no room to stack before cycle 1 (activation %d)", stackHeight)
	}
	if err := s.apply(chain.Block{Height: stackHeight, Ops: stacks}); err != nil {
		return err
	}

	// One mined block per cycle: every miner commits into it, then the
	// block's winner is logged.
	for c := 0; c < profile.Cycles; c++ {
		cycle := idx.Epoch(1 + c)
		height := rules.FirstBlockOf(cycle)

		ops := make([]chain.Op, 0, len(s.miners)+1)
		for _, miner := range s.miners {
			ops = append(ops, chain.OpMineTokens{Miner: miner, Amount: profile.CommitAmount})
		}
		ops = append(ops, chain.OpGetWinner{Height: height})
		if err := s.apply(chain.Block{Height: height, Ops: ops}); err != nil {
			return err
		}
	}

	// Claim every covered cycle once it has matured.
	for c := 0; c < profile.Cycles; c++ {
		cycle := idx.Epoch(1 + c)
		if uint32(c) >= lock {
			break // later cycles are not covered by the positions
		}
		ops := make([]chain.Op, 0, len(s.stackers))
		for _, stacker := range s.stackers {
			ops = append(ops, chain.OpClaimReward{Stacker: stacker, Cycle: cycle})
		}
		if err := s.apply(chain.Block{Height: rules.MaturityHeightOf(cycle) + 1, Ops: ops}); err != nil {
			return err
		}
	}

	for i, stacker := range s.stackers {
		s.log.WithFields(logrus.Fields{
			"stacker": stacker.Hex(),
			"balance": s.tokens.SpendableOf(stacker),
		}).Infof("stacker %d settled", i)
	}
	s.log.WithField("pool", s.tokens.SpendableOf(ledger.RewardPoolAddress)).Info("simulation finished")
	return nil
}

// apply runs one block and logs each op's outcome. Expected precondition
// failures (a repeat claim, an uncovered cycle) are logged, not fatal: the
// scripted run keeps going the way a real trace would.
func (s *simulator) apply(b chain.Block) error {
	results := s.eval.ApplyBlock(b)
	for i, res := range results {
		entry := s.log.WithFields(logrus.Fields{"height": b.Height, "op": i})
		if res.Err != nil {
			entry.WithError(res.Err).Warn("op rejected")
			continue
		}
		if res.Defined {
			entry.WithFields(logrus.Fields{
				"winner": res.Winner.Hex(),
				"amount": res.Amount,
			}).Info("op applied")
			continue
		}
		entry.Debug("op applied")
	}
	return nil
}
