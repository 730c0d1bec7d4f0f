// This file maps CLI context to the launcher's config struct.

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"gopkg.in/urfave/cli.v1"

	"github.com/stackmint-labs/go-stackmint/integration"
	"github.com/stackmint-labs/go-stackmint/stackmint"
)

// Config aggregates everything the launcher needs to assemble an engine.
type Config struct {
	Node    NodeConfig
	Logging LoggingConfig
	Sentry  SentryConfig
	Rules   stackmint.Rules
	Sim     integration.SimProfile
}

type NodeConfig struct {
	DataDir      string
	SnapshotPath string
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
}

type SentryConfig struct {
	DSN string
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	home := GuessHomeDir()
	d := DefaultConfig()
	return Config{
		Node: NodeConfig{
			DataDir: filepath.Join(home, d.Node.DataDir),
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
		Rules: stackmint.FakeNetRules(),
		Sim:   integration.SmokeProfile(),
	}
}

// MakeAllConfigs merges defaults, the selected presets, and CLI flag
// overrides into a single config struct, then validates the result.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if flagIsSet(ctx, "preset") {
		rules, err := rulesByName(flagString(ctx, "preset"))
		if err != nil {
			return Config{}, err
		}
		cfg.Rules = rules
	}
	if ctx.IsSet("sim.profile") {
		profile, err := integration.GetProfileByName(ctx.String("sim.profile"))
		if err != nil {
			return Config{}, err
		}
		cfg.Sim = profile
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid rules: %w", err)
	}
	if err := ensureDir(cfg.Node.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func rulesByName(name string) (stackmint.Rules, error) {
	switch name {
	case "main":
		return stackmint.MainNetRules(), nil
	case "test":
		return stackmint.TestNetRules(), nil
	case "fake":
		return stackmint.FakeNetRules(), nil
	default:
		return stackmint.Rules{}, fmt.Errorf("unknown preset: %q (valid: main, test, fake)", name)
	}
}

// -----------------------------------------------------------------------------
// CLI wiring
// -----------------------------------------------------------------------------

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if flagIsSet(ctx, "datadir") {
		cfg.Node.DataDir = resolvePath(flagString(ctx, "datadir"))
	}
	if flagIsSet(ctx, "snapshot") {
		cfg.Node.SnapshotPath = resolvePath(flagString(ctx, "snapshot"))
	}

	if flagIsSet(ctx, "log.format") {
		cfg.Logging.Format = flagString(ctx, "log.format")
	}
	if flagIsSet(ctx, "log.verbosity") {
		cfg.Logging.Verbosity = flagInt(ctx, "log.verbosity")
	}
	if flagIsSet(ctx, "log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color") || ctx.Bool("log.color")
	}
	if flagIsSet(ctx, "sentry.dsn") {
		cfg.Sentry.DSN = flagString(ctx, "sentry.dsn")
	}

	if ctx.IsSet("rules.cyclelength") {
		cfg.Rules.Stacking.RewardCycleLength = idx.Block(ctx.Uint64("rules.cyclelength"))
	}
	if ctx.IsSet("rules.firstblock") {
		cfg.Rules.Stacking.FirstStackingBlock = idx.Block(ctx.Uint64("rules.firstblock"))
	}
	if ctx.IsSet("rules.threshold") {
		cfg.Rules.Mining.ActivationThreshold = uint32(ctx.Uint("rules.threshold"))
	}
	if ctx.IsSet("rules.delay") {
		cfg.Rules.Mining.ActivationDelay = idx.Block(ctx.Uint64("rules.delay"))
	}
	if ctx.IsSet("rules.maturity") {
		cfg.Rules.Stacking.RewardMaturity = idx.Block(ctx.Uint64("rules.maturity"))
	}

	if ctx.IsSet("sim.miners") {
		cfg.Sim.Miners = ctx.Int("sim.miners")
	}
	if ctx.IsSet("sim.stackers") {
		cfg.Sim.Stackers = ctx.Int("sim.stackers")
	}
	if ctx.IsSet("sim.funds") {
		cfg.Sim.Funds = ctx.Uint64("sim.funds")
	}
}

// Global flags may come in before or after the command name; check both
// scopes so `stackmint --log.verbosity 5 simulate` and
// `stackmint simulate --log.verbosity 5` behave the same.
func flagIsSet(ctx *cli.Context, name string) bool {
	return ctx.GlobalIsSet(name) || ctx.IsSet(name)
}

func flagString(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	return ctx.GlobalString(name)
}

func flagInt(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	return ctx.GlobalInt(name)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
