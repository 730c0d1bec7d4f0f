package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags selects and overrides the engine's rule preset.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "preset",
			Usage: "Rules preset to run with (main|test|fake)",
			Value: "fake",
		},
		cli.Uint64Flag{
			Name:  "rules.cyclelength",
			Usage: "Override the reward-cycle length in blocks",
		},
		cli.Uint64Flag{
			Name:  "rules.firstblock",
			Usage: "Override the first stacking-eligible block height",
		},
		cli.UintFlag{
			Name:  "rules.threshold",
			Usage: "Override the miner-registration activation threshold",
		},
		cli.Uint64Flag{
			Name:  "rules.delay",
			Usage: "Override the activation delay in blocks",
		},
		cli.Uint64Flag{
			Name:  "rules.maturity",
			Usage: "Override the reward-maturity delay in blocks",
		},
	}
}
