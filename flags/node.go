package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// SimFlags holds knobs specific to the simulate command (profile, scale, funding).

func SimFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "sim.profile",
			Usage: "Simulation profile (smoke|lottery|stacking)",
			Value: "smoke",
		},
		cli.IntFlag{
			Name:  "sim.miners",
			Usage: "Override the number of simulated miners",
		},
		cli.IntFlag{
			Name:  "sim.stackers",
			Usage: "Override the number of simulated stackers",
		},
		cli.Uint64Flag{
			Name:  "sim.funds",
			Usage: "Override the genesis balance minted to each participant",
		},
	}
}
