package launcher

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"

	"github.com/stackmint-labs/go-stackmint/flags"
)

func initApp() *cli.App {
	app := flags.NewApp()
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)

	app.Commands = []cli.Command{
		{
			Name:   "simulate",
			Usage:  "Run a scripted register-mine-stack-claim round trip",
			Flags:  append(append(flags.NetworkFlags(), flags.SimFlags()...), flags.CommonFlags()...),
			Action: simulate,
		},
		{
			Name:   "checkconfig",
			Usage:  "Assemble and validate the configuration, then print it",
			Flags:  append(flags.NetworkFlags(), flags.CommonFlags()...),
			Action: checkConfig,
		},
	}
	app.Action = func(ctx *cli.Context) error {
		return cli.ShowAppHelp(ctx)
	}
	return app
}

var app *cli.App

func init() {
	app = initApp()
}

// Launch parses the CLI arguments and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

func checkConfig(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Writer, "rules:    %s (network id %#x)\n", cfg.Rules.Name, cfg.Rules.NetworkID)
	fmt.Fprintf(app.Writer, "cycles:   first block %d, length %d, maturity %d\n",
		cfg.Rules.Stacking.FirstStackingBlock, cfg.Rules.Stacking.RewardCycleLength, cfg.Rules.Stacking.RewardMaturity)
	fmt.Fprintf(app.Writer, "mining:   threshold %d, delay %d, max commits %d\n",
		cfg.Rules.Mining.ActivationThreshold, cfg.Rules.Mining.ActivationDelay, cfg.Rules.Mining.MaxCommitsPerBlock)
	fmt.Fprintf(app.Writer, "datadir:  %s\n", cfg.Node.DataDir)
	fmt.Fprintf(app.Writer, "profile:  %s\n", cfg.Sim.Name)
	return nil
}
