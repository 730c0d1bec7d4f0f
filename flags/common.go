package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "datadir",
			Usage: "Data directory for snapshots and engine state",
			Value: "~/.stackmint",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug,6=trace)",
			Value: 4,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Sentry DSN for error reporting (disabled when empty)",
		},
		cli.StringFlag{
			Name:  "snapshot",
			Usage: "Path to an engine snapshot to load on start and save on exit",
		},
	}
}
