package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before flags override them.

type Defaults struct {
	Node    NodeDefaults
	Logging LoggingDefaults
}

// NodeDefaults captures top-level node settings.

type NodeDefaults struct {
	DataDir      string // Directory under the user's home where the launcher keeps snapshots and state. Relative on purpose: it is joined with the detected home directory.
	SnapshotName string // Default file name for engine snapshots inside the data directory.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // Log level numeric (0=panic, 1=fatal, 2=error, 3=warn, 4=info, 5=debug, 6=trace), mirroring logrus levels.
	Format    string // Log output format (text vs json).
	Color     bool   // Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir:      ".stackmint",
			SnapshotName: "engine.rlp",
		},
		Logging: LoggingDefaults{
			Verbosity: 4,
			Format:    "text",
			Color:     true,
		},
	}
}
