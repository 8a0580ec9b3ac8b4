package config

import "github.com/urfave/cli/v3"

// History holds download history configuration. An empty path disables
// history recording.
type History struct {
	Path string
}

// Flags returns CLI flags for history configuration
func (c *History) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "history-db",
			Usage:       "Path to SQLite download history database (empty disables history)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("STOREGET_HISTORY_DB"),
		},
	}
}

// ApplyFile fills unset values from the config file
func (c *History) ApplyFile(f *File) {
	if c.Path == "" {
		c.Path = f.History.Path
	}
}

// Enabled reports whether history recording is configured
func (c *History) Enabled() bool {
	return c.Path != ""
}
