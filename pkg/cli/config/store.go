package config

import "github.com/urfave/cli/v3"

// Store holds store catalog configuration. Empty values fall back to the
// msstore package defaults.
type Store struct {
	APIBase string
	Market  string
	Locale  string
}

// Flags returns CLI flags for store catalog configuration
func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-base",
			Usage:       "Store catalog API base URL",
			Destination: &c.APIBase,
			Sources:     cli.EnvVars("STOREGET_API_BASE"),
		},
		&cli.StringFlag{
			Name:        "market",
			Usage:       "Store market (e.g. US, JP)",
			Destination: &c.Market,
			Sources:     cli.EnvVars("STOREGET_MARKET"),
		},
		&cli.StringFlag{
			Name:        "locale",
			Usage:       "Catalog query locale (e.g. en-us)",
			Destination: &c.Locale,
			Sources:     cli.EnvVars("STOREGET_LOCALE"),
		},
	}
}

// ApplyFile fills unset values from the config file
func (c *Store) ApplyFile(f *File) {
	if c.APIBase == "" {
		c.APIBase = f.Store.APIBase
	}
	if c.Market == "" {
		c.Market = f.Store.Market
	}
	if c.Locale == "" {
		c.Locale = f.Store.Locale
	}
}
