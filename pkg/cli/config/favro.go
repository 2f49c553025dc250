package config

import "github.com/urfave/cli/v3"

// Favro holds Favro API configuration. Org and Auth are optional: when
// either is missing herald runs dry, extracting references and
// formatting comments without posting anything.
type Favro struct {
	Prefix string
	Org    string
	Auth   string `masq:"secret"`
}

// Flags returns CLI flags for Favro configuration
func (c *Favro) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "favro-prefix",
			Usage:       "Card ID prefix to scan for (e.g. \"Sou\" matches Sou-123)",
			Required:    true,
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("HERALD_FAVRO_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "favro-org",
			Usage:       "Favro organization ID",
			Destination: &c.Org,
			Sources:     cli.EnvVars("HERALD_FAVRO_ORG"),
		},
		&cli.StringFlag{
			Name:        "favro-auth",
			Usage:       "Favro credentials as email:api-token",
			Destination: &c.Auth,
			Sources:     cli.EnvVars("HERALD_FAVRO_AUTH"),
		},
	}
}

// Enabled reports whether posting is configured; when false herald runs
// in dry-run mode
func (c *Favro) Enabled() bool {
	return c.Org != "" && c.Auth != ""
}
