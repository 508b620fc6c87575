package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// HTTP holds outbound HTTP configuration for the sniffer probe and the
// archive download
type HTTP struct {
	ProbeTimeout time.Duration
	AuthToken    string `masq:"secret"`
}

// Flags returns CLI flags for outbound HTTP configuration
func (c *HTTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "probe-timeout",
			Usage:       "Timeout for the headers-only type probe",
			Value:       5 * time.Second,
			Destination: &c.ProbeTimeout,
			Sources:     cli.EnvVars("RAWLAND_PROBE_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "auth-token",
			Usage:       "Bearer token attached to outbound dataset requests",
			Destination: &c.AuthToken,
			Sources:     cli.EnvVars("RAWLAND_AUTH_TOKEN"),
		},
	}
}
