package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr     string
	APIToken string `masq:"secret"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RAWLAND_ADDR"),
		},
		&cli.StringFlag{
			Name:        "api-token",
			Usage:       "Bearer token required on the acquire endpoint",
			Required:    true,
			Destination: &c.APIToken,
			Sources:     cli.EnvVars("RAWLAND_API_TOKEN"),
		},
	}
}
