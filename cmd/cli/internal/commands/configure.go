package commands

import (
	"context"
	"fmt"

	"github.com/cycks/loftier-cli/internal/config"
)

// ConfigureCmd writes the CLI configuration file.
type ConfigureCmd struct {
	Server  string `help:"Platform server URL" required:""`
	APIPath string `name:"api-path" help:"API base path" default:"/api"`
	Output  string `help:"Default output format" default:"table"`
}

func (c *ConfigureCmd) Run(ctx context.Context, globals *Globals) error {
	setupLogging(globals.Debug)

	cfg := &config.Config{
		Server:  c.Server,
		APIPath: c.APIPath,
		Output:  c.Output,
	}
	if err := config.Save(globals.Home, cfg); err != nil {
		return err
	}

	fmt.Printf("Configured server %s (API at %s)\n", cfg.Server, cfg.BaseURL())
	return nil
}
