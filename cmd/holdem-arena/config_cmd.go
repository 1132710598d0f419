package main

import (
	"encoding/json"
	"os"
)

// ConfigCmd prints the effective configuration after defaults are applied.
type ConfigCmd struct {
	arenaFlags
}

func (c *ConfigCmd) Run() error {
	cfg, _, err := c.setup()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
