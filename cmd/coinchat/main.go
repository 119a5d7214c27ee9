// coinchat is a terminal chat client for a market analysis service.
package main

import (
	"fmt"
	"os"

	"github.com/diogo/coinchat/internal/commands"
	"github.com/diogo/coinchat/internal/config"
	"github.com/diogo/coinchat/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	configDir, _ := config.GetConfigDir()
	if err := logger.Init(logger.Config{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
		Stderr:  cfg.Verbose,
		File:    cfg.Logging.File,
	}, configDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	commands.Execute()
}
