package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/iconlookup/internal/config"
	"github.com/jsvensson/iconlookup/internal/lsp"
)

var version = "dev"

func main() {
	s := lsp.NewServer(version)

	cfg, err := config.LoadOptional(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else if cfg.LogVerbosity > 0 || cfg.LogFile != "" {
		s.Verbosity = cfg.LogVerbosity
		if cfg.LogFile != "" {
			s.LogFile = &cfg.LogFile
		}
	}

	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
