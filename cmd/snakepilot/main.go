package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	width := flag.Int("width", 0, "default board width")
	height := flag.Int("height", 0, "default board height")
	seed := flag.Int64("seed", 0, "random seed for food placement, 0 seeds from the clock")
	autopilot := flag.Bool("autopilot", false, "start every game with autopilot on")
	script := flag.String("script", "", "Lua strategy script used by autopilot")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *width > 0 {
		cfg.Board.Width = *width
	}
	if *height > 0 {
		cfg.Board.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *autopilot {
		cfg.Autopilot.Enabled = true
	}
	if *script != "" {
		cfg.Autopilot.Script = *script
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// the alt screen owns the terminal, so logs go to a file or nowhere
	logger, closeLog, err := cfg.Log.NewLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(ui.NewControllerModel(ctx, cfg, logger, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
