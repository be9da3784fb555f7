package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"todotimer/pkg/cli"
	"todotimer/pkg/config"
	"todotimer/pkg/database"
	"todotimer/pkg/engine"
	"todotimer/pkg/ui"
	"todotimer/pkg/utils"
)

func main() {
	// Parse command line flags
	args := cli.ParseArgs()

	// Load configuration
	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	utils.InitLogger(args.Verbose, cfg.LogLevel)
	defer utils.CloseLogger()

	dsn, err := database.ExpandPath(cfg.Storage.DSN)
	if err != nil {
		fmt.Printf("Error resolving storage path: %v\n", err)
		os.Exit(1)
	}

	// Open the task store
	backend, err := database.Open(database.Options{
		Driver: cfg.Storage.Driver,
		DSN:    dsn,
		Key:    cfg.Storage.Key,
	})
	if err != nil {
		fmt.Printf("Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	store := engine.NewStore(backend, engine.SystemClock{})
	store.Load()

	// Check for CLI commands
	if cli.HandleCommands(store, args) {
		return
	}

	// Create and run the Bubble Tea program
	p := tea.NewProgram(ui.NewModel(store, cfg, styles), tea.WithAltScreen())

	driver := engine.NewDriver(store, func(e engine.Event) {
		p.Send(ui.DriverMsg(e))
	})
	if cfg.Engine.TickInterval > 0 {
		driver.TickInterval = cfg.Engine.TickInterval
	}
	if cfg.Engine.ExpiryInterval > 0 {
		driver.ExpiryInterval = cfg.Engine.ExpiryInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	_, runErr := p.Run()
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		utils.Log("Driver stopped: %v", err)
	}

	if runErr != nil {
		fmt.Printf("Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
