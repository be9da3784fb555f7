package cli

import (
	"flag"
	"os"

	"todotimer/pkg/commands"
	"todotimer/pkg/engine"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Task operations
	AddTask      string
	DateFlag     string
	StartFlag    string
	EndFlag      string
	CategoryFlag string
	TimerFlag    int

	// Database operations
	DatabaseCmd string
	YesFlag     bool
	DoneFlag    bool
	UndoneFlag  bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses the process arguments
func ParseArgs() *Args {
	return ParseArgsFrom(flag.CommandLine, os.Args[1:])
}

// ParseArgsFrom defines the flags on fs and parses arguments
func ParseArgsFrom(fs *flag.FlagSet, arguments []string) *Args {
	args := &Args{}

	fs.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	fs.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Task operations
	fs.StringVar(&args.AddTask, "add", "", "Add a new task (+category tags allowed)")
	fs.StringVar(&args.DateFlag, "date", "", "Date for task (YYYY-MM-DD format)")
	fs.StringVar(&args.StartFlag, "start", "", "Start time for task (HH:MM)")
	fs.StringVar(&args.EndFlag, "end", "", "End time for task (HH:MM)")
	fs.StringVar(&args.CategoryFlag, "category", "", "Task category, also filters purge")
	fs.IntVar(&args.TimerFlag, "timer", 0, "Timer minutes for task (1-60, 0 for none)")

	// Database operations
	fs.StringVar(&args.DatabaseCmd, "database", "", "Database command (purge)")
	fs.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")
	fs.BoolVar(&args.DoneFlag, "done", false, "Filter done tasks")
	fs.BoolVar(&args.UndoneFlag, "undone", false, "Filter undone tasks")

	// Import/Export operations
	fs.StringVar(&args.ImportFile, "import", "", "Import tasks from file (JSON array or dated text list)")
	fs.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	fs.StringVar(&args.TypeFlag, "type", commands.ExportJSON, "Export file type (json, txt, yaml, xlsx)")

	fs.Parse(arguments)
	return args
}

// HasCommand reports whether a one-shot command was requested
func (a *Args) HasCommand() bool {
	return a.AddTask != "" || a.DatabaseCmd != "" || a.ImportFile != "" || a.ExportFile != ""
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(store *engine.Store, args *Args) bool {
	if args.AddTask != "" {
		commands.HandleAddTask(store, args.AddTask, commands.AddOptions{
			Date:         args.DateFlag,
			StartTime:    args.StartFlag,
			EndTime:      args.EndFlag,
			Category:     args.CategoryFlag,
			TimerMinutes: args.TimerFlag,
		})
		return true
	}

	if args.DatabaseCmd != "" {
		commands.HandleDatabaseCommand(store, args.DatabaseCmd, commands.PurgeFilter{
			Date:       args.DateFlag,
			Category:   args.CategoryFlag,
			DoneOnly:   args.DoneFlag,
			UndoneOnly: args.UndoneFlag,
		}, args.YesFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(store, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(store, args.ExportFile, args.TypeFlag)
		return true
	}

	// No CLI command was handled
	return false
}
