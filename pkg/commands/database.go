package commands

import (
	"fmt"
	"os"
	"strings"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
)

// PurgeFilter selects the tasks removed by --database purge. Empty fields
// match everything.
type PurgeFilter struct {
	Date       string
	Category   string
	DoneOnly   bool
	UndoneOnly bool
}

// Matches reports whether a task is selected for deletion
func (f PurgeFilter) Matches(t model.Task) bool {
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.DoneOnly {
		return t.Completed
	}
	if f.UndoneOnly {
		return !t.Completed
	}
	return true
}

// Purge deletes the matching tasks and returns how many were removed
func Purge(store *engine.Store, f PurgeFilter) int {
	return store.DeleteWhere(f.Matches)
}

// HandleDatabaseCommand processes --database commands
func HandleDatabaseCommand(store *engine.Store, cmd string, f PurgeFilter, skipConfirm bool) {
	if cmd != "purge" {
		fmt.Printf("Unknown database command: %s\n", cmd)
		os.Exit(1)
	}

	// Show confirmation unless --yes flag is used
	if !skipConfirm {
		fmt.Print("Are you sure you want to delete these tasks? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	fmt.Printf("Successfully deleted %d task(s)\n", Purge(store, f))
}
