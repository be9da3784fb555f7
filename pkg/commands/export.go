package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
)

// Export formats accepted by --type
const (
	ExportJSON = "json"
	ExportTXT  = "txt"
	ExportYAML = "yaml"
	ExportXLSX = "xlsx"
)

const exportSheet = "Tasks"

// exportRecord is the flat row written by the yaml and xlsx exporters
type exportRecord struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Priority    string `yaml:"priority,omitempty"`
	Date        string `yaml:"date"`
	StartTime   string `yaml:"start_time"`
	EndTime     string `yaml:"end_time"`
	Completed   bool   `yaml:"completed"`
	Expired     bool   `yaml:"expired"`
	TimerState  string `yaml:"timer_state,omitempty"`
	TimerMins   int    `yaml:"timer_minutes,omitempty"`
	Remaining   string `yaml:"remaining,omitempty"`
}

var xlsxHeader = []string{
	"ID", "Title", "Description", "Category", "Priority", "Date", "Start", "End",
	"Completed", "Expired", "Timer", "Minutes", "Remaining",
}

func newExportRecord(t model.Task, now time.Time) exportRecord {
	rec := exportRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    string(t.Priority),
		Date:        t.Date,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Completed:   t.Completed,
		Expired:     t.IsExpired,
	}
	if t.HasTimer() {
		rec.TimerState = t.TimerState().String()
		rec.TimerMins = t.Timer.Duration
		secs := engine.RemainingAt(t, now)
		rec.Remaining = fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	}
	return rec
}

func (r exportRecord) cells() []any {
	return []any{
		r.ID, r.Title, r.Description, model.CategoryLabel(r.Category), r.Priority, r.Date,
		r.StartTime, r.EndTime, r.Completed, r.Expired, r.TimerState, r.TimerMins, r.Remaining,
	}
}

// ExportTasks writes tasks to filename in the given format
func ExportTasks(tasks []model.Task, filename, exportType string, now time.Time) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	var content []byte
	var err error

	switch strings.ToLower(exportType) {
	case ExportJSON:
		content, err = json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling tasks to JSON: %w", err)
		}
	case ExportTXT:
		content = []byte(formatTaskList(tasks))
	case ExportYAML:
		records := make([]exportRecord, 0, len(tasks))
		for _, t := range tasks {
			records = append(records, newExportRecord(t, now))
		}
		content, err = yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling tasks to YAML: %w", err)
		}
	case ExportXLSX:
		return writeXLSX(tasks, filename, now)
	default:
		return fmt.Errorf("unknown export type: %s", exportType)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// HandleExportCommand processes --export commands
func HandleExportCommand(store *engine.Store, filename, exportType string) {
	tasks := store.Tasks()
	if err := ExportTasks(tasks, filename, exportType, store.Now()); err != nil {
		fmt.Printf("Error exporting tasks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully exported %d task(s) to %s\n", len(tasks), filename)
}

// formatTaskList renders tasks in the text list format read by ParseTaskList
func formatTaskList(tasks []model.Task) string {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	var lines []string
	var lastDate string
	for _, task := range sorted {
		if task.Date != lastDate {
			header := task.Date
			if d, err := model.ParseDate(task.Date, time.Local); err == nil {
				header = d.Format("02.01.2006")
			}
			lines = append(lines, fmt.Sprintf("\n%s:", header))
			lastDate = task.Date
		}

		status := " "
		if task.Completed {
			status = "x"
		}
		line := fmt.Sprintf("- [%s] %s-%s %s", status, task.StartTime, task.EndTime, task.Title)
		if task.Category != "" {
			line += " +" + task.Category
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func writeXLSX(tasks []model.Task, filename string, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	for col, title := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return err
		}
	}

	for i, t := range tasks {
		for col, v := range newExportRecord(t, now).cells() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
