package commands

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todotimer/pkg/database"
	"todotimer/pkg/engine"
	"todotimer/pkg/model"
	"todotimer/pkg/utils"
)

// DD.MM.YYYY: or YYYY-MM-DD: on a line of its own
var dateHeaderRe = regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)

// ImportFile adds the tasks in filename to the store. A file starting with
// '[' is read as a JSON task array, anything else as a dated text list.
func ImportFile(store *engine.Store, filename string) (int, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	var tasks []model.Task
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("[")) {
		tasks, err = database.DecodeTasks(content)
		if err != nil {
			return 0, err
		}
	} else {
		tasks = ParseTaskList(string(content), store.Now())
	}

	return store.Import(tasks), nil
}

// HandleImportCommand processes --import commands
func HandleImportCommand(store *engine.Store, filename string) {
	n, err := ImportFile(store, filename)
	if err != nil {
		fmt.Printf("Error importing %s: %v\n", filename, err)
		os.Exit(1)
	}
	fmt.Printf("Successfully imported %d task(s) from %s\n", n, filename)
}

// ParseTaskList reads the text list format:
//
//	18.10.2026:
//	- [ ] 10:30-12:00 Team Meeting +meeting
//	- [x] Buy milk
//
// Tasks before the first date header are dated today.
func ParseTaskList(content string, now time.Time) []model.Task {
	currentDate := model.FormatDate(now)
	var tasks []model.Task

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if dateMatch := dateHeaderRe.FindStringSubmatch(line); dateMatch != nil {
			var day, month, year int
			if dateMatch[1] != "" {
				day, _ = strconv.Atoi(dateMatch[1])
				month, _ = strconv.Atoi(dateMatch[2])
				year, _ = strconv.Atoi(dateMatch[3])
			} else {
				year, _ = strconv.Atoi(dateMatch[4])
				month, _ = strconv.Atoi(dateMatch[5])
				day, _ = strconv.Atoi(dateMatch[6])
			}
			header := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			if _, err := model.ParseDate(header, time.Local); err != nil {
				utils.Logger().WithField("header", line).Warn("skipping invalid date header")
				continue
			}
			currentDate = header
			continue
		}

		if !strings.HasPrefix(line, "- ") {
			continue
		}
		taskText := strings.TrimSpace(strings.TrimPrefix(line, "- "))

		completed := false
		if strings.HasPrefix(taskText, "[x]") {
			completed = true
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[x]"))
		} else if strings.HasPrefix(taskText, "[ ]") {
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[ ]"))
		}

		task := model.Task{
			Completed: completed,
			Date:      currentDate,
			StartTime: engine.DefaultStartTime,
			EndTime:   engine.DefaultEndTime,
			Category:  model.DefaultCategory,
		}
		if m := timeRangePrefixRe.FindStringSubmatch(taskText); m != nil {
			task.StartTime, task.EndTime = padClock(m[1]), padClock(m[2])
			taskText = taskText[len(m[0]):]
		}
		if category := extractCategory(taskText); category != "" {
			task.Category = category
		}
		task.Title = removeCategoryTags(taskText)
		if task.Title == "" {
			continue
		}
		task.Description = engine.DefaultDescription
		tasks = append(tasks, task)
	}

	return tasks
}

// padClock turns 9:00 into 09:00
func padClock(s string) string {
	if len(s) == 4 {
		return "0" + s
	}
	return s
}
