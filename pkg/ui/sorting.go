package ui

import (
	"sort"
	"strings"

	"todotimer/pkg/model"
)

// SortBy selects the task ordering
type SortBy int

const (
	SortByStartTime SortBy = iota
	SortByTitle
	SortByCategory
	SortByPriority
	sortByCount
)

func (s SortBy) String() string {
	return [...]string{"start time", "title", "category", "priority"}[s]
}

// GroupBy selects the task grouping
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByCategory
	groupByCount
)

// SortOrder is ascending or descending
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

func (o SortOrder) String() string {
	if o == SortDesc {
		return "desc"
	}
	return "asc"
}

// GroupedTasks represents tasks grouped by a common attribute
type GroupedTasks struct {
	GroupName string
	Tasks     []model.Task
}

// SortTasks sorts tasks based on the specified criteria. Ties keep their
// insertion order.
func SortTasks(tasks []model.Task, by SortBy, order SortOrder) []model.Task {
	sortedTasks := make([]model.Task, len(tasks))
	copy(sortedTasks, tasks)

	less := func(a, b model.Task) bool {
		switch by {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByCategory:
			return strings.ToLower(model.CategoryLabel(a.Category)) < strings.ToLower(model.CategoryLabel(b.Category))
		case SortByPriority:
			return a.Priority.Rank() > b.Priority.Rank() // High first
		default:
			return a.StartTime < b.StartTime
		}
	}

	sort.SliceStable(sortedTasks, func(i, j int) bool {
		if order == SortDesc {
			return less(sortedTasks[j], sortedTasks[i])
		}
		return less(sortedTasks[i], sortedTasks[j])
	})

	return sortedTasks
}

// GroupTasks groups tasks based on the specified criteria
func GroupTasks(tasks []model.Task, group GroupBy, by SortBy, order SortOrder) []GroupedTasks {
	if group == GroupByNone {
		return []GroupedTasks{{GroupName: "", Tasks: SortTasks(tasks, by, order)}}
	}

	groups := make(map[string][]model.Task)
	for _, task := range tasks {
		groupKey := model.CategoryLabel(task.Category)
		if groupKey == "" {
			groupKey = "No Category"
		}
		groups[groupKey] = append(groups[groupKey], task)
	}

	// Convert map to sorted slice
	var groupNames []string
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var result []GroupedTasks
	for _, name := range groupNames {
		result = append(result, GroupedTasks{
			GroupName: name,
			Tasks:     SortTasks(groups[name], by, order),
		})
	}

	return result
}
