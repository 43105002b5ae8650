// Package fixtures loads seed tasks for the read-only repositories.
package fixtures

import (
	"fmt"
	"os"
	"time"

	"taskDashboard/internal/models/task"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type file struct {
	Tasks []row `yaml:"tasks"`
}

// row is one task in the seed file. due_in is a duration relative to load
// time, so date presets keep matching something no matter when the demo runs.
type row struct {
	UUID        string     `yaml:"uuid"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Status      string     `yaml:"status"`
	Priority    string     `yaml:"priority"`
	AssigneeID  string     `yaml:"assignee_id"`
	DueTime     *time.Time `yaml:"due_time"`
	DueIn       string     `yaml:"due_in"`
}

func Load(path string, now time.Time) ([]*task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение фикстур %s: %w", path, err)
	}
	return Parse(data, now)
}

func Parse(data []byte, now time.Time) ([]*task.Task, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("разбор фикстур: %w", err)
	}

	tasks := make([]*task.Task, 0, len(f.Tasks))
	for i, r := range f.Tasks {
		t, err := r.toTask(now)
		if err != nil {
			return nil, fmt.Errorf("фикстура #%d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r row) toTask(now time.Time) (*task.Task, error) {
	status := task.Status(r.Status)
	if status != "" && !status.Known() {
		return nil, fmt.Errorf("неизвестный статус %q", r.Status)
	}
	priority := task.Priority(r.Priority)
	if priority != "" && !priority.Known() {
		return nil, fmt.Errorf("неизвестный приоритет %q", r.Priority)
	}

	due := time.Time{}
	switch {
	case r.DueTime != nil && r.DueIn != "":
		return nil, fmt.Errorf("due_time и due_in заданы одновременно")
	case r.DueTime != nil:
		due = *r.DueTime
	case r.DueIn != "":
		d, err := time.ParseDuration(r.DueIn)
		if err != nil {
			return nil, fmt.Errorf("due_in: %w", err)
		}
		due = now.Add(d)
	}

	t := task.New(r.Title,
		task.WithDescription(r.Description),
		task.WithStatus(status),
		task.WithPriority(priority),
		task.WithAssignee(r.AssigneeID),
		task.WithDueTime(due),
	)
	t.CreatedAt = now

	if r.UUID != "" {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			return nil, fmt.Errorf("uuid: %w", err)
		}
		t.UUID = id
	}
	return t, nil
}
