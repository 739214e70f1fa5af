// cmd/tools/registry-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"screening-workers/pkg/registry"
)

func main() {
	path := flag.String("path", "configs/task-registry.json", "Path to registry file")
	list := flag.Bool("list", false, "List registered tasks after validation")
	flag.Parse()

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		fmt.Printf("failed to load registry: %v\n", err)
		os.Exit(1)
	}

	if err := validate(reg); err != nil {
		fmt.Printf("registry validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registry validation passed. Found %d tasks.\n", len(reg.Tasks))

	if *list {
		for _, task := range reg.Tasks {
			fmt.Printf("  %-28s %-12s timeout=%s retries=%d\n", task.TaskType, task.Category, task.Timeout, task.Retries)
		}
	}
}

func validate(reg *registry.TaskRegistry) error {
	if len(reg.Tasks) == 0 {
		return fmt.Errorf("registry contains no tasks")
	}

	ids := make(map[string]bool)
	for _, task := range reg.Tasks {
		if task.ID == "" {
			return fmt.Errorf("task missing required field: ID")
		}
		if ids[task.ID] {
			return fmt.Errorf("duplicate task ID: %s", task.ID)
		}
		ids[task.ID] = true

		if task.DisplayName == "" {
			return fmt.Errorf("task %s missing required field: DisplayName", task.ID)
		}
		if task.TaskType == "" {
			return fmt.Errorf("task %s missing required field: TaskType", task.ID)
		}
		if task.Category == "" {
			return fmt.Errorf("task %s missing required field: Category", task.ID)
		}
	}

	return nil
}
