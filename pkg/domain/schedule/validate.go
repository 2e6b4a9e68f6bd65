package schedule

import (
	"errors"
	"fmt"

	"github.com/gammazero/toposort"
)

// Mutation-boundary validation errors.
var (
	// ErrSelfDependency indicates a task cannot depend on itself.
	ErrSelfDependency = errors.New("task cannot depend on itself")
	// ErrDuplicateDependency indicates the dependency edge already exists.
	ErrDuplicateDependency = errors.New("dependency already exists")
	// ErrUnknownTask indicates an edge references a task that does not exist.
	ErrUnknownTask = errors.New("unknown task")
)

// ValidateDAG checks that the dependency relation over tasks forms a DAG and
// returns a valid topological order (dependencies first). Intended for the
// mutation layer, which must reject writes that would break acyclicity.
func ValidateDAG(tasks []Task) ([]string, error) {
	byID := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = struct{}{}
	}

	var edges []toposort.Edge
	for _, t := range tasks {
		if len(t.DependsOn) == 0 {
			edges = append(edges, toposort.Edge{nil, t.ID})
			continue
		}
		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, fmt.Errorf("task %s depends on %s: %w", t.ID, dep, ErrUnknownTask)
			}
			edges = append(edges, toposort.Edge{dep, t.ID})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGraphCycle, err)
	}

	order := make([]string, 0, len(sorted))
	for _, v := range sorted {
		if id, ok := v.(string); ok {
			order = append(order, id)
		}
	}
	return order, nil
}

// ValidateNewDependency checks whether adding an edge taskID -> dependsOn
// keeps the graph a DAG. It rejects self-edges, duplicate edges, edges to
// unknown tasks, and edges that would close a cycle.
func ValidateNewDependency(tasks []Task, taskID, dependsOn string) error {
	if taskID == dependsOn {
		return ErrSelfDependency
	}

	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	task, ok := byID[taskID]
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, ErrUnknownTask)
	}
	if _, ok := byID[dependsOn]; !ok {
		return fmt.Errorf("task %s: %w", dependsOn, ErrUnknownTask)
	}
	for _, dep := range task.DependsOn {
		if dep == dependsOn {
			return fmt.Errorf("%s -> %s: %w", taskID, dependsOn, ErrDuplicateDependency)
		}
	}

	// The new edge closes a cycle iff taskID is already reachable from
	// dependsOn through existing edges.
	visited := make(map[string]bool, len(tasks))
	var reachable func(from string) bool
	reachable = func(from string) bool {
		if from == taskID {
			return true
		}
		if visited[from] {
			return false
		}
		visited[from] = true
		for _, dep := range byID[from].DependsOn {
			if reachable(dep) {
				return true
			}
		}
		return false
	}
	if reachable(dependsOn) {
		return fmt.Errorf("%s -> %s: %w", taskID, dependsOn, ErrGraphCycle)
	}
	return nil
}
