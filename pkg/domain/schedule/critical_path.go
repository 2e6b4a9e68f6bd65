package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Schedule domain errors.
var (
	// ErrGraphCycle indicates the dependency graph failed to topologically
	// resolve. Cycles are prevented at mutation time, so hitting this means
	// upstream data is corrupt.
	ErrGraphCycle = errors.New("dependency graph contains a cycle")
)

// CycleError reports which tasks could not be scheduled because their
// dependencies never resolved.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency graph contains a cycle involving tasks: %s", strings.Join(e.Remaining, ", "))
}

// Is allows errors.Is to work with CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrGraphCycle
}

// CriticalPath is the longest dependency chain through a project by
// cumulative duration. It determines the minimum possible project duration.
type CriticalPath struct {
	// TaskIDs is the ordered chain from first task to last.
	TaskIDs []string
	// TotalDays is the cumulative duration of the chain in working days.
	TotalDays int
}

// IsEmpty returns true if no path was found.
func (p CriticalPath) IsEmpty() bool {
	return len(p.TaskIDs) == 0
}

// Length returns the number of tasks on the path.
func (p CriticalPath) Length() int {
	return len(p.TaskIDs)
}

// ComputeCriticalPath finds the longest dependency chain by cumulative
// duration using Kahn-style topological relaxation.
//
// Each task starts with a longest-path value of zero and an in-degree equal
// to its dependency count. Tasks without dependencies seed the ready queue
// with their own duration. Draining the queue relaxes every dependent: when a
// longer chain is found, the dependent's longest-path value and predecessor
// link are updated. The task with the maximum value ends the path, and the
// chain is reconstructed by walking predecessor links backwards.
//
// When multiple chains share the maximum length, whichever was relaxed last
// wins; callers must not rely on a particular tie-break.
//
// Returns a CycleError if the queue fails to drain, which only happens when
// the graph contains a cycle.
func ComputeCriticalPath(tasks []Task) (CriticalPath, error) {
	if len(tasks) == 0 {
		return CriticalPath{}, nil
	}

	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	// dependents[x] lists tasks that declare x as a dependency.
	dependents := make(map[string][]string, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	longest := make(map[string]int, len(tasks))
	pred := make(map[string]string, len(tasks))

	for _, t := range tasks {
		inDegree[t.ID] = 0
	}
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; !ok {
				// Edges to unknown tasks cannot gate scheduling.
				continue
			}
			dependents[dep] = append(dependents[dep], t.ID)
			inDegree[t.ID]++
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if inDegree[t.ID] == 0 {
			longest[t.ID] = t.DurationDays
			queue = append(queue, t.ID)
		}
	}

	// Each task enters the queue at most once, so the loop runs at most
	// len(tasks) times.
	processed := 0
	for len(queue) > 0 && processed < len(tasks) {
		current := queue[0]
		queue = queue[1:]
		processed++

		for _, depID := range dependents[current] {
			candidate := longest[current] + byID[depID].DurationDays
			if candidate > longest[depID] {
				longest[depID] = candidate
				pred[depID] = current
			}
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if processed < len(tasks) {
		remaining := make([]string, 0, len(tasks)-processed)
		for _, t := range tasks {
			if inDegree[t.ID] > 0 {
				remaining = append(remaining, t.ID)
			}
		}
		return CriticalPath{}, &CycleError{Remaining: remaining}
	}

	end := ""
	maxDays := -1
	for _, t := range tasks {
		if longest[t.ID] > maxDays {
			maxDays = longest[t.ID]
			end = t.ID
		}
	}

	path := []string{}
	for id := end; id != ""; {
		path = append(path, id)
		id = pred[id]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return CriticalPath{TaskIDs: path, TotalDays: maxDays}, nil
}
