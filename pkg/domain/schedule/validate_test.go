package schedule

import (
	"errors"
	"testing"
)

func TestValidateDAG_ReturnsTopologicalOrder(t *testing.T) {
	tasks := []Task{
		{ID: "c", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "a"},
	}

	order, err := ValidateDAG(tasks)
	if err != nil {
		t.Fatalf("ValidateDAG failed: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if !(pos["a"] < pos["b"] && pos["b"] < pos["c"]) {
		t.Fatalf("expected dependencies first, got %v", order)
	}
}

func TestValidateDAG_Cycle(t *testing.T) {
	tasks := []Task{
		{ID: "a", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
	}

	if _, err := ValidateDAG(tasks); !errors.Is(err, ErrGraphCycle) {
		t.Fatalf("expected ErrGraphCycle, got %v", err)
	}
}

func TestValidateDAG_UnknownTask(t *testing.T) {
	tasks := []Task{{ID: "a", DependsOn: []string{"missing"}}}

	if _, err := ValidateDAG(tasks); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}

func TestValidateNewDependency(t *testing.T) {
	tasks := []Task{
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "c", DependsOn: []string{"b"}},
	}

	tests := []struct {
		name      string
		taskID    string
		dependsOn string
		wantErr   error
	}{
		{name: "valid edge", taskID: "c", dependsOn: "a", wantErr: nil},
		{name: "self edge", taskID: "a", dependsOn: "a", wantErr: ErrSelfDependency},
		{name: "duplicate edge", taskID: "b", dependsOn: "a", wantErr: ErrDuplicateDependency},
		{name: "unknown source", taskID: "ghost", dependsOn: "a", wantErr: ErrUnknownTask},
		{name: "unknown target", taskID: "a", dependsOn: "ghost", wantErr: ErrUnknownTask},
		{name: "direct cycle", taskID: "a", dependsOn: "b", wantErr: ErrGraphCycle},
		{name: "transitive cycle", taskID: "a", dependsOn: "c", wantErr: ErrGraphCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewDependency(tasks, tt.taskID, tt.dependsOn)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
