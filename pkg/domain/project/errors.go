package project

import "errors"

// Project domain errors.
var (
	// ErrNotFound indicates the project does not exist or the caller has no
	// access to it. Access failures deliberately look identical to missing
	// projects so probing cannot distinguish them.
	ErrNotFound = errors.New("project not found")

	// ErrNoTasks indicates the project has no tasks to schedule, so a
	// forecast would be meaningless.
	ErrNoTasks = errors.New("project has no tasks to forecast")
)
