// Package project holds the project aggregate as seen by the forecasting
// engine, plus its domain errors.
package project

import "time"

// Project is a construction project. The forecaster only reads it; all
// mutation goes through the external CRUD layer.
type Project struct {
	// ID uniquely identifies the project.
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable project name.
	Name string `json:"name" yaml:"name"`
	// Region selects the holiday calendar; empty means weekends only.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	// StartDate is when work begins. Nil falls back to "now" at forecast time.
	StartDate *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	// PlannedCompletion is the committed completion date, if any.
	PlannedCompletion *time.Time `json:"planned_completion,omitempty" yaml:"planned_completion,omitempty"`
	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
