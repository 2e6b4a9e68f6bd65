package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches valid ID formats: alphanumeric with hyphens/underscores.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ProjectID represents a validated project identifier.
type ProjectID struct {
	value string
}

// NewProjectID creates a new ProjectID from a string value.
// Returns an error if the value is invalid.
func NewProjectID(value string) (ProjectID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ProjectID{}, fmt.Errorf("project ID cannot be empty")
	}
	if !idPattern.MatchString(value) {
		return ProjectID{}, fmt.Errorf("invalid project ID format: %s", value)
	}
	return ProjectID{value: value}, nil
}

// MustProjectID creates a ProjectID or panics if invalid. Use only in tests.
func MustProjectID(value string) ProjectID {
	id, err := NewProjectID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the ProjectID.
func (id ProjectID) String() string {
	return id.value
}

// IsZero returns true if the ProjectID is empty.
func (id ProjectID) IsZero() bool {
	return id.value == ""
}

// Equals checks if two ProjectIDs are equal.
func (id ProjectID) Equals(other ProjectID) bool {
	return id.value == other.value
}

// UserID represents a validated user identifier.
type UserID struct {
	value string
}

// NewUserID creates a new UserID from a string value.
func NewUserID(value string) (UserID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return UserID{}, fmt.Errorf("user ID cannot be empty")
	}
	if !idPattern.MatchString(value) {
		return UserID{}, fmt.Errorf("invalid user ID format: %s", value)
	}
	return UserID{value: value}, nil
}

// MustUserID creates a UserID or panics if invalid. Use only in tests.
func MustUserID(value string) UserID {
	id, err := NewUserID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the UserID.
func (id UserID) String() string {
	return id.value
}

// IsZero returns true if the UserID is empty.
func (id UserID) IsZero() bool {
	return id.value == ""
}

// Equals checks if two UserIDs are equal.
func (id UserID) Equals(other UserID) bool {
	return id.value == other.value
}
