package domain

import (
	"errors"
	"time"
)

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Filter selects which slice of an owner's tasks a list operation returns.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterDeleted   Filter = "deleted"
)

// ParseFilter maps a raw query value onto a Filter. Anything unrecognised
// (including the empty string) falls back to FilterAll, which deliberately
// excludes trashed tasks despite its name.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterActive, FilterCompleted, FilterDeleted:
		return Filter(s)
	default:
		return FilterAll
	}
}

var ErrTaskNotFound = errors.New("task not found")
var ErrTitleRequired = errors.New("title is required")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingFields = errors.New("name, email and password are required")
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// Task is an owner-scoped to-do item. Completed and Deleted are independent
// flags: a task may sit in the trash while still marked completed.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Deleted     bool       `json:"deleted"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
