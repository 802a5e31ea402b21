package task

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// UnmarshalText rejects anything other than LOW, MEDIUM or HIGH.
// An empty string decodes to the unset priority.
func (p *Priority) UnmarshalText(text []byte) error {
	v := Priority(text)
	if v != "" && !v.Valid() {
		return fmt.Errorf("invalid priority %q: must be one of LOW, MEDIUM, HIGH", string(text))
	}
	*p = v
	return nil
}

// Date is a calendar date with no time or zone, encoded as YYYY-MM-DD.
type Date struct {
	civil.Date
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{d}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return d.In(time.UTC)
}

// Task is the core domain entity representing a to-do item.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *Date    `json:"dueDate"`
	Priority    Priority `json:"priority"`
}

// Saved reports whether the task has been assigned an id by a store.
func (t Task) Saved() bool {
	return t.ID != 0
}
