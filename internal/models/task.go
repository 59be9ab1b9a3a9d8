package models

import (
	"fmt"
	"time"

	"github.com/jordanpayne/reveille/internal/constants"
)

// Task is a planner entry for a single day.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Tag       string    `json:"tag,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.Date != "" {
		if _, err := time.Parse(constants.DateFormat, t.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}
