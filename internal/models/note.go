package models

import (
	"fmt"
	"time"
)

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("note title cannot be empty")
	}
	return nil
}
