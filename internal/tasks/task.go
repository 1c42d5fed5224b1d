package tasks

import (
	"context"
	"errors"
	"strconv"
)

var (
	ErrNotFound     = errors.New("task not found")
	ErrNameRequired = errors.New("task name is required")
	ErrInvalidID    = errors.New("invalid task id")
)

// Task is one row of the task table. The JSON names mirror the column names.
type Task struct {
	TaskID int64  `json:"TaskID"`
	Task   string `json:"Task"`
}

// Store is the set of statements the HTTP layer runs against the task table.
type Store interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close()
}

// ParseID converts a path parameter into a task id. The parameter must be
// a plain base-10 integer; surrounding whitespace is an error.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ValidateName is the presence check applied before any insert.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	return nil
}
