// Package repository persists task lists between sessions.
package repository

import (
	"context"
	"errors"
	"fmt"

	"todo/internal/task"
)

// Supported storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Repository loads and saves the whole ordered task list.
type Repository interface {
	Load(ctx context.Context) ([]task.Task, error)
	Save(ctx context.Context, tasks []task.Task) error
	Close() error
}

// Open returns the repository for driver.
func Open(ctx context.Context, driver, dsn string) (Repository, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(nil), nil
	case DriverSQLite, DriverMySQL:
		return OpenSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
