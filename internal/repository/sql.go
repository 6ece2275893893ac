package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"todo/internal/task"
)

const createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id VARCHAR(36) NOT NULL PRIMARY KEY,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`

// SQL stores tasks in a database/sql table. The list is rewritten on every
// Save, ordered by position.
type SQL struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens driver ("sqlite" or "mysql") at dsn and creates the table.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A single connection serializes writers on the file.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}
	s := &SQL{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTasks); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}
	return nil
}

func (s *SQL) Load(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, completed FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			t  task.Task
			id string
		)
		if err := rows.Scan(&id, &t.Description, &t.Completed); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.ID = task.ID(id)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQL) Save(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (id, position, description, completed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, string(t.ID), i, t.Description, t.Completed); err != nil {
			return fmt.Errorf("saving task %s: %w", t.ID.Short(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (s *SQL) Close() error { return s.db.Close() }
