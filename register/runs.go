// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package register

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQL statement for creating the registry table
	createRunsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT NOT NULL,
	thread INTEGER NOT NULL,
	seed INTEGER,
	concurrency INTEGER,
	numOps INTEGER,
	maxKeys INTEGER,
	instructions INTEGER,
	digest TEXT,
	output TEXT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id, thread)
);
`
	// SQL statement for registering the program of one client thread
	insertRunSQL = `
INSERT INTO runs (
	id, thread, seed, concurrency, numOps, maxKeys, instructions, digest, output
) VALUES (
	:id, :thread, :seed, :concurrency, :numOps, :maxKeys, :instructions, :digest, :output
)
`
	// SQL statement for listing registered programs
	selectRunsSQL = `
SELECT id, thread, seed, concurrency, numOps, maxKeys, instructions, digest, output
FROM runs ORDER BY createTimestamp, id, thread
`
)

// Run describes the program generated for one client thread of a run.
type Run struct {
	ID           string
	Thread       int
	Seed         uint64
	Concurrency  int
	NumOps       int
	MaxKeys      int
	Instructions int
	Digest       string // hex encoded program digest
	Output       string // program file, empty if not written
}

// runRow is the stored form of a Run; sqlite3 has no unsigned integers.
type runRow struct {
	ID           string `db:"id"`
	Thread       int    `db:"thread"`
	Seed         int64  `db:"seed"`
	Concurrency  int    `db:"concurrency"`
	NumOps       int    `db:"numOps"`
	MaxKeys      int    `db:"maxKeys"`
	Instructions int    `db:"instructions"`
	Digest       string `db:"digest"`
	Output       string `db:"output"`
}

func toRow(r Run) runRow {
	return runRow{
		ID:           r.ID,
		Thread:       r.Thread,
		Seed:         int64(r.Seed),
		Concurrency:  r.Concurrency,
		NumOps:       r.NumOps,
		MaxKeys:      r.MaxKeys,
		Instructions: r.Instructions,
		Digest:       r.Digest,
		Output:       r.Output,
	}
}

func (row runRow) run() Run {
	return Run{
		ID:           row.ID,
		Thread:       row.Thread,
		Seed:         uint64(row.Seed),
		Concurrency:  row.Concurrency,
		NumOps:       row.NumOps,
		MaxKeys:      row.MaxKeys,
		Instructions: row.Instructions,
		Digest:       row.Digest,
		Output:       row.Output,
	}
}

//go:generate mockgen -source runs.go -destination runs_mock.go -package register

// RunRegistry records the programs generated by apitester runs.
type RunRegistry interface {
	Add(runs ...Run) error
	Runs() ([]Run, error)
	Close() error
}

// runRegistry keeps the registry in a sqlite3 database.
type runRegistry struct {
	db *sqlx.DB
}

// NewRunRegistry opens the registry in dbFile and creates its schema if needed.
func NewRunRegistry(dbFile string) (RunRegistry, error) {
	db, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %w", dbFile, err)
	}
	return newRunRegistry(db)
}

func newRunRegistry(db *sqlx.DB) (*runRegistry, error) {
	if _, err := db.Exec(createRunsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table; %w", err)
	}
	return &runRegistry{db: db}, nil
}

// Add registers runs in a single transaction.
func (r *runRegistry) Add(runs ...Run) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	for _, run := range runs {
		if _, err = tx.NamedExec(insertRunSQL, toRow(run)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("unable to register thread %d of run %s; %w", run.Thread, run.ID, err)
		}
	}
	return tx.Commit()
}

// Runs returns all registered runs in registration order.
func (r *runRegistry) Runs() ([]Run, error) {
	var rows []runRow
	if err := r.db.Select(&rows, selectRunsSQL); err != nil {
		return nil, fmt.Errorf("unable to list runs; %w", err)
	}
	runs := make([]Run, len(rows))
	for i, row := range rows {
		runs[i] = row.run()
	}
	return runs, nil
}

// Close closes the registry database.
func (r *runRegistry) Close() error {
	return r.db.Close()
}
