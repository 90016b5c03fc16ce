// Copyright 2024 Fantom Foundation
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

package utils

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// Printer writes a report to one sink.
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

// Printers fans a report out to several sinks.
type Printers struct {
	printers []Printer
}

// Print prints to every sink, also after one of them failed.
func (ps *Printers) Print() error {
	var err error
	for _, p := range ps.printers {
		err = errors.CombineErrors(err, p.Print())
	}
	return err
}

func (ps *Printers) Close() error {
	var err error
	for _, p := range ps.printers {
		err = errors.CombineErrors(err, p.Close())
	}
	return err
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes the string returned by f to w.
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToFile replaces the content of a file with the string returned by f.
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.Create(p.filepath)
	if err != nil {
		return fmt.Errorf("unable to print to file %s; %w", p.filepath, err)
	}
	defer func() {
		err = errors.CombineErrors(err, file.Close())
	}()
	_, err = file.WriteString(p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

// AddPrinterToFile adds a file sink unless filepath is empty.
func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb inserts the rows returned by f in one transaction.
type PrinterToDb struct {
	db     *sql.DB
	insert string
	f      func() [][]any
}

func (p *PrinterToDb) Print() (err error) {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("unable to begin a transaction; %w", err)
	}

	stmt, err := tx.Prepare(p.insert)
	if err != nil {
		return errors.CombineErrors(fmt.Errorf("unable to prepare statement %s; %w", p.insert, err), tx.Rollback())
	}
	defer func() {
		err = errors.CombineErrors(err, stmt.Close())
	}()

	for _, row := range p.f() {
		if _, err = stmt.Exec(row...); err != nil {
			return errors.CombineErrors(err, tx.Rollback())
		}
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

// NewPrinterToSqlite3 opens the sqlite3 database conn and runs create on it.
func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to sqlite3 %s; %w", conn, err)
	}
	if _, err = db.Exec(create); err != nil {
		return nil, errors.CombineErrors(fmt.Errorf("failed to create table on %s; %w", conn, err), db.Close())
	}
	if _, err = db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return nil, errors.CombineErrors(err, db.Close())
	}
	return &PrinterToDb{db, insert, f}, nil
}

// AddPrinterToSqlite3 adds a database sink unless conn is empty.
func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*Printers, error) {
	if conn == "" {
		return ps, nil
	}
	p, err := NewPrinterToSqlite3(conn, create, insert, f)
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(p), nil
}
