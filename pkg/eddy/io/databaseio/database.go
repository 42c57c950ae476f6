// Package databaseio provides transformations and utilities to interact with
// a generic database/sql API. See also: https://golang.org/pkg/database/sql/
package databaseio

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

// writeRowLimit is the default maximum number of rows in a single INSERT.
const writeRowLimit = 1000

// Read reads all rows from the given table and returns them as a
// PCollection<map[string]any>, one map per row keyed by column name.
func Read(s eddy.Scope, driver, dsn, table string) eddy.PCollection {
	s = s.Scope(driver + ".Read")
	return query(s, driver, dsn, fmt.Sprintf("SELECT * FROM %v", table))
}

// Query executes a query and returns the result rows as a
// PCollection<map[string]any>.
func Query(s eddy.Scope, driver, dsn, q string) eddy.PCollection {
	s = s.Scope(driver + ".Query")
	return query(s, driver, dsn, q)
}

func query(s eddy.Scope, driver, dsn, query string) eddy.PCollection {
	imp := eddy.Impulse(s)
	return eddy.ParDo(s, &queryFn{Driver: driver, Dsn: dsn, Query: query}, imp)
}

type queryFn struct {
	Driver string
	Dsn    string
	Query  string
}

func (f *queryFn) ProcessElement(ctx context.Context, _ []byte, emit func(map[string]any)) error {
	db, err := sql.Open(f.Driver, f.Dsn)
	if err != nil {
		return errors.Wrapf(err, "failed to open database: %v", f.Driver)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, f.Query)
	if err != nil {
		return errors.Wrapf(err, "failed to run query: %v", f.Query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return errors.Wrapf(err, "failed to scan %v", f.Query)
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		emit(row)
	}
	return rows.Err()
}

// Write writes the elements of the given PCollection<map[string]any> to the
// database table, inserting into the given columns.
func Write(s eddy.Scope, driver, dsn, table string, columns []string, col eddy.PCollection) {
	WriteWithBatchSize(s, writeRowLimit, driver, dsn, table, columns, col)
}

// WriteWithBatchSize writes the elements of the given
// PCollection<map[string]any> to the database table with a custom batch size.
// Batch size controls the number of rows in a single INSERT statement.
func WriteWithBatchSize(s eddy.Scope, batchSize int, driver, dsn, table string, columns []string, col eddy.PCollection) {
	s = s.Scope(driver + ".Write")
	pre := eddy.AddFixedKey(s, col)
	post := eddy.GroupByKey(s, pre)
	eddy.ParDo0(s, &writeFn{Driver: driver, Dsn: dsn, Table: table, Columns: columns, BatchSize: batchSize}, post)
}

type writeFn struct {
	Driver    string
	Dsn       string
	Table     string
	Columns   []string
	BatchSize int
}

func (f *writeFn) ProcessElement(ctx context.Context, _ int, iter func(*map[string]any) bool) error {
	db, err := sql.Open(f.Driver, f.Dsn)
	if err != nil {
		return errors.Wrapf(err, "failed to open database: %v", f.Driver)
	}
	defer db.Close()

	if len(f.Columns) == 0 {
		return errors.Errorf("no columns to insert into %v", f.Table)
	}
	w := newWriter(f.Driver, f.BatchSize, f.Table, f.Columns)

	var row map[string]any
	for iter(&row) {
		values := make([]any, len(f.Columns))
		for i, column := range f.Columns {
			v, ok := row[column]
			if !ok {
				return errors.Errorf("row is missing column %v", column)
			}
			values[i] = v
		}
		if err := w.add(values); err != nil {
			return err
		}
		if err := w.writeBatchIfNeeded(ctx, db); err != nil {
			return err
		}
	}
	if err := w.writeIfNeeded(ctx, db); err != nil {
		return err
	}

	log.Infof(ctx, "written %v row(s) into %v", w.totalCount, f.Table)
	return nil
}
