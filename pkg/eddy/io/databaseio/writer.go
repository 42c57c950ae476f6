package databaseio

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

// writer accumulates rows and flushes them as multi-row INSERT statements.
type writer struct {
	driver      string
	batchSize   int
	table       string
	sqlTemplate string
	binding     []any
	columnCount int
	rowCount    int
	totalCount  int
}

func newWriter(driver string, batchSize int, table string, columns []string) *writer {
	return &writer{
		driver:      driver,
		batchSize:   batchSize,
		columnCount: len(columns),
		table:       table,
		sqlTemplate: fmt.Sprintf("INSERT INTO %v(%v) VALUES", table, strings.Join(columns, ",")),
	}
}

func (w *writer) add(row []any) error {
	if len(row) != w.columnCount {
		return errors.Errorf("expected %v row values, but had: %v", w.columnCount, len(row))
	}
	w.rowCount++
	w.totalCount++
	w.binding = append(w.binding, row...)
	return nil
}

func (w *writer) write(ctx context.Context, db *sql.DB) error {
	if w.rowCount == 0 {
		log.Info(ctx, "No value(s) to be written....")
		return nil
	}
	stmt := w.sqlTemplate + placeholders(w.driver, w.rowCount, w.columnCount)
	result, err := db.ExecContext(ctx, stmt, w.binding...)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if int(affected) != w.rowCount {
		return errors.Errorf("expected to write: %v, but written: %v", w.rowCount, affected)
	}
	w.binding = nil
	w.rowCount = 0
	return nil
}

func (w *writer) writeBatchIfNeeded(ctx context.Context, db *sql.DB) error {
	if w.rowCount >= w.batchSize {
		return w.write(ctx, db)
	}
	return nil
}

func (w *writer) writeIfNeeded(ctx context.Context, db *sql.DB) error {
	if w.rowCount > 0 {
		return w.write(ctx, db)
	}
	return nil
}

// placeholders generates the VALUES placeholder list for the driver:
// ($1,$2),($3,$4) for postgres-style drivers and (?,?),(?,?) otherwise.
func placeholders(driver string, rowCount, columnCount int) string {
	switch driver {
	case "postgres", "pgx":
		rows := make([]string, rowCount)
		for i := 0; i < rowCount; i++ {
			cols := make([]string, columnCount)
			for j := 0; j < columnCount; j++ {
				cols[j] = fmt.Sprintf("$%d", i*columnCount+j+1)
			}
			rows[i] = fmt.Sprintf("(%s)", strings.Join(cols, ","))
		}
		return strings.Join(rows, ",")
	default:
		questions := strings.Repeat("?,", columnCount)
		row := fmt.Sprintf("(%s)", questions[:len(questions)-1])
		rows := strings.Repeat(row+",", rowCount)
		return rows[:len(rows)-1]
	}
}
