package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/segyhp/fintrack/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// DateLayout is the date format of the source files.
const DateLayout = "02.01.2006"

// Table describes one tab-separated source file and its target table.
type Table struct {
	Name     string
	File     string
	Columns  []string
	Dates    []string
	Nullable []string
}

// Tables lists the source files in load order. Foreign keys require users and
// the dictionary to be present before credits, plans and payments.
var Tables = []Table{
	{
		Name:    "users",
		File:    "users.csv",
		Columns: []string{"id", "login", "registration_date"},
		Dates:   []string{"registration_date"},
	},
	{
		Name:    "dictionary",
		File:    "dictionary.csv",
		Columns: []string{"id", "name"},
	},
	{
		Name:     "credits",
		File:     "credits.csv",
		Columns:  []string{"id", "user_id", "issuance_date", "return_date", "actual_return_date", "body", "percent"},
		Dates:    []string{"issuance_date", "return_date", "actual_return_date"},
		Nullable: []string{"actual_return_date"},
	},
	{
		Name:    "plans",
		File:    "plans.csv",
		Columns: []string{"id", "period", "sum", "category_id"},
		Dates:   []string{"period"},
	},
	{
		Name:    "payments",
		File:    "payments.csv",
		Columns: []string{"id", "sum", "payment_date", "credit_id", "type_id"},
		Dates:   []string{"payment_date"},
	},
}

type Loader struct {
	db  *sqlx.DB
	log logrus.FieldLogger
}

func New(db *sqlx.DB, log logrus.FieldLogger) *Loader {
	return &Loader{db: db, log: log.WithField("component", "loader")}
}

// Reset empties every fact table.
func (l *Loader) Reset(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, "TRUNCATE payments, plans, credits, dictionary, users RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	l.log.Info("tables reset")
	return nil
}

// LoadDir loads every file of Tables from dir, one transaction per file.
func (l *Loader) LoadDir(ctx context.Context, dir string) error {
	for _, table := range Tables {
		if err := l.LoadFile(ctx, table, filepath.Join(dir, table.File)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) LoadFile(ctx context.Context, table Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadTable(f, table)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := l.insert(ctx, table, rows); err != nil {
		return fmt.Errorf("failed to load %s: %w", table.Name, err)
	}

	l.log.WithFields(logrus.Fields{"table": table.Name, "rows": len(rows)}).Info("table loaded")
	return nil
}

func (l *Loader) insert(ctx context.Context, table Table, rows [][]any) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, table.insertSQL())
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	// Rows carry explicit ids; move the sequence past them so later inserts
	// do not collide.
	resync := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
		table.Name, table.Name,
	)
	if _, err := tx.ExecContext(ctx, resync); err != nil {
		return err
	}

	return tx.Commit()
}

func (t Table) insertSQL() string {
	placeholders := make([]string, len(t.Columns))
	for i := range t.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "),
	)
}

// ReadTable parses a tab-separated file with a header row into insert
// arguments ordered as t.Columns. Dates are converted from dd.mm.yyyy;
// other values are passed through as text for Postgres to cast.
func ReadTable(r io.Reader, t Table) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, column := range t.Columns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	var rows [][]any
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}

		row, err := t.convert(record, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func (t Table) convert(record []string, index map[string]int) ([]any, error) {
	row := make([]any, len(t.Columns))
	for i, column := range t.Columns {
		value := ""
		if pos := index[column]; pos < len(record) {
			value = strings.TrimSpace(record[pos])
		}

		if value == "" {
			if !slices.Contains(t.Nullable, column) {
				return nil, fmt.Errorf("column %s is empty", column)
			}
			row[i] = nil
			continue
		}

		if slices.Contains(t.Dates, column) {
			parsed, err := time.Parse(DateLayout, value)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", column, err)
			}
			row[i] = domain.DateOf(parsed)
			continue
		}

		row[i] = value
	}
	return row, nil
}
