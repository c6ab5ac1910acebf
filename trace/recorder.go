// Package trace records what the controller puts on the command bus. Records
// go into SQLite tables so a run can be inspected with ordinary SQL after the
// fact.
package trace

import (
	"database/sql"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Blank import to register the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

//go:generate mockgen -destination "mock_trace_test.go" -package trace -source recorder.go -write_package_comment=false DataRecorder

// A DataRecorder can record tabular trace entries.
type DataRecorder interface {
	// CreateTable prepares a table whose columns match the fields of the
	// sample entry.
	CreateTable(name string, sample interface{})

	// InsertData adds one entry to a table created earlier.
	InsertData(name string, entry interface{})

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries out.
	Flush()

	// Close flushes and releases the underlying database.
	Close()
}

type table struct {
	name    string
	columns []string
	batch   []interface{}
}

// SQLiteWriter is a DataRecorder backed by a SQLite database file. Entries
// are buffered and written in batched transactions.
type SQLiteWriter struct {
	db        *sql.DB
	dbPath    string
	tables    map[string]*table
	batchSize int
}

// NewSQLiteWriter creates a SQLiteWriter that writes to the given file. An
// empty path picks a unique name in the working directory. The writer flushes
// on process exit.
func NewSQLiteWriter(path string) *SQLiteWriter {
	if path == "" {
		path = "sdram_trace_" + xid.New().String() + ".sqlite3"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Panic(err)
	}

	w := &SQLiteWriter{
		db:        db,
		dbPath:    path,
		tables:    make(map[string]*table),
		batchSize: 100000,
	}

	atexit.Register(w.Flush)

	return w
}

// Path returns the path of the database file.
func (w *SQLiteWriter) Path() string {
	return w.dbPath
}

// CreateTable prepares a table whose columns match the fields of the sample
// entry.
func (w *SQLiteWriter) CreateTable(name string, sample interface{}) {
	if _, ok := w.tables[name]; ok {
		log.Panicf("table %s already exists", name)
	}

	s := structs.New(sample)
	columns := s.Names()

	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf(
			"%s %s", c, sqlType(reflect.ValueOf(s.Field(c).Value()).Kind())))
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))

	_, err := w.db.Exec(stmt)
	if err != nil {
		log.Panic(err)
	}

	w.tables[name] = &table{name: name, columns: columns}
}

// InsertData adds one entry to a table created earlier.
func (w *SQLiteWriter) InsertData(name string, entry interface{}) {
	t, ok := w.tables[name]
	if !ok {
		log.Panicf("table %s does not exist", name)
	}

	t.batch = append(t.batch, entry)

	if len(t.batch) >= w.batchSize {
		w.flushTable(t)
	}
}

// ListTables returns the names of all created tables.
func (w *SQLiteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	return names
}

// Flush writes all buffered entries out.
func (w *SQLiteWriter) Flush() {
	for _, t := range w.tables {
		w.flushTable(t)
	}
}

// Close flushes and releases the underlying database.
func (w *SQLiteWriter) Close() {
	w.Flush()

	err := w.db.Close()
	if err != nil {
		log.Panic(err)
	}
}

func (w *SQLiteWriter) flushTable(t *table) {
	if len(t.batch) == 0 {
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		log.Panic(err)
	}

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(t.columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.columns, ", "), placeholders))
	if err != nil {
		log.Panic(err)
	}

	for _, entry := range t.batch {
		s := structs.New(entry)

		values := make([]interface{}, 0, len(t.columns))
		for _, c := range t.columns {
			values = append(values, s.Field(c).Value())
		}

		_, err := stmt.Exec(values...)
		if err != nil {
			log.Panic(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		log.Panic(err)
	}

	t.batch = nil
}

func sqlType(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64,
		reflect.Bool:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	default:
		log.Panicf("cannot store fields of kind %s", kind)
		return ""
	}
}
