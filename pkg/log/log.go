// Package log provides a zerolog logger that stores JSON events in an SQLite
// database, so certification runs can be inspected after the process exits.
package log

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"randcert-go/pkg/appdir"
)

var (
	writeSinceStart atomic.Int64
	pkgLogger       = zerolog.Nop()
	dbWriter        *sqliteWriter
	dbHandle        *sql.DB
	mu              sync.RWMutex
	timeFormat      = time.RFC3339Nano

	ErrNotInitialized = errors.New("log: logger not initialized, call log.Init() first")
)

type sqliteWriter struct {
	db   *sql.DB
	stmt *sql.Stmt
	mu   sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
    log_data TEXT NOT NULL
);`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_logs_json_time ON logs (json_extract(log_data, '$.time'));`,
	`CREATE INDEX IF NOT EXISTS idx_logs_json_level ON logs (json_extract(log_data, '$.level'));`,
}

func newSQLiteWriter(dbPath string) (*sqliteWriter, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db %s: %w", dbPath, err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create logs table: %w", err)
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			stdlog.Printf("Warning: failed to create log index: %v", err)
		}
	}
	stmt, err := db.Prepare(`INSERT INTO logs (log_data) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	return &sqliteWriter{db: db, stmt: stmt}, nil
}

func (w *sqliteWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.stmt.Exec(string(p)); err != nil {
		stdlog.Printf("ERROR writing log to SQLite: %v", err)
		return 0, err
	}
	writeSinceStart.Add(1)
	return len(p), nil
}

func (w *sqliteWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing statement: %w", err))
		}
		w.stmt = nil
	}
	if w.db != nil {
		if err := w.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing db: %w", err))
		}
		w.db = nil
	}
	return errors.Join(errs...)
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

// SetStd logs to the console only. It is used by commands that run without a
// log database.
func SetStd() {
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.New(consoleWriter()).With().Timestamp().Logger()
}

// Init opens (or creates) the log database. A relative dbFile is resolved
// against the application directory. With console set, events are also
// written to stderr.
func Init(dbFile string, console bool) error {
	if dbFile == "" {
		return fmt.Errorf("logger needs an explicit dbFile")
	}
	dbPath := appdir.Path(dbFile)

	mu.Lock()
	defer mu.Unlock()
	if dbWriter != nil {
		return fmt.Errorf("logger already initialized")
	}

	w, err := newSQLiteWriter(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite writer: %w", err)
	}
	dbWriter = w
	dbHandle = w.db
	writeSinceStart.Store(0)

	zerolog.TimeFieldFormat = timeFormat
	var out io.Writer = w
	if console {
		out = zerolog.MultiLevelWriter(w, consoleWriter())
	}
	pkgLogger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

// Close flushes a final event and releases the database.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if dbWriter == nil {
		return nil
	}
	w := dbWriter
	dbWriter, dbHandle = nil, nil
	pkgLogger = zerolog.Nop()

	cl := zerolog.New(w).With().Timestamp().Logger()
	cl.Log().Msg("closing SQLite logger")
	if err := w.close(); err != nil {
		return fmt.Errorf("error closing SQLite logger: %w", err)
	}
	return nil
}

func logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

func Debug() *zerolog.Event { return logger().Debug() }
func Info() *zerolog.Event  { return logger().Info() }
func Warn() *zerolog.Event  { return logger().Warn() }
func Error() *zerolog.Event { return logger().Error() }
func Log() *zerolog.Event   { return logger().Log() }

// Printf sends an info event. Arguments are handled in the manner of fmt.Printf.
func Printf(format string, v ...any) {
	logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}

type LogEntry struct {
	ID         int64     `json:"id"`
	InsertedAt time.Time `json:"insertedAt"`
	LogData    string    `json:"logData"`
}

const DefaultLimit = 100

func getHandle() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if dbHandle == nil {
		return nil, ErrNotInitialized
	}
	return dbHandle, nil
}

// parseDBTimestamp tries the formats SQLite may hand back for inserted_at.
func parseDBTimestamp(ts string) time.Time {
	for _, format := range []string{
		time.DateTime,
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999",
	} {
		if t, err := time.Parse(format, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}

func scanEntries(rows *sql.Rows) ([]LogEntry, error) {
	defer rows.Close()
	var logs []LogEntry
	for rows.Next() {
		var entry LogEntry
		var insertedAt string
		if err := rows.Scan(&entry.ID, &insertedAt, &entry.LogData); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entry.InsertedAt = parseDBTimestamp(insertedAt)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}
	return logs, nil
}

// SinceStart returns the entries written since Init.
func SinceStart() ([]LogEntry, error) {
	return Last(int(writeSinceStart.Load()))
}

// Last returns the n most recent entries, oldest first.
func Last(n int) ([]LogEntry, error) {
	handle, err := getHandle()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []LogEntry{}, nil
	}
	rows, err := handle.Query(`SELECT id, inserted_at, log_data FROM logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query last %d logs: %w", n, err)
	}
	logs, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// Between returns the entries whose event time lies in [start, end], in event
// order. A limit <= 0 means DefaultLimit.
func Between(start, end time.Time, limit int) ([]LogEntry, error) {
	handle, err := getHandle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	from, to := start.Format(timeFormat), end.Format(timeFormat)
	rows, err := handle.Query(`
        SELECT id, inserted_at, log_data
        FROM logs
        WHERE json_extract(log_data, '$.time') >= ? AND json_extract(log_data, '$.time') <= ?
        ORDER BY json_extract(log_data, '$.time') ASC, id ASC
        LIMIT ?`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs between %s and %s: %w", from, to, err)
	}
	return scanEntries(rows)
}

// Since is Between(start, now).
func Since(start time.Time, limit int) ([]LogEntry, error) {
	return Between(start, time.Now(), limit)
}
