// Package state implements the build catalog: a SQLite database recording
// every build, its outcome, and the diagnostics it produced.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/morphdict/pkg/core"
)

var errNotOpened = errors.New("database not opened")

// SQLiteStore implements core.Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ core.Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite catalog. A nil logger discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened catalog", slog.String("path", path))
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema brings the schema up to date.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return errNotOpened
	}
	if err := migrate(s.db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

// --- Build operations ---

// CreateBuild inserts b as a running build. Empty ID and StartedAt are
// filled in.
func (s *SQLiteStore) CreateBuild(b *core.Build) error {
	if s.db == nil {
		return errNotOpened
	}
	if b.ID == "" {
		b.ID = generateID()
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	b.Status = core.BuildStatusRunning

	s.logger.Debug("creating build", slog.String("id", b.ID), slog.String("source_dir", b.SourceDir))

	_, err := s.db.Exec(
		`INSERT INTO builds (id, source_dir, output_dir, dialect, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.SourceDir, b.OutputDir, b.Dialect, string(b.Status), b.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create build: %w", err)
	}
	return nil
}

const buildColumns = `id, source_dir, output_dir, dialect, status,
	lexicon_entries, unknown_entries, forward_size, backward_size, categories, diagnostic_count,
	started_at, completed_at, error_code, error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (*core.Build, error) {
	b := &core.Build{}
	var (
		status      string
		completedAt sql.NullTime
		errCode     sql.NullString
		errMsg      sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.SourceDir, &b.OutputDir, &b.Dialect, &status,
		&b.Counts.LexiconEntries, &b.Counts.UnknownEntries,
		&b.Counts.ForwardSize, &b.Counts.BackwardSize,
		&b.Counts.Categories, &b.Counts.DiagnosticCount,
		&b.StartedAt, &completedAt, &errCode, &errMsg,
	)
	if err != nil {
		return nil, err
	}

	b.Status = core.BuildStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		b.CompletedAt = &t
	}
	if errCode.Valid {
		b.ErrorCode = core.ErrorCode(errCode.String)
	}
	if errMsg.Valid {
		b.Error = errMsg.String
	}
	return b, nil
}

// GetBuild retrieves a build by ID.
func (s *SQLiteStore) GetBuild(id string) (*core.Build, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	b, err := scanBuild(s.db.QueryRow(`SELECT `+buildColumns+` FROM builds WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("build %s: %w", id, core.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}
	return b, nil
}

// CompleteBuild records the outcome of a build. A non-nil buildErr is stored
// with its classified error code.
func (s *SQLiteStore) CompleteBuild(id string, status core.BuildStatus, counts core.BuildCounts, buildErr error) error {
	if s.db == nil {
		return errNotOpened
	}

	var errCode, errMsg *string
	if buildErr != nil {
		code := string(core.Classify(buildErr))
		msg := buildErr.Error()
		errCode, errMsg = &code, &msg
	}

	result, err := s.db.Exec(
		`UPDATE builds SET status = ?, lexicon_entries = ?, unknown_entries = ?,
		 forward_size = ?, backward_size = ?, categories = ?, diagnostic_count = ?,
		 completed_at = ?, error_code = ?, error = ?
		 WHERE id = ?`,
		string(status), counts.LexiconEntries, counts.UnknownEntries,
		counts.ForwardSize, counts.BackwardSize, counts.Categories, counts.DiagnosticCount,
		time.Now().UTC(), errCode, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete build: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("build %s: %w", id, core.ErrRecordNotFound)
	}
	return nil
}

// GetLatestBuild retrieves the most recently started build, or nil when the
// catalog is empty.
func (s *SQLiteStore) GetLatestBuild() (*core.Build, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	b, err := scanBuild(s.db.QueryRow(
		`SELECT ` + buildColumns + ` FROM builds ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest build: %w", err)
	}
	return b, nil
}

// ListBuilds returns up to limit builds, newest first.
func (s *SQLiteStore) ListBuilds(limit int) ([]*core.Build, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.Query(
		`SELECT `+buildColumns+` FROM builds ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builds []*core.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
