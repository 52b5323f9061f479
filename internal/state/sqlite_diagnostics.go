package state

import (
	"fmt"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

// RecordDiagnostics stores diags against a build in one transaction.
func (s *SQLiteStore) RecordDiagnostics(buildID, artifact string, diags []core.Diagnostic) (err error) {
	if s.db == nil {
		return errNotOpened
	}
	if len(diags) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(
		`INSERT INTO build_diagnostics (build_id, artifact, source, line, severity, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range diags {
		if _, err := stmt.Exec(buildID, artifact, d.Source, d.Line, d.Severity.String(), d.Message); err != nil {
			return fmt.Errorf("failed to record diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit diagnostics: %w", err)
	}
	return nil
}

// GetDiagnostics returns a build's diagnostics in insertion order.
func (s *SQLiteStore) GetDiagnostics(buildID string) ([]*core.BuildDiagnostic, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.Query(
		`SELECT build_id, artifact, source, line, severity, message
		 FROM build_diagnostics WHERE build_id = ? ORDER BY id`,
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.BuildDiagnostic
	for rows.Next() {
		d := &core.BuildDiagnostic{}
		var severity string
		if err := rows.Scan(&d.BuildID, &d.Artifact, &d.Source, &d.Line, &severity, &d.Message); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		d.Severity, _ = core.ParseSeverity(severity)
		out = append(out, d)
	}
	return out, rows.Err()
}
