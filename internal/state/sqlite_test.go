package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/morphdict/internal/testutil"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.InitSchema())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newBuild(t *testing.T, store *SQLiteStore, started time.Time) *core.Build {
	t.Helper()
	b := &core.Build{
		SourceDir: "dict/src",
		OutputDir: "dict/out",
		Dialect:   "ipadic",
		StartedAt: started,
	}
	require.NoError(t, store.CreateBuild(b))
	return b
}

func TestSQLiteStore_InitSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"builds", "build_diagnostics"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// Re-running is a no-op.
	require.NoError(t, store.InitSchema())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	assert.ErrorIs(t, store.InitSchema(), errNotOpened)
	assert.ErrorIs(t, store.CreateBuild(&core.Build{}), errNotOpened)
	_, err := store.ListBuilds(10)
	assert.ErrorIs(t, err, errNotOpened)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_BuildLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		status   core.BuildStatus
		buildErr error
		wantCode core.ErrorCode
	}{
		{name: "completed", status: core.BuildStatusCompleted},
		{
			name:     "failed with format error",
			status:   core.BuildStatusFailed,
			buildErr: fmt.Errorf("matrix.def:1: %w", core.ErrFormat),
			wantCode: core.CodeFormat,
		},
		{
			name:     "failed with unclassified error",
			status:   core.BuildStatusFailed,
			buildErr: errors.New("boom"),
			wantCode: core.CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			b := newBuild(t, store, time.Time{})

			assert.NotEmpty(t, b.ID)
			assert.False(t, b.StartedAt.IsZero())
			assert.Equal(t, core.BuildStatusRunning, b.Status)

			got, err := store.GetBuild(b.ID)
			require.NoError(t, err)
			assert.Equal(t, core.BuildStatusRunning, got.Status)
			assert.Nil(t, got.CompletedAt)

			counts := core.BuildCounts{
				LexiconEntries:  392126,
				UnknownEntries:  41,
				ForwardSize:     1316,
				BackwardSize:    1316,
				Categories:      11,
				DiagnosticCount: 2,
			}
			require.NoError(t, store.CompleteBuild(b.ID, tt.status, counts, tt.buildErr))

			got, err = store.GetBuild(b.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, counts, got.Counts)
			assert.Equal(t, "dict/src", got.SourceDir)
			assert.Equal(t, "dict/out", got.OutputDir)
			assert.Equal(t, "ipadic", got.Dialect)
			require.NotNil(t, got.CompletedAt)
			assert.WithinDuration(t, b.StartedAt, got.StartedAt, time.Second)
			assert.Equal(t, tt.wantCode, got.ErrorCode)
			if tt.buildErr != nil {
				assert.Equal(t, tt.buildErr.Error(), got.Error)
			} else {
				assert.Empty(t, got.Error)
			}
		})
	}
}

func TestSQLiteStore_BuildNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetBuild("missing")
	assert.ErrorIs(t, err, core.ErrRecordNotFound)

	err = store.CompleteBuild("missing", core.BuildStatusCompleted, core.BuildCounts{}, nil)
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
}

func TestSQLiteStore_LatestAndList(t *testing.T) {
	store := setupTestStore(t)

	latest, err := store.GetLatestBuild()
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := range 3 {
		ids = append(ids, newBuild(t, store, base.Add(time.Duration(i)*time.Minute)).ID)
	}

	latest, err = store.GetLatestBuild()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, ids[2], latest.ID)

	builds, err := store.ListBuilds(2)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, ids[2], builds[0].ID)
	assert.Equal(t, ids[1], builds[1].ID)

	builds, err = store.ListBuilds(10)
	require.NoError(t, err)
	assert.Len(t, builds, 3)
}

func TestSQLiteStore_Diagnostics(t *testing.T) {
	store := setupTestStore(t)
	b := newBuild(t, store, time.Time{})

	diags := []core.Diagnostic{
		{Source: "matrix.def", Line: 3, Severity: core.SeverityWarning, Message: "index out of range"},
		{Source: "matrix.def", Line: 9, Severity: core.SeverityWarning, Message: "expected 3 fields"},
	}
	require.NoError(t, store.RecordDiagnostics(b.ID, "connection", diags))
	require.NoError(t, store.RecordDiagnostics(b.ID, "lexicon", []core.Diagnostic{
		{Source: "noun.csv", Line: 1, Severity: core.SeverityInfo, Message: "excluded"},
	}))
	require.NoError(t, store.RecordDiagnostics(b.ID, "unknown", nil))

	got, err := store.GetDiagnostics(b.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, b.ID, got[0].BuildID)
	assert.Equal(t, "connection", got[0].Artifact)
	assert.Equal(t, diags[0], got[0].Diagnostic)
	assert.Equal(t, diags[1], got[1].Diagnostic)
	assert.Equal(t, "lexicon", got[2].Artifact)
	assert.Equal(t, core.SeverityInfo, got[2].Severity)

	none, err := store.GetDiagnostics("other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_DiagnosticsRequireBuild(t *testing.T) {
	store := setupTestStore(t)

	err := store.RecordDiagnostics("missing", "lexicon", []core.Diagnostic{
		{Source: "a.csv", Line: 1, Severity: core.SeverityWarning, Message: "x"},
	})
	assert.Error(t, err)
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.InitSchema())
	b := &core.Build{SourceDir: "src", OutputDir: "out", Dialect: "unidic"}
	require.NoError(t, store.CreateBuild(b))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.InitSchema())

	got, err := reopened.GetBuild(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "unidic", got.Dialect)
}
