package core

import "time"

// Store defines the interface for the build catalog.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	// Build operations
	CreateBuild(b *Build) error
	GetBuild(id string) (*Build, error)
	CompleteBuild(id string, status BuildStatus, counts BuildCounts, buildErr error) error
	GetLatestBuild() (*Build, error)
	ListBuilds(limit int) ([]*Build, error)

	// Diagnostic operations
	RecordDiagnostics(buildID, artifact string, diags []Diagnostic) error
	GetDiagnostics(buildID string) ([]*BuildDiagnostic, error)
}

// BuildStatus represents the status of a dictionary build.
type BuildStatus string

// BuildStatus values.
const (
	BuildStatusRunning   BuildStatus = "running"
	BuildStatusCompleted BuildStatus = "completed"
	BuildStatusFailed    BuildStatus = "failed"
)

// BuildCounts summarizes what a completed build produced.
type BuildCounts struct {
	LexiconEntries  int `json:"lexicon_entries"`
	UnknownEntries  int `json:"unknown_entries"`
	ForwardSize     int `json:"forward_size"`
	BackwardSize    int `json:"backward_size"`
	Categories      int `json:"categories"`
	DiagnosticCount int `json:"diagnostic_count"`
}

// Build represents one compilation run.
type Build struct {
	ID          string
	SourceDir   string
	OutputDir   string
	Dialect     string
	Status      BuildStatus
	Counts      BuildCounts
	StartedAt   time.Time
	CompletedAt *time.Time
	ErrorCode   ErrorCode
	Error       string
}

// BuildDiagnostic is a Diagnostic persisted against a build.
type BuildDiagnostic struct {
	BuildID  string
	Artifact string
	Diagnostic
}
