package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	// FileVersion tags the on-disk unified file schema.
	FileVersion = "2.0"

	// contextVersion tags the metadata schema of a Context, independent
	// of the file-level version.
	contextVersion = "1.1"
)

// OperationType is the closed set of audit log entry kinds.
type OperationType string

const (
	OpSessionCreated     OperationType = "session-created"
	OpSessionUpdated     OperationType = "session-updated"
	OpSessionArchived    OperationType = "session-archived"
	OpProjectSwitched    OperationType = "project-switched"
	OpSpecialistInvoked  OperationType = "specialist-invoked"
	OpFileUpdated        OperationType = "file-updated"
	OpToolExecutionStart OperationType = "tool-execution-start"
	OpToolExecutionEnd   OperationType = "tool-execution-end"
	OpToolExecutionFail  OperationType = "tool-execution-failed"
	OpErrorOccurred      OperationType = "error-occurred"
	OpDataMigration      OperationType = "data-migration-performed"
)

// Metadata carries the bookkeeping fields of a Context.
type Metadata struct {
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
	Version      string    `json:"version"`
	SRSVersion   string    `json:"srsVersion,omitempty"`
}

// Context is the live state of one session: the active project, its
// working directory, the files open in it, and the branch snapshot taken
// when it was created. An empty ProjectName means the project-less main
// scope. At most one Context is current in a process at a time; it is
// replaced wholesale on project switch, never partially merged outside
// the Store's mutation API.
type Context struct {
	ID          string   `json:"sessionContextId"`
	ProjectName string   `json:"projectName,omitempty"`
	BaseDir     string   `json:"baseDir,omitempty"`
	ActiveFiles []string `json:"activeFiles"`
	GitBranch   string   `json:"gitBranch,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

// newContext builds a fresh context with a new ID. projectName and
// baseDir are empty for the main scope; branch is a best-effort snapshot
// and may be empty.
func newContext(projectName, baseDir, branch string) *Context {
	now := time.Now().UTC()
	return &Context{
		ID:          uuid.New().String(),
		ProjectName: projectName,
		BaseDir:     baseDir,
		ActiveFiles: []string{},
		GitBranch:   branch,
		Metadata: Metadata{
			Created:      now,
			LastModified: now,
			Version:      contextVersion,
		},
	}
}

// clone returns a deep copy. The Store hands out and accepts only copies
// so callers can never mutate the current state behind its back.
func (c *Context) clone() *Context {
	if c == nil {
		return nil
	}
	dup := *c
	dup.ActiveFiles = make([]string, len(c.ActiveFiles))
	copy(dup.ActiveFiles, c.ActiveFiles)
	return &dup
}

// Scope identifies which on-disk file is authoritative: the project-less
// main scope or a named project.
type Scope struct {
	project string
}

// MainScope is the project-less scope.
func MainScope() Scope {
	return Scope{}
}

// ProjectScope is the scope of a named project.
func ProjectScope(name string) Scope {
	return Scope{project: name}
}

// IsProject reports whether the scope names a project.
func (s Scope) IsProject() bool {
	return s.project != ""
}

// Project returns the project name, or "" for the main scope.
func (s Scope) Project() string {
	return s.project
}

// scope returns the scope a context belongs to.
func (c *Context) scope() Scope {
	if c == nil || c.ProjectName == "" {
		return MainScope()
	}
	return ProjectScope(c.ProjectName)
}

// LogEntry is one immutable audit record. Entries are append-only: the
// operations array of a session file never shrinks.
type LogEntry struct {
	Timestamp        time.Time      `json:"timestamp"`
	SessionContextID string         `json:"sessionContextId"`
	Type             OperationType  `json:"type"`
	Operation        string         `json:"operation"`
	Success          bool           `json:"success"`
	ToolName         string         `json:"toolName,omitempty"`
	TargetFiles      []string       `json:"targetFiles,omitempty"`
	UserInput        map[string]any `json:"userInput,omitempty"`
	ExecutionTimeMS  int64          `json:"executionTime,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// newLogEntry builds an entry stamped with the current time and the
// session it describes (sessionID may be empty during migrations).
func newLogEntry(sessionID string, op OperationType, operation string) LogEntry {
	return LogEntry{
		Timestamp:        time.Now().UTC(),
		SessionContextID: sessionID,
		Type:             op,
		Operation:        operation,
		Success:          true,
	}
}

// TimeRange bounds the operations recorded in a file.
type TimeRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// File is the on-disk unit: the latest session snapshot plus the complete
// operation log for one scope. The snapshot gives O(1) restore without
// replaying history; the log is the durable audit trail.
type File struct {
	FileVersion    string     `json:"fileVersion"`
	CurrentSession *Context   `json:"currentSession"`
	Operations     []LogEntry `json:"operations"`
	TimeRange      TimeRange  `json:"timeRange"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastUpdated    time.Time  `json:"lastUpdated"`
}

// BaseDirCheck is the validation verdict for a listed project's baseDir.
type BaseDirCheck struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// ProjectInfo is a read-only summary row for one known project scope.
type ProjectInfo struct {
	ProjectName    string       `json:"projectName"`
	SessionFile    string       `json:"sessionFile"`
	LastModified   time.Time    `json:"lastModified"`
	IsActive       bool         `json:"isActive"`
	OperationCount int          `json:"operationCount"`
	GitBranch      string       `json:"gitBranch,omitempty"`
	BaseDir        BaseDirCheck `json:"baseDirValidation"`
}

// SyncStatus is the result of an on-demand consistency check across
// memory, file, and branch state.
type SyncStatus struct {
	IsConsistent    bool      `json:"isConsistent"`
	Inconsistencies []string  `json:"inconsistencies"`
	LastSyncCheck   time.Time `json:"lastSyncCheck"`
}

// StartResult is the structured outcome of StartNew, which is invoked
// from user-facing commands and reports failure instead of raising.
type StartResult struct {
	Success    bool     `json:"success"`
	NewSession *Context `json:"newSession,omitempty"`
	Error      string   `json:"error,omitempty"`
}
