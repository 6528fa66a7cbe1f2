package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scribehq/scribe/internal/git"
	"github.com/scribehq/scribe/internal/logger"
	"github.com/scribehq/scribe/internal/paths"
)

// Store owns the single current session of a process and is the only
// path through which it may change. Mutations are serialized by an
// in-process mutex, commit durably before they become observable, and
// roll the in-memory state back if the commit fails: callers never see a
// state that was not written to disk.
type Store struct {
	mu       sync.Mutex
	current  *Context
	resolver *paths.Resolver

	obsMu     sync.Mutex
	observers []*observerEntry
	nextObsID int
}

// NewStore creates a store for the workspace described by resolver.
// The store starts empty; call Recover to restore persisted state.
func NewStore(resolver *paths.Resolver) *Store {
	return &Store{resolver: resolver}
}

// Resolver returns the path resolver this store was built with.
func (s *Store) Resolver() *paths.Resolver {
	return s.resolver
}

// Current returns a snapshot of the current session, or nil when no
// session is active. Pure read, no I/O.
func (s *Store) Current() *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Create builds a fresh session and persists it with a session-created
// entry. An empty projectName creates a main-scope session. The branch
// snapshot is best-effort; a failed lookup never blocks creation.
func (s *Store) Create(ctx context.Context, projectName string) (*Context, error) {
	s.mu.Lock()
	created, err := s.createLocked(ctx, projectName)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(created)
	return created.clone(), nil
}

func (s *Store) createLocked(ctx context.Context, projectName string) (*Context, error) {
	branch := ""
	if b, err := git.CurrentBranch(ctx, s.resolver.WorkspaceRoot()); err == nil {
		branch = b
	} else {
		logger.Debug("Session: Branch lookup failed during create (non-fatal): %v", err)
	}

	baseDir := ""
	if projectName != "" {
		baseDir = s.resolver.ProjectBaseDir(projectName)
	}

	prev := s.current
	next := newContext(projectName, baseDir, branch)
	s.current = next

	operation := "Created new session"
	if projectName != "" {
		operation = fmt.Sprintf("Created new session for project %q", projectName)
	}

	if err := s.commitLocked(newLogEntry(next.ID, OpSessionCreated, operation)); err != nil {
		s.current = prev
		return nil, err
	}

	logger.Info("Session: Created session id=%s project=%q branch=%q", next.ID, projectName, branch)
	return next, nil
}

// Update is a partial merge into the current session: top-level fields
// are replaced when set, metadata is merged one level deeper,
// lastModified is always refreshed, and the schema version is pinned to
// the current format. With no current session it warns and no-ops.
// On a persistence failure the pre-update snapshot is restored and the
// error returned.
type Update struct {
	ProjectName *string
	BaseDir     *string
	ActiveFiles []string // nil leaves the list unchanged
	GitBranch   *string
	SRSVersion  *string
}

// Apply helpers for the common pointer-field pattern.
func String(v string) *string { return &v }

func (s *Store) Update(patch Update) error {
	s.mu.Lock()

	if s.current == nil {
		s.mu.Unlock()
		logger.Warn("Session: Update called with no current session, ignoring")
		return nil
	}

	snapshot := s.current.clone()
	c := s.current

	if patch.ProjectName != nil {
		c.ProjectName = *patch.ProjectName
	}
	if patch.BaseDir != nil {
		c.BaseDir = *patch.BaseDir
	}
	if patch.ActiveFiles != nil {
		c.ActiveFiles = append([]string{}, patch.ActiveFiles...)
	}
	if patch.GitBranch != nil {
		c.GitBranch = *patch.GitBranch
	}
	if patch.SRSVersion != nil {
		c.Metadata.SRSVersion = *patch.SRSVersion
	}
	c.Metadata.LastModified = time.Now().UTC()
	c.Metadata.Version = contextVersion

	if err := s.commitLocked(newLogEntry(c.ID, OpSessionUpdated, "Updated session state")); err != nil {
		s.current = snapshot
		s.mu.Unlock()
		return err
	}

	notified := c.clone()
	s.mu.Unlock()
	s.notify(notified)
	return nil
}

// Clear drops the current session from memory and notifies observers.
// No on-disk file is touched: session files are retained indefinitely as
// project history.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	logger.Info("Session: Cleared current session")
	s.notify(nil)
}

// StartNew discards the current in-memory session without archiving it
// and creates a fresh one. It reports failure through the result rather
// than an error since it backs a user-facing command.
func (s *Store) StartNew(ctx context.Context, projectName string) StartResult {
	s.mu.Lock()
	s.current = nil
	created, err := s.createLocked(ctx, projectName)
	s.mu.Unlock()

	if err != nil {
		logger.Error("Session: StartNew failed: %v", err)
		return StartResult{Success: false, Error: err.Error()}
	}

	s.notify(created)
	return StartResult{Success: true, NewSession: created.clone()}
}

// filePathFor maps a scope to its on-disk session file.
func (s *Store) filePathFor(scope Scope) string {
	if scope.IsProject() {
		return s.resolver.ProjectSessionFile(scope.Project())
	}
	return s.resolver.MainSessionFile()
}

// commitLocked persists the current in-memory state plus one new log
// entry to the active scope's file. Caller holds s.mu.
func (s *Store) commitLocked(entry LogEntry) error {
	// Guard against persisting an empty file over a real one from a
	// stale call: only a created entry may write without a session.
	if s.current == nil && entry.Type != OpSessionCreated {
		logger.Warn("Session: Refusing to persist %s entry with no current session", entry.Type)
		return nil
	}

	path := s.filePathFor(s.current.scope())
	f := LoadFile(path)

	now := time.Now().UTC()
	f.FileVersion = FileVersion
	f.CurrentSession = s.current.clone()
	f.Operations = append(f.Operations, entry)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.TimeRange.StartDate.IsZero() {
		f.TimeRange.StartDate = now
	}
	f.TimeRange.EndDate = now
	f.LastUpdated = now

	return writeFile(path, f)
}
