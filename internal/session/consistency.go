package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/scribehq/scribe/internal/git"
	"github.com/scribehq/scribe/internal/logger"
)

// CheckSync compares the three sources of truth (memory, file, branch)
// and reports every divergence as a human-readable string. It is strictly
// read-only and never fails: a failing sub-check becomes an inconsistency
// rather than an error.
func (s *Store) CheckSync(ctx context.Context) SyncStatus {
	status := SyncStatus{
		IsConsistent:    true,
		Inconsistencies: []string{},
		LastSyncCheck:   time.Now().UTC(),
	}

	current := s.Current()

	s.checkFileAgainstMemory(current, &status)
	s.checkBranchAgainstMemory(ctx, current, &status)
	s.checkResolverHealth(&status)

	status.IsConsistent = len(status.Inconsistencies) == 0
	if !status.IsConsistent {
		logger.Warn("Session: Consistency check found %d issue(s)", len(status.Inconsistencies))
	}
	return status
}

// checkFileAgainstMemory compares the in-memory session with the file
// that should be authoritative for its scope.
func (s *Store) checkFileAgainstMemory(current *Context, status *SyncStatus) {
	if current != nil && current.ProjectName != "" {
		s.checkProjectFile(current, status)
		return
	}
	s.checkMainFile(current, status)
}

func (s *Store) checkProjectFile(current *Context, status *SyncStatus) {
	path := s.resolver.ProjectSessionFile(current.ProjectName)
	if _, err := os.Stat(path); err != nil {
		status.add("session file for project %q does not exist at %s", current.ProjectName, path)
		return
	}

	f := LoadFile(path)
	if f.CurrentSession == nil {
		status.add("session file for project %q holds no session while one is in memory", current.ProjectName)
		return
	}

	onDisk := f.CurrentSession
	if onDisk.ProjectName != current.ProjectName {
		status.add("project name mismatch: file has %q, memory has %q", onDisk.ProjectName, current.ProjectName)
	}
	if onDisk.BaseDir != current.BaseDir {
		status.add("baseDir mismatch: file has %q, memory has %q", onDisk.BaseDir, current.BaseDir)
	}
	if len(onDisk.ActiveFiles) != len(current.ActiveFiles) {
		status.add("active file count mismatch: file has %d, memory has %d", len(onDisk.ActiveFiles), len(current.ActiveFiles))
	}
	if onDisk.ID != current.ID {
		status.add("session ID mismatch: file has %q, memory has %q", onDisk.ID, current.ID)
	}
	if f.FileVersion != FileVersion {
		status.add("file version mismatch: file has %q, expected %q", f.FileVersion, FileVersion)
	}
}

func (s *Store) checkMainFile(current *Context, status *SyncStatus) {
	path := s.resolver.MainSessionFile()
	_, err := os.Stat(path)
	fileExists := err == nil

	if fileExists && current == nil {
		f := LoadFile(path)
		if f.CurrentSession != nil {
			status.add("main session file holds a session but none is in memory")
		}
		return
	}
	if !fileExists && current != nil {
		status.add("session in memory but no main session file on disk")
	}
}

// checkBranchAgainstMemory verifies the SRS/<project> coupling between
// the workspace branch and the in-memory session. Branch lookup failures
// (not a repo, detached HEAD) are non-fatal and swallowed.
func (s *Store) checkBranchAgainstMemory(ctx context.Context, current *Context, status *SyncStatus) {
	branch, err := git.CurrentBranch(ctx, s.resolver.WorkspaceRoot())
	if err != nil {
		logger.Debug("Session: Branch check skipped: %v", err)
		return
	}

	memoryProject := ""
	if current != nil {
		memoryProject = current.ProjectName
	}

	if project, ok := git.ProjectFromBranch(branch); ok {
		if project != memoryProject {
			status.add("branch %q names project %q but memory has %q", branch, project, memoryProject)
		}
		return
	}

	if memoryProject != "" {
		status.add("branch %q is not a project branch but memory has project %q", branch, memoryProject)
	}
}

func (s *Store) checkResolverHealth(status *SyncStatus) {
	if err := s.resolver.Validate(); err != nil {
		status.add("workspace path is invalid: %v", err)
	}
}

func (st *SyncStatus) add(format string, args ...any) {
	st.Inconsistencies = append(st.Inconsistencies, fmt.Sprintf(format, args...))
}
