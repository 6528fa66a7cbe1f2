package session

import (
	"context"
	"fmt"

	serrors "github.com/scribehq/scribe/internal/errors"
	"github.com/scribehq/scribe/internal/git"
	"github.com/scribehq/scribe/internal/logger"
)

// SwitchTo makes projectName the active project. There are exactly two
// outcomes and no middle ground: an existing valid session in the target
// file is adopted verbatim, and anything else (file absent, unreadable,
// or holding no session ID) gets a brand-new session synthesized for the
// project. The source and target sessions are never combined.
func (s *Store) SwitchTo(ctx context.Context, projectName string) (*Context, error) {
	if projectName == "" {
		return nil, serrors.E(serrors.Op("session.SwitchTo"), serrors.KindInvalid, "project name required")
	}

	s.mu.Lock()

	fromProject := ""
	if s.current != nil {
		fromProject = s.current.ProjectName
	}

	path := s.resolver.ProjectSessionFile(projectName)
	existing := LoadFile(path)

	var next *Context
	var operation string
	if existing.CurrentSession != nil && existing.CurrentSession.ID != "" {
		next = existing.CurrentSession.clone()
		operation = fmt.Sprintf("Switched to existing session for project %q", projectName)
		logger.Info("Session: Adopting existing session id=%s for project %q", next.ID, projectName)
	} else {
		branch := ""
		if b, err := git.CurrentBranch(ctx, s.resolver.WorkspaceRoot()); err == nil {
			branch = b
		}
		next = newContext(projectName, s.resolver.ProjectBaseDir(projectName), branch)
		operation = fmt.Sprintf("Created new session for project %q on switch", projectName)
		logger.Info("Session: No existing session for project %q, synthesized id=%s", projectName, next.ID)
	}

	prev := s.current
	s.current = next

	entry := newLogEntry(next.ID, OpProjectSwitched, operation)
	entry.UserInput = map[string]any{"fromProject": fromProject}

	if err := s.commitLocked(entry); err != nil {
		s.current = prev
		s.mu.Unlock()
		return nil, serrors.SessionSwitchFailed(projectName, err)
	}

	s.mu.Unlock()
	s.notify(next)
	return next.clone(), nil
}
