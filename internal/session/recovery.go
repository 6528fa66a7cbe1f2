package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/scribehq/scribe/internal/git"
	"github.com/scribehq/scribe/internal/logger"
	"github.com/scribehq/scribe/internal/paths"
)

// exitFlagFreshness bounds how long an intentional-exit flag counts as
// evidence that the user chose to shut down. A flag older than this is
// treated as leftover from a crashed run.
const exitFlagFreshness = 60 * time.Second

type exitFlag struct {
	Timestamp time.Time `json:"timestamp"`
}

// WriteExitFlag records that the user shut down on purpose. Read once at
// the next startup to decide whether to skip recovery.
func WriteExitFlag(r *paths.Resolver) error {
	path := r.ExitFlagFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(exitFlag{Timestamp: time.Now().UTC()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readExitFlag returns the flag's timestamp and whether a readable flag
// exists.
func readExitFlag(path string) (time.Time, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}

	var flag exitFlag
	if err := json.Unmarshal(data, &flag); err != nil || flag.Timestamp.IsZero() {
		return time.Time{}, false
	}
	return flag.Timestamp, true
}

func clearExitFlag(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Session: Failed to clear exit flag %s: %v", path, err)
	}
}

// recoveryMode is what startup decided to do with persisted state.
type recoveryMode int

const (
	// recoverSkip: the user exited on purpose moments ago; start clean.
	recoverSkip recoveryMode = iota
	// recoverMainFile: not on a project branch; restore the main file.
	recoverMainFile
	// recoverProject: on an SRS/<name> branch; restore or re-synthesize
	// that project's session.
	recoverProject
)

type recoveryDecision struct {
	mode    recoveryMode
	project string
}

// decideRecovery is the intentional-vs-accidental restart heuristic,
// isolated from all I/O so it can be tested directly. branch is empty
// when the lookup failed or the workspace is not a repository.
func decideRecovery(flagPresent bool, flagAge time.Duration, branch string) recoveryDecision {
	if flagPresent && flagAge >= 0 && flagAge <= exitFlagFreshness {
		return recoveryDecision{mode: recoverSkip}
	}

	if project, ok := git.ProjectFromBranch(branch); ok {
		return recoveryDecision{mode: recoverProject, project: project}
	}
	return recoveryDecision{mode: recoverMainFile}
}

// Recover reconciles in-memory state with the persisted files and the
// workspace branch, once, at process startup. It is best-effort by
// design: every failure is logged and leaves the session empty rather
// than blocking startup.
func (s *Store) Recover(ctx context.Context) {
	flagPath := s.resolver.ExitFlagFile()
	flagTime, flagPresent := readExitFlag(flagPath)
	if flagPresent {
		// The flag is single-use whether fresh or stale.
		clearExitFlag(flagPath)
	}

	branch := ""
	if b, err := git.CurrentBranch(ctx, s.resolver.WorkspaceRoot()); err == nil {
		branch = b
	} else {
		logger.Debug("Session: Branch lookup failed during recovery (non-fatal): %v", err)
	}

	decision := decideRecovery(flagPresent, time.Since(flagTime), branch)

	switch decision.mode {
	case recoverSkip:
		logger.Info("Session: Intentional exit detected, skipping recovery")

	case recoverProject:
		s.recoverProject(ctx, decision.project)

	case recoverMainFile:
		s.recoverMainFile()
	}
}

// recoverProject restores the session for the project named by the
// current branch. A file with a session is adopted as-is (warm restore);
// a missing file or empty snapshot means the branch exists but the
// session log does not, so a new session is synthesized rather than
// blocking the user.
func (s *Store) recoverProject(ctx context.Context, project string) {
	f := LoadFile(s.resolver.ProjectSessionFile(project))

	if f.CurrentSession != nil && f.CurrentSession.ID != "" {
		s.adopt(f.CurrentSession)
		logger.Info("Session: Warm restore of project %q session id=%s", project, f.CurrentSession.ID)
		return
	}

	logger.Info("Session: Branch names project %q but no session exists, synthesizing", project)
	s.mu.Lock()
	created, err := s.createLocked(ctx, project)
	s.mu.Unlock()
	if err != nil {
		logger.Error("Session: Failed to synthesize session for project %q: %v", project, err)
		return
	}
	s.notify(created)
}

// recoverMainFile falls back to the project-less main file, if any.
func (s *Store) recoverMainFile() {
	f := LoadFile(s.resolver.MainSessionFile())
	if f.CurrentSession == nil || f.CurrentSession.ID == "" {
		logger.Debug("Session: No main session to restore, starting empty")
		return
	}

	s.adopt(f.CurrentSession)
	logger.Info("Session: Restored main-scope session id=%s", f.CurrentSession.ID)
}

// adopt installs a loaded session as current and notifies observers.
func (s *Store) adopt(c *Context) {
	s.mu.Lock()
	s.current = c.clone()
	adopted := s.current
	s.mu.Unlock()
	s.notify(adopted)
}
