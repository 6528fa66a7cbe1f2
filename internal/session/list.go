package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scribehq/scribe/internal/logger"
)

// ListProjects scans the session directory and returns a summary row per
// known scope, including the project-less main file when present. The
// scan is read-only and tolerant: unreadable entries are skipped.
func (s *Store) ListProjects() []ProjectInfo {
	dir := s.resolver.SessionDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Session: Failed to read session directory %s: %v", dir, err)
		}
		return []ProjectInfo{}
	}

	current := s.Current()

	infos := []ProjectInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			// Skip the exit flag and in-flight temp files.
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f := LoadFile(path)

		info := ProjectInfo{
			SessionFile:    path,
			LastModified:   f.LastUpdated,
			OperationCount: len(f.Operations),
		}

		if f.CurrentSession != nil {
			info.ProjectName = f.CurrentSession.ProjectName
			info.GitBranch = f.CurrentSession.GitBranch
			info.BaseDir = s.validateBaseDir(f.CurrentSession)
			info.IsActive = current != nil && current.ID == f.CurrentSession.ID
		} else {
			info.BaseDir = BaseDirCheck{IsValid: false, Error: "baseDir not set"}
		}

		if fi, err := entry.Info(); err == nil && f.LastUpdated.IsZero() {
			info.LastModified = fi.ModTime()
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastModified.After(infos[j].LastModified)
	})
	return infos
}

// validateBaseDir checks a session's working directory against the
// filesystem and workspace containment.
func (s *Store) validateBaseDir(c *Context) BaseDirCheck {
	if c.BaseDir == "" {
		if c.ProjectName == "" {
			// Main scope legitimately has no working directory.
			return BaseDirCheck{IsValid: true}
		}
		return BaseDirCheck{IsValid: false, Error: "baseDir not set"}
	}

	info, err := os.Stat(c.BaseDir)
	if err != nil {
		return BaseDirCheck{IsValid: false, Error: "baseDir does not exist"}
	}
	if !info.IsDir() {
		return BaseDirCheck{IsValid: false, Error: "baseDir is not a directory"}
	}
	if !s.resolver.Contains(c.BaseDir) {
		return BaseDirCheck{IsValid: false, Error: "baseDir is outside the workspace"}
	}
	return BaseDirCheck{IsValid: true}
}
