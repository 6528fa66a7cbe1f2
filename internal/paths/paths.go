// Package paths resolves all on-disk locations used by the session core.
// Every file the core touches is derived deterministically from the
// workspace root, so two processes pointed at the same workspace agree on
// where session state lives.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	serrors "github.com/scribehq/scribe/internal/errors"
)

const (
	sessionDirName  = ".scribe"
	sessionSubDir   = "sessions"
	mainSessionFile = "session.json"
	exitFlagFile    = ".clean-exit.json"
)

// unsafeFilenameChars matches characters that are normalized away when a
// project name becomes part of a filename.
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Resolver derives session-related paths from a workspace root.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a resolver for the given workspace root.
// The root is cleaned but not validated; call Validate before trusting it.
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{workspaceRoot: filepath.Clean(workspaceRoot)}
}

// WorkspaceRoot returns the workspace root path.
func (r *Resolver) WorkspaceRoot() string {
	return r.workspaceRoot
}

// SessionDir returns the directory holding all session files.
func (r *Resolver) SessionDir() string {
	return filepath.Join(r.workspaceRoot, sessionDirName, sessionSubDir)
}

// MainSessionFile returns the path of the project-less session file.
func (r *Resolver) MainSessionFile() string {
	return filepath.Join(r.SessionDir(), mainSessionFile)
}

// ProjectSessionFile returns the path of the session file for a named
// project. Unsafe filename characters in the name are normalized.
func (r *Resolver) ProjectSessionFile(project string) string {
	return filepath.Join(r.SessionDir(), fmt.Sprintf("session-%s.json", SanitizeProjectName(project)))
}

// ProjectBaseDir returns the conventional working directory for a project:
// a directory named after the project under the workspace root.
func (r *Resolver) ProjectBaseDir(project string) string {
	return filepath.Join(r.workspaceRoot, project)
}

// ExitFlagFile returns the path of the intentional-exit marker.
func (r *Resolver) ExitFlagFile() string {
	return filepath.Join(r.SessionDir(), exitFlagFile)
}

// Validate checks that the workspace root is an existing directory
// reachable by absolute path.
func (r *Resolver) Validate() error {
	if r.workspaceRoot == "" || r.workspaceRoot == "." {
		return serrors.WorkspaceInvalid(r.workspaceRoot, "workspace path not set")
	}
	if !filepath.IsAbs(r.workspaceRoot) {
		return serrors.WorkspaceInvalid(r.workspaceRoot, "workspace path must be absolute")
	}

	info, err := os.Stat(r.workspaceRoot)
	if err != nil {
		return serrors.WorkspaceInvalid(r.workspaceRoot, "workspace path does not exist")
	}
	if !info.IsDir() {
		return serrors.WorkspaceInvalid(r.workspaceRoot, "workspace path is not a directory")
	}
	return nil
}

// IsValid reports whether the workspace root passes validation.
func (r *Resolver) IsValid() bool {
	return r.Validate() == nil
}

// Contains reports whether path is inside the workspace root.
func (r *Resolver) Contains(path string) bool {
	rel, err := filepath.Rel(r.workspaceRoot, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// SanitizeProjectName normalizes a project name for use in a filename.
// Runs of unsafe characters collapse to a single dash so distinct names
// stay readable, and the result is never empty.
func SanitizeProjectName(name string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(name, "-")
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
