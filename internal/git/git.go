// Package git wraps the small slice of version control that the session
// core consumes: the current branch name and the SRS/<project> naming
// convention that couples branches to session scopes.
package git

import (
	"context"
	"strings"

	serrors "github.com/scribehq/scribe/internal/errors"
	sexec "github.com/scribehq/scribe/internal/exec"
)

// ProjectBranchPrefix marks a branch as belonging to a named project.
// A branch "SRS/Alpha" means project "Alpha" is active; any other branch
// means the workspace is in the project-less main scope.
const ProjectBranchPrefix = "SRS/"

// executor is the command executor used by this package.
// It can be swapped for testing via SetExecutor.
var executor sexec.CommandExecutor = sexec.NewRealExecutor()

// SetExecutor sets the command executor used by this package.
// This is primarily used for testing.
func SetExecutor(e sexec.CommandExecutor) {
	executor = e
}

// GetExecutor returns the current command executor.
func GetExecutor() sexec.CommandExecutor {
	return executor
}

// CurrentBranch returns the current branch name for the directory.
// Detached HEAD and non-repo directories return an error; callers treat
// this as "no branch" rather than a fatal condition.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := executor.Output(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", serrors.GitBranchLookupFailed(dir, err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "" || branch == "HEAD" {
		return "", serrors.E(serrors.Op("git.CurrentBranch"), serrors.KindGit, "detached HEAD")
	}
	return branch, nil
}

// ProjectFromBranch extracts the project name from a branch following the
// SRS/<project> convention. Returns false for any other branch name.
func ProjectFromBranch(branch string) (string, bool) {
	if !strings.HasPrefix(branch, ProjectBranchPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(branch, ProjectBranchPrefix)
	if name == "" {
		return "", false
	}
	return name, true
}

// BranchForProject returns the conventional branch name for a project.
func BranchForProject(project string) string {
	return ProjectBranchPrefix + project
}

// IsRepo reports whether the directory is inside a git repository.
func IsRepo(ctx context.Context, dir string) bool {
	_, _, err := executor.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	return err == nil
}

// Root returns the git root directory for a path, or empty string if not
// a git repo.
func Root(ctx context.Context, dir string) string {
	output, err := executor.Output(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
