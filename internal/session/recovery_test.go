package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDecideRecovery(t *testing.T) {
	tests := []struct {
		name        string
		flagPresent bool
		flagAge     time.Duration
		branch      string
		wantMode    recoveryMode
		wantProject string
	}{
		{"fresh flag skips regardless of branch", true, 5 * time.Second, "SRS/Alpha", recoverSkip, ""},
		{"fresh flag at boundary skips", true, exitFlagFreshness, "main", recoverSkip, ""},
		{"stale flag falls through to branch", true, 2 * time.Minute, "SRS/Alpha", recoverProject, "Alpha"},
		{"no flag, project branch", false, 0, "SRS/Beta", recoverProject, "Beta"},
		{"no flag, main branch", false, 0, "main", recoverMainFile, ""},
		{"no flag, empty branch", false, 0, "", recoverMainFile, ""},
		{"prefix without name is not a project", false, 0, "SRS/", recoverMainFile, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideRecovery(tt.flagPresent, tt.flagAge, tt.branch)
			if got.mode != tt.wantMode || got.project != tt.wantProject {
				t.Errorf("decideRecovery(%v, %v, %q) = {%v %q}, want {%v %q}",
					tt.flagPresent, tt.flagAge, tt.branch,
					got.mode, got.project, tt.wantMode, tt.wantProject)
			}
		})
	}
}

func TestRecover_WarmRestore(t *testing.T) {
	mock := withMockGit(t)
	stubBranch(mock, "SRS/Beta")
	store, resolver := newTestStore(t)

	created, err := store.Create(ctx, "Beta")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A second store over the same workspace simulates a restart.
	restarted := NewStore(resolver)
	notified := false
	restarted.Subscribe(func(c *Context) { notified = c != nil })

	restarted.Recover(ctx)

	current := restarted.Current()
	if current == nil || current.ID != created.ID {
		t.Fatal("Recovery should warm-restore the persisted project session")
	}
	if !notified {
		t.Error("Recovery must notify observers after a successful load")
	}
}

func TestRecover_SynthesizesForBranchWithoutFile(t *testing.T) {
	mock := withMockGit(t)
	stubBranch(mock, "SRS/Beta")
	store, resolver := newTestStore(t)

	store.Recover(ctx)

	current := store.Current()
	if current == nil {
		t.Fatal("Recovery should synthesize a session for the branch's project")
	}
	if current.ProjectName != "Beta" {
		t.Errorf("ProjectName = %q, want Beta", current.ProjectName)
	}
	if _, err := os.Stat(resolver.ProjectSessionFile("Beta")); err != nil {
		t.Error("Synthesized session should be persisted")
	}
}

func TestRecover_MainFileFallback(t *testing.T) {
	withMockGit(t) // branch lookup fails
	store, resolver := newTestStore(t)

	created, err := store.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	restarted := NewStore(resolver)
	restarted.Recover(ctx)

	current := restarted.Current()
	if current == nil || current.ID != created.ID {
		t.Error("Recovery should fall back to the main session file")
	}
}

func TestRecover_NonProjectBranchUsesMainFile(t *testing.T) {
	mock := withMockGit(t)
	stubBranch(mock, "feature/other-work")
	store, resolver := newTestStore(t)

	created, _ := store.Create(ctx, "")

	restarted := NewStore(resolver)
	restarted.Recover(ctx)

	if current := restarted.Current(); current == nil || current.ID != created.ID {
		t.Error("A non-project branch should restore the main file")
	}
}

func TestRecover_NothingToRestore(t *testing.T) {
	withMockGit(t)
	store, _ := newTestStore(t)

	store.Recover(ctx)
	if store.Current() != nil {
		t.Error("Recovery over an empty workspace should leave no session")
	}
}

func TestRecover_FreshExitFlagSkipsRecovery(t *testing.T) {
	withMockGit(t)
	store, resolver := newTestStore(t)
	store.Create(ctx, "")

	if err := WriteExitFlag(resolver); err != nil {
		t.Fatalf("WriteExitFlag failed: %v", err)
	}

	restarted := NewStore(resolver)
	restarted.Recover(ctx)

	if restarted.Current() != nil {
		t.Error("A fresh exit flag must skip recovery entirely")
	}
	if _, err := os.Stat(resolver.ExitFlagFile()); !os.IsNotExist(err) {
		t.Error("The exit flag is single-use and must be cleared")
	}
}

func TestRecover_StaleExitFlagIsClearedAndIgnored(t *testing.T) {
	withMockGit(t)
	store, resolver := newTestStore(t)
	created, _ := store.Create(ctx, "")

	// A flag old enough to be leftover from a crashed run.
	stale := exitFlag{Timestamp: time.Now().UTC().Add(-10 * time.Minute)}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(resolver.ExitFlagFile(), data, 0644); err != nil {
		t.Fatal(err)
	}

	restarted := NewStore(resolver)
	restarted.Recover(ctx)

	if current := restarted.Current(); current == nil || current.ID != created.ID {
		t.Error("A stale flag must not block recovery")
	}
	if _, err := os.Stat(resolver.ExitFlagFile()); !os.IsNotExist(err) {
		t.Error("A stale flag must still be cleared")
	}
}

func TestReadExitFlag_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".clean-exit.json")
	if err := os.WriteFile(path, []byte("{ nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, present := readExitFlag(path); present {
		t.Error("A corrupt flag should read as absent")
	}
}
