package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListProjects_EmptyWorkspace(t *testing.T) {
	withMockGit(t)
	store, _ := newTestStore(t)

	infos := store.ListProjects()
	if len(infos) != 0 {
		t.Errorf("Expected no rows, got %d", len(infos))
	}
}

func TestListProjects_SingleActiveProject(t *testing.T) {
	withMockGit(t)
	store, resolver := newTestStore(t)

	created, err := store.Create(ctx, "Alpha")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := os.MkdirAll(resolver.ProjectBaseDir("Alpha"), 0755); err != nil {
		t.Fatal(err)
	}

	infos := store.ListProjects()
	if len(infos) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(infos))
	}

	row := infos[0]
	if row.ProjectName != "Alpha" {
		t.Errorf("ProjectName = %q, want Alpha", row.ProjectName)
	}
	if !row.IsActive {
		t.Error("The in-memory session's row should be marked active")
	}
	if row.OperationCount != 1 {
		t.Errorf("OperationCount = %d, want 1", row.OperationCount)
	}
	if !row.BaseDir.IsValid {
		t.Errorf("baseDir should be valid, got %q", row.BaseDir.Error)
	}
	if row.SessionFile != resolver.ProjectSessionFile("Alpha") {
		t.Errorf("SessionFile = %q", row.SessionFile)
	}
	_ = created
}

func TestListProjects_InactiveAfterSwitch(t *testing.T) {
	withMockGit(t)
	store, _ := newTestStore(t)

	store.Create(ctx, "Alpha")
	store.SwitchTo(ctx, "Beta")

	active := map[string]bool{}
	for _, row := range store.ListProjects() {
		active[row.ProjectName] = row.IsActive
	}

	if active["Alpha"] {
		t.Error("Alpha should be inactive after switching away")
	}
	if !active["Beta"] {
		t.Error("Beta should be active")
	}
}

func TestListProjects_SortedByLastModified(t *testing.T) {
	withMockGit(t)
	store, _ := newTestStore(t)

	store.Create(ctx, "Older")
	store.SwitchTo(ctx, "Newer")
	store.Update(Update{ActiveFiles: []string{"a.md"}})

	infos := store.ListProjects()
	if len(infos) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(infos))
	}
	if infos[0].ProjectName != "Newer" {
		t.Errorf("Most recently touched project should sort first, got %q", infos[0].ProjectName)
	}
}

func TestListProjects_SkipsNonSessionEntries(t *testing.T) {
	withMockGit(t)
	store, resolver := newTestStore(t)
	store.Create(ctx, "Alpha")

	dir := resolver.SessionDir()
	// Exit flag, an in-flight temp file, a stray non-JSON file, and a
	// subdirectory must all be ignored.
	if err := WriteExitFlag(resolver); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".session-123.tmp"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "backup"), 0755); err != nil {
		t.Fatal(err)
	}

	infos := store.ListProjects()
	if len(infos) != 1 {
		t.Errorf("Expected only the session row, got %d", len(infos))
	}
}

func TestValidateBaseDir(t *testing.T) {
	withMockGit(t)
	store, resolver := newTestStore(t)

	existing := resolver.ProjectBaseDir("Alpha")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}
	asFile := filepath.Join(resolver.WorkspaceRoot(), "file-not-dir")
	if err := os.WriteFile(asFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		c         *Context
		wantValid bool
		wantErr   string
	}{
		{"main scope without baseDir", &Context{}, true, ""},
		{"project without baseDir", &Context{ProjectName: "Alpha"}, false, "baseDir not set"},
		{"existing directory", &Context{ProjectName: "Alpha", BaseDir: existing}, true, ""},
		{"missing directory", &Context{ProjectName: "Alpha", BaseDir: filepath.Join(resolver.WorkspaceRoot(), "gone")}, false, "baseDir does not exist"},
		{"regular file", &Context{ProjectName: "Alpha", BaseDir: asFile}, false, "baseDir is not a directory"},
		{"outside the workspace", &Context{ProjectName: "Alpha", BaseDir: os.TempDir()}, false, "baseDir is outside the workspace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.validateBaseDir(tt.c)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (%q)", got.IsValid, tt.wantValid, got.Error)
			}
			if got.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", got.Error, tt.wantErr)
			}
		})
	}
}
