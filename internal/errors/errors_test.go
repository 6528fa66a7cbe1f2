package errors

import (
	"errors"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{KindGit, "git error"},
		{KindSession, "session error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_Composition(t *testing.T) {
	underlying := errors.New("disk full")
	err := E(Op("session.save"), KindIO, "writing snapshot", underlying)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("E should return an *Error")
	}

	if e.Op != "session.save" {
		t.Errorf("Op = %q, want %q", e.Op, "session.save")
	}
	if e.Kind != KindIO {
		t.Errorf("Kind = %v, want KindIO", e.Kind)
	}
	if e.Context != "writing snapshot" {
		t.Errorf("Context = %q, want %q", e.Context, "writing snapshot")
	}
	if !errors.Is(err, underlying) {
		t.Error("E should wrap the underlying error")
	}
}

func TestE_ContextOnly(t *testing.T) {
	err := E(Op("paths.Validate"), KindInvalid, "workspace path not set")
	if err.Error() != "paths.Validate: workspace path not set" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := E(Op("test"), KindGit, "branch lookup")
	if !Is(err, KindGit) {
		t.Error("Is should match KindGit")
	}
	if Is(err, KindIO) {
		t.Error("Is should not match KindIO")
	}
	if Is(errors.New("plain"), KindGit) {
		t.Error("Is should not match a plain error")
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(E(KindSession, "no current session")); got != KindSession {
		t.Errorf("GetKind = %v, want KindSession", got)
	}
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind = %v, want KindUnknown", got)
	}
}

func TestHelperConstructors(t *testing.T) {
	if !Is(NoCurrentSession(), KindSession) {
		t.Error("NoCurrentSession should be KindSession")
	}
	if !Is(SessionSaveFailed("/tmp/x.json", errors.New("boom")), KindIO) {
		t.Error("SessionSaveFailed should be KindIO")
	}
	if !Is(WorkspaceInvalid("/tmp", "missing"), KindInvalid) {
		t.Error("WorkspaceInvalid should be KindInvalid")
	}
	if !Is(GitBranchLookupFailed("/tmp", errors.New("boom")), KindGit) {
		t.Error("GitBranchLookupFailed should be KindGit")
	}
}
