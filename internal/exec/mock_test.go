package exec

import (
	"context"
	"errors"
	"testing"
)

func TestMockExecutor_Stubbed(t *testing.T) {
	mock := NewMockExecutor()
	mock.Stub("git status", MockResponse{Stdout: "clean"})

	out, err := mock.Output(context.Background(), "/tmp", "git", "status")
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if string(out) != "clean" {
		t.Errorf("Output = %q, want %q", out, "clean")
	}
}

func TestMockExecutor_Unstubbed(t *testing.T) {
	mock := NewMockExecutor()

	if _, err := mock.Output(context.Background(), "/tmp", "git", "status"); err == nil {
		t.Error("Unstubbed command should fail")
	}
}

func TestMockExecutor_RecordsCalls(t *testing.T) {
	mock := NewMockExecutor()
	mock.Stub("git status", MockResponse{})

	mock.Output(context.Background(), "/tmp", "git", "status")
	mock.Output(context.Background(), "/tmp", "git", "log")

	calls := mock.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(calls))
	}
	if calls[0] != "git status" || calls[1] != "git log" {
		t.Errorf("calls = %v", calls)
	}
}

func TestMockExecutor_ErrorResponse(t *testing.T) {
	mock := NewMockExecutor()
	wantErr := errors.New("exit status 1")
	mock.Stub("git fetch", MockResponse{Stderr: "network down", Err: wantErr})

	_, stderr, err := mock.Run(context.Background(), "/tmp", "git", "fetch")
	if !errors.Is(err, wantErr) {
		t.Errorf("Run error = %v, want %v", err, wantErr)
	}
	if string(stderr) != "network down" {
		t.Errorf("stderr = %q", stderr)
	}
}
