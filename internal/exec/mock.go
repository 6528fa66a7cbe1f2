package exec

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockResponse is a scripted result for a command.
type MockResponse struct {
	Stdout string
	Stderr string
	Err    error
}

// MockExecutor returns scripted responses instead of running commands.
// Responses are keyed by the full command line ("git rev-parse --abbrev-ref HEAD").
// Unscripted commands fail, which keeps tests honest about what they exercise.
type MockExecutor struct {
	mu        sync.Mutex
	responses map[string]MockResponse
	calls     []string
}

// NewMockExecutor creates an empty mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{responses: make(map[string]MockResponse)}
}

// Stub registers a response for the given command line.
func (m *MockExecutor) Stub(commandLine string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandLine] = resp
}

// Calls returns the command lines executed so far.
func (m *MockExecutor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockExecutor) lookup(name string, args ...string) (MockResponse, error) {
	key := strings.Join(append([]string{name}, args...), " ")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, key)

	resp, ok := m.responses[key]
	if !ok {
		return MockResponse{}, fmt.Errorf("no stub for command: %s", key)
	}
	return resp, nil
}

func (m *MockExecutor) Run(_ context.Context, _, name string, args ...string) ([]byte, []byte, error) {
	resp, err := m.lookup(name, args...)
	if err != nil {
		return nil, nil, err
	}
	return []byte(resp.Stdout), []byte(resp.Stderr), resp.Err
}

func (m *MockExecutor) Output(_ context.Context, _, name string, args ...string) ([]byte, error) {
	resp, err := m.lookup(name, args...)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return []byte(resp.Stdout), nil
}

func (m *MockExecutor) CombinedOutput(_ context.Context, _, name string, args ...string) ([]byte, error) {
	resp, err := m.lookup(name, args...)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return []byte(resp.Stdout + resp.Stderr), resp.Err
	}
	return []byte(resp.Stdout + resp.Stderr), nil
}
