package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock type for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// IsRepository implements the GitClient interface.
func (m *MockGitClient) IsRepository(ctx context.Context, repoPath string) bool {
	ret := m.Called(ctx, repoPath)
	ok, _ := ret.Get(0).(bool)
	return ok
}

// RecentCommitLog implements the GitClient interface.
func (m *MockGitClient) RecentCommitLog(ctx context.Context, repoPath string, limit int, pathspec string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, limit, pathspec)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// CountFileAuthors implements the GitClient interface.
func (m *MockGitClient) CountFileAuthors(ctx context.Context, repoPath string, path string) (int, error) {
	ret := m.Called(ctx, repoPath, path)
	n, _ := ret.Get(0).(int)
	return n, ret.Error(1)
}

// FileLastModified implements the GitClient interface.
func (m *MockGitClient) FileLastModified(ctx context.Context, repoPath string, path string) (time.Time, error) {
	ret := m.Called(ctx, repoPath, path)
	t, _ := ret.Get(0).(time.Time)
	return t, ret.Error(1)
}
