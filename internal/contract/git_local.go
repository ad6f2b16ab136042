package contract

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// run executes a git command rooted at repoPath and returns its stdout.
func (c *LocalGitClient) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.Stderr != nil {
			errMsg := strings.TrimSpace(string(exitErr.Stderr))
			return nil, fmt.Errorf("git command '%s' failed: %s: %w", strings.Join(fullArgs, " "), errMsg, err)
		}
		return nil, fmt.Errorf("could not execute git command (is git installed and in PATH?): %w", err)
	}
	return out, nil
}

// IsRepository implements the GitClient interface.
func (c *LocalGitClient) IsRepository(ctx context.Context, repoPath string) bool {
	out, err := c.run(ctx, repoPath, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// RecentCommitLog implements the GitClient interface.
func (c *LocalGitClient) RecentCommitLog(ctx context.Context, repoPath string, limit int, pathspec string) ([]byte, error) {
	args := []string{
		"log",
		"-n", fmt.Sprintf("%d", limit),
		"--pretty=format:--%H|%s|%cI",
		"--name-only",
	}
	if pathspec != "" {
		args = append(args, "--", pathspec)
	}
	return c.run(ctx, repoPath, args...)
}

// CountFileAuthors implements the GitClient interface.
func (c *LocalGitClient) CountFileAuthors(ctx context.Context, repoPath string, path string) (int, error) {
	out, err := c.run(ctx, repoPath, "log", "--pretty=format:%an", "--", path)
	if err != nil {
		return 0, err
	}
	authors := make(map[string]struct{})
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			authors[line] = struct{}{}
		}
	}
	return len(authors), nil
}

// FileLastModified implements the GitClient interface.
func (c *LocalGitClient) FileLastModified(ctx context.Context, repoPath string, path string) (time.Time, error) {
	out, err := c.run(ctx, repoPath, "log", "-1", "--pretty=format:%cI", "--", path)
	if err != nil {
		return time.Time{}, err
	}
	stamp := strings.TrimSpace(string(out))
	if stamp == "" {
		return time.Time{}, fmt.Errorf("no history for %q", path)
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse commit time '%s': %w", stamp, err)
	}
	return t, nil
}
