// Package gitutil provides a client for working with Git repositories.
package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Commit identity used for files this tool writes.
const (
	authorName  = "repoforge"
	authorEmail = "repoforge@localhost"
)

// Client handles interacting with Git repositories.
type Client struct {
	Logger *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{Logger: logger}
}

// Clone clones a repository into path. The target directory must not exist,
// or must be empty. A freshly created remote with no initial commit is
// handled by initializing the directory locally and wiring up the origin
// remote, since cloning an empty repository is rejected by the transport.
func (c *Client) Clone(ctx context.Context, repoURL, path, token string) error {
	if err := ensureEmptyTarget(path); err != nil {
		return err
	}

	c.Logger.InfoContext(ctx, "cloning repository", "url", repoURL, "path", path)
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:  repoURL,
		Auth: basicAuth(token),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return fmt.Errorf("git clone failed: %w", err)
	}

	c.Logger.InfoContext(ctx, "remote repository is empty, initializing local clone", "path", path)
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return fmt.Errorf("failed to initialize local repository: %w", err)
	}
	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{repoURL},
	}); err != nil {
		return fmt.Errorf("failed to configure origin remote: %w", err)
	}
	return nil
}

// CommitFileAndPush writes content to name at the worktree root of the
// repository at repoPath, stages and commits it, and pushes the commit to
// the origin branch. It returns the new commit's SHA.
func (c *Client) CommitFileAndPush(ctx context.Context, repoPath, name, content, message, branch, token string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", repoPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	filePath := filepath.Join(repoPath, name)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := worktree.Add(name); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", name, err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit %s: %w", name, err)
	}

	c.Logger.InfoContext(ctx, "pushing commit", "sha", hash.String(), "branch", branch)
	// An explicit HEAD refspec covers the empty-remote case, where the local
	// branch name does not necessarily match the remote's default branch.
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec(fmt.Sprintf("HEAD:refs/heads/%s", branch)),
		},
		Auth: basicAuth(token),
	})
	if err != nil {
		return "", fmt.Errorf("git push failed: %w", err)
	}
	return hash.String(), nil
}

// basicAuth builds the credential go-git uses for HTTPS remotes. Local-path
// remotes pass an empty token and get no auth at all.
func basicAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}

func ensureEmptyTarget(path string) error {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect target directory %s: %w", path, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("target directory %s already exists and is not empty", path)
	}
	return nil
}
