package gitutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// seedRemote initializes a non-bare repository with a single commit, standing
// in for a remote created with auto_init enabled.
func seedRemote(t *testing.T, path string) {
	t.Helper()
	repo, err := git.PlainInit(path, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(path, "README.md"), []byte("# hello\n"), 0o644))
	_, err = worktree.Add("README.md")
	require.NoError(t, err)
	_, err = worktree.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestClone(t *testing.T) {
	tmp := t.TempDir()
	remotePath := filepath.Join(tmp, "remote")
	seedRemote(t, remotePath)

	clonePath := filepath.Join(tmp, "clone")
	c := newTestClient()
	require.NoError(t, c.Clone(context.Background(), remotePath, clonePath, ""))

	_, err := os.Stat(filepath.Join(clonePath, "README.md"))
	assert.NoError(t, err)
	_, err = git.PlainOpen(clonePath)
	assert.NoError(t, err)
}

func TestClone_RejectsNonEmptyTarget(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "existing.txt"), []byte("x"), 0o644))

	c := newTestClient()
	err := c.Clone(context.Background(), "https://example.invalid/repo.git", target, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists and is not empty")
}

func TestClone_EmptyRemoteInitializesLocally(t *testing.T) {
	tmp := t.TempDir()
	remotePath := filepath.Join(tmp, "remote.git")
	_, err := git.PlainInit(remotePath, true)
	require.NoError(t, err)

	clonePath := filepath.Join(tmp, "clone")
	c := newTestClient()
	require.NoError(t, c.Clone(context.Background(), remotePath, clonePath, ""))

	repo, err := git.PlainOpen(clonePath)
	require.NoError(t, err)
	remote, err := repo.Remote(git.DefaultRemoteName)
	require.NoError(t, err)
	assert.Equal(t, []string{remotePath}, remote.Config().URLs)
}

func TestCommitFileAndPush(t *testing.T) {
	tmp := t.TempDir()
	remotePath := filepath.Join(tmp, "remote.git")
	_, err := git.PlainInit(remotePath, true)
	require.NoError(t, err)

	clonePath := filepath.Join(tmp, "clone")
	c := newTestClient()
	ctx := context.Background()
	require.NoError(t, c.Clone(ctx, remotePath, clonePath, ""))

	const body = "bin/\n*.exe\n"
	sha, err := c.CommitFileAndPush(ctx, clonePath, ".gitignore", body, "Add .gitignore file", "main", "")
	require.NoError(t, err)

	// The remote must hold exactly the pushed commit on the target branch.
	remote, err := git.PlainOpen(remotePath)
	require.NoError(t, err)
	ref, err := remote.Reference(plumbing.NewBranchReferenceName("main"), true)
	require.NoError(t, err)
	assert.Equal(t, sha, ref.Hash().String())

	commit, err := remote.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Add .gitignore file", commit.Message)
	assert.Equal(t, 0, commit.NumParents())

	file, err := commit.File(".gitignore")
	require.NoError(t, err)
	content, err := file.Contents()
	require.NoError(t, err)
	assert.Equal(t, body, content)
}

func TestCommitFileAndPush_NotARepo(t *testing.T) {
	c := newTestClient()
	_, err := c.CommitFileAndPush(context.Background(), t.TempDir(), ".gitignore", "x", "msg", "main", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open repository")
}

func TestBasicAuth(t *testing.T) {
	assert.Nil(t, basicAuth(""))

	auth := basicAuth("secret")
	require.NotNil(t, auth)
	assert.Contains(t, auth.String(), "x-access-token")
}
