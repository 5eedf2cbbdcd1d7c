// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// RepoRequest carries the settings for the repository to create. The flags
// mirror the fields of the user's config file one to one.
type RepoRequest struct {
	Name        string
	Private     bool
	Description string
	Homepage    string
	HasIssues   bool
	HasWiki     bool
	AutoInit    bool
}

// CreatedRepo holds the metadata the provisioning workflow needs from a
// freshly created repository.
type CreatedRepo struct {
	Name          string
	HTMLURL       string
	CloneURL      string
	DefaultBranch string
}

// Client defines the GitHub operations the provisioning workflow depends on.
type Client interface {
	CreateRepo(ctx context.Context, req RepoRequest) (*CreatedRepo, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient wraps the official go-github client to provide a focused,
// testable interface for the repository operations this tool performs.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal
// Access Token (PAT). The token is passed in explicitly; no ambient
// credential state is read.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return &gitHubClient{client: client, logger: logger}
}

// CreateRepo creates a repository under the authenticated user and returns
// its metadata. API errors are surfaced verbatim; a 422 additionally gets a
// name-collision hint since that is its most common cause.
func (g *gitHubClient) CreateRepo(ctx context.Context, req RepoRequest) (*CreatedRepo, error) {
	repo := &github.Repository{
		Name:        github.Ptr(req.Name),
		Private:     github.Ptr(req.Private),
		Description: github.Ptr(req.Description),
		Homepage:    github.Ptr(req.Homepage),
		HasIssues:   github.Ptr(req.HasIssues),
		HasWiki:     github.Ptr(req.HasWiki),
		AutoInit:    github.Ptr(req.AutoInit),
	}

	created, resp, err := g.client.Repositories.Create(ctx, "", repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			g.logger.Error("repository creation rejected", "repo", req.Name, "status", resp.StatusCode)
			return nil, fmt.Errorf("repository %q may already exist: %w", req.Name, err)
		}
		g.logger.Error("failed to create repository", "repo", req.Name, "error", err)
		return nil, err
	}

	g.logger.Info("repository created", "repo", created.GetName(), "url", created.GetHTMLURL())
	return &CreatedRepo{
		Name:          created.GetName(),
		HTMLURL:       created.GetHTMLURL(),
		CloneURL:      created.GetCloneURL(),
		DefaultBranch: created.GetDefaultBranch(),
	}, nil
}
