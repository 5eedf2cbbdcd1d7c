// Package provision runs the repository provisioning workflow: create the
// remote repository, clone it locally, fetch a gitignore template, and
// commit the file back to the remote.
//
// The workflow is strictly sequential. The first failing step aborts the
// run; there is no retry, rollback, or resume. A remote repository created
// before a later step fails is left in place for manual cleanup.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sevigo/repoforge/internal/config"
	"github.com/sevigo/repoforge/internal/github"
	"github.com/sevigo/repoforge/internal/gitignore"
)

// CommitMessage is the fixed message used for the gitignore commit.
const CommitMessage = "Add .gitignore file"

// RepoCreator creates the remote repository.
type RepoCreator interface {
	CreateRepo(ctx context.Context, req github.RepoRequest) (*github.CreatedRepo, error)
}

// GitClient performs the local git operations against the clone.
type GitClient interface {
	Clone(ctx context.Context, repoURL, path, token string) error
	CommitFileAndPush(ctx context.Context, repoPath, name, content, message, branch, token string) (string, error)
}

// TemplateFetcher resolves a gitignore template name to its body.
type TemplateFetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// Reporter receives step progress for human display. The service reports
// every step as it starts and as it completes; implementations decide how
// much of that to show.
type Reporter interface {
	Step(name string)
	Done(details ...string)
}

type nopReporter struct{}

func (nopReporter) Step(string)    {}
func (nopReporter) Done(...string) {}

// Result describes a completed run.
type Result struct {
	RepoURL            string
	CloneURL           string
	ClonePath          string
	CommitSHA          string
	GitignoreCommitted bool
	TemplateName       string
	UsedFallback       bool
}

// Service wires the workflow's collaborators together.
type Service struct {
	creator   RepoCreator
	git       GitClient
	templates TemplateFetcher
	logger    *slog.Logger
	reporter  Reporter
}

// NewService returns a Service. A nil reporter disables progress output.
func NewService(creator RepoCreator, git GitClient, templates TemplateFetcher, logger *slog.Logger, reporter Reporter) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Service{
		creator:   creator,
		git:       git,
		templates: templates,
		logger:    logger,
		reporter:  reporter,
	}
}

// Run executes the workflow for cfg. dir overrides the clone directory;
// when empty, the repository name is used. cfg must already be validated.
//
// When no gitignore template is configured, the run ends successfully after
// the clone: nothing is written, committed, or pushed.
func (s *Service) Run(ctx context.Context, cfg *config.Config, dir string) (*Result, error) {
	s.reporter.Step(fmt.Sprintf("Creating GitHub repository %q", cfg.RepoName))
	created, err := s.creator.CreateRepo(ctx, github.RepoRequest{
		Name:        cfg.RepoName,
		Private:     cfg.Private,
		Description: cfg.Description,
		Homepage:    cfg.Homepage,
		HasIssues:   cfg.HasIssues,
		HasWiki:     cfg.HasWiki,
		AutoInit:    cfg.AutoInit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCreation, err)
	}
	s.reporter.Done("url: " + created.HTMLURL)

	path := dir
	if path == "" {
		path = cfg.RepoName
	}
	clonePath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve clone directory %q: %w", ErrClone, path, err)
	}

	s.reporter.Step(fmt.Sprintf("Cloning into %s", clonePath))
	if err := s.git.Clone(ctx, created.CloneURL, clonePath, cfg.GitHubToken); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClone, err)
	}
	s.reporter.Done("path: " + clonePath)

	result := &Result{
		RepoURL:      created.HTMLURL,
		CloneURL:     created.CloneURL,
		ClonePath:    clonePath,
		TemplateName: cfg.GitignoreTemplate,
	}

	if cfg.GitignoreTemplate == "" {
		s.logger.InfoContext(ctx, "no gitignore template configured, skipping")
		return result, nil
	}

	s.reporter.Step(fmt.Sprintf("Fetching gitignore template %q", cfg.GitignoreTemplate))
	content, err := s.templates.Fetch(ctx, cfg.GitignoreTemplate)
	switch {
	case err == nil:
		s.reporter.Done()
	case cfg.FallbackGitignore && errors.Is(err, gitignore.ErrUnknownTemplate):
		s.logger.WarnContext(ctx, "template not found, using built-in fallback", "template", cfg.GitignoreTemplate)
		content = gitignore.Fallback(cfg.GitignoreTemplate)
		result.UsedFallback = true
		s.reporter.Done("built-in fallback template")
	default:
		return nil, fmt.Errorf("%w: %w", ErrTemplateFetch, err)
	}

	branch := created.DefaultBranch
	if branch == "" {
		branch = "main"
	}
	s.reporter.Step("Committing and pushing .gitignore")
	sha, err := s.git.CommitFileAndPush(ctx, clonePath, ".gitignore", content, CommitMessage, branch, cfg.GitHubToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitPush, err)
	}
	result.CommitSHA = sha
	result.GitignoreCommitted = true
	s.reporter.Done("commit: " + sha)

	return result, nil
}
