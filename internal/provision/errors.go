package provision

import "errors"

// One sentinel per workflow step. Every failure wraps the step sentinel
// around the underlying cause, so callers can both identify the failing
// step with errors.Is and print the verbatim cause.
var (
	ErrRemoteCreation = errors.New("remote repository creation failed")
	ErrClone          = errors.New("repository clone failed")
	ErrTemplateFetch  = errors.New("gitignore template fetch failed")
	ErrCommitPush     = errors.New("commit and push failed")
)
