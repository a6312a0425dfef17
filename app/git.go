package app

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitRepo provides a wrapper around a go-git repository, simplifying git operations.
type GitRepo struct {
	repo *git.Repository
}

// OpenRepo opens the git repository containing path, searching parent directories for .git.
func OpenRepo(path string) (*GitRepo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &GitRepo{repo: repo}, nil
}

// ReadFile returns the contents of path as of revision rev (a branch, tag, SHA or expression such as HEAD~1).
func (g *GitRepo) ReadFile(rev, path string) (string, error) {
	hash, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("failed to resolve revision %s: %w", rev, err)
	}

	commit, err := g.repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", hash.String()[:8], err)
	}

	file, err := commit.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to find %s at %s: %w", path, rev, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, rev, err)
	}

	return contents, nil
}

// ShortHash resolves rev and returns its abbreviated commit hash.
func (g *GitRepo) ShortHash(rev string) (string, error) {
	hash, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("failed to resolve revision %s: %w", rev, err)
	}
	return hash.String()[:8], nil
}
