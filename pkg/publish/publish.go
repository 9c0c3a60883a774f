// Package publish commits a rendered formula into a Homebrew tap
// repository: clone, stage, commit, push, all through the local git
// binary authenticated with the API token.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/logging"
)

// Request describes one formula publication
type Request struct {
	FormulaPath string // rendered formula on local disk
	Owner       string // source repository owner
	Repo        string // source repository name
	Version     string // release tag, used verbatim in the commit message
	Description string // listing row text when the README table is updated
}

// RepositoryPublisher pushes a rendered formula into the tap repository
type RepositoryPublisher interface {
	Publish(ctx context.Context, req Request) error
}

// GitPublisher is the production RepositoryPublisher. A failed sub-step
// aborts publication; an already-cloned tap checkout is left on disk.
type GitPublisher struct {
	token         string
	tapOwner      string
	tapRepo       string
	commitOwner   string
	commitEmail   string
	formulaFolder string
	workdir       string
	updateReadme  bool
	runner        CommandRunner
}

// GitPublisherOptions configures a GitPublisher
type GitPublisherOptions struct {
	Token         string
	TapOwner      string
	TapRepo       string
	CommitOwner   string
	CommitEmail   string
	FormulaFolder string
	Workdir       string
	UpdateReadme  bool

	// Runner overrides the exec-backed runner, used by tests
	Runner CommandRunner
}

// NewGitPublisher creates the production publisher
func NewGitPublisher(opts GitPublisherOptions) *GitPublisher {
	runner := opts.Runner
	if runner == nil {
		runner = newExecRunner(opts.Token)
	}
	return &GitPublisher{
		token:         opts.Token,
		tapOwner:      opts.TapOwner,
		tapRepo:       opts.TapRepo,
		commitOwner:   opts.CommitOwner,
		commitEmail:   opts.CommitEmail,
		formulaFolder: opts.FormulaFolder,
		workdir:       opts.Workdir,
		updateReadme:  opts.UpdateReadme,
		runner:        runner,
	}
}

// authURL returns the token-authenticated clone/push URL for the tap
func (p *GitPublisher) authURL() string {
	return fmt.Sprintf("https://%s@github.com/%s/%s.git", p.token, p.tapOwner, p.tapRepo)
}

// tapDir is the local checkout path of the tap repository
func (p *GitPublisher) tapDir() string {
	return filepath.Join(p.workdir, p.tapRepo)
}

// Publish clones the tap, stages the formula (and optionally the README
// listing), commits and pushes. There is no rollback of completed
// sub-steps.
func (p *GitPublisher) Publish(ctx context.Context, req Request) error {
	logger := logging.GetLogger("publish")

	logger.Info().Str("tap", p.tapRepo).Msg("Setting up git environment")
	if out, err := p.runner.Run(ctx, p.workdir, "git", "clone", "--depth=2", p.authURL()); err != nil {
		return errors.Wrapf(err, errors.ErrPublishClone, "failed to clone tap %s/%s: %s", p.tapOwner, p.tapRepo, out)
	}

	tapDir := p.tapDir()
	if out, err := p.runner.Run(ctx, tapDir, "git", "config", "user.name", p.commitOwner); err != nil {
		return errors.Wrapf(err, errors.ErrPublishCommit, "failed to set commit user: %s", out)
	}
	if out, err := p.runner.Run(ctx, tapDir, "git", "config", "user.email", p.commitEmail); err != nil {
		return errors.Wrapf(err, errors.ErrPublishCommit, "failed to set commit email: %s", out)
	}

	if p.updateReadme {
		logger.Info().Msg("Updating the README formula listing")
		if err := UpdateReadmeListing(filepath.Join(tapDir, readmeFileName), ListingEntry{
			Owner:       req.Owner,
			Repo:        req.Repo,
			Description: req.Description,
		}); err != nil {
			return err
		}
		if out, err := p.runner.Run(ctx, tapDir, "git", "add", readmeFileName); err != nil {
			return errors.Wrapf(err, errors.ErrPublishStage, "failed to stage README: %s", out)
		}
	}

	formulaRelPath := filepath.Join(p.formulaFolder, filepath.Base(req.FormulaPath))
	if err := moveFile(req.FormulaPath, filepath.Join(tapDir, formulaRelPath)); err != nil {
		return err
	}

	if out, err := p.runner.Run(ctx, tapDir, "git", "add", formulaRelPath); err != nil {
		return errors.Wrapf(err, errors.ErrPublishStage, "failed to stage formula: %s", out)
	}

	message := fmt.Sprintf("Brew formula update for %s version %s", req.Repo, req.Version)
	if out, err := p.runner.Run(ctx, tapDir, "git", "commit", "-m", message); err != nil {
		return errors.Wrapf(err, errors.ErrPublishCommit, "failed to commit formula: %s", out)
	}

	logger.Info().
		Str("repo", req.Repo).
		Str("version", req.Version).
		Str("tap", p.tapRepo).
		Msg("Pushing formula to tap")
	if out, err := p.runner.Run(ctx, tapDir, "git", "push", p.authURL()); err != nil {
		return errors.Wrapf(err, errors.ErrPublishPush, "failed to push to tap %s/%s: %s", p.tapOwner, p.tapRepo, out)
	}

	return nil
}

// moveFile relocates src to dest, copying when a rename crosses
// filesystems
func moveFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrPublishStage, "failed to create %s", filepath.Dir(dest))
	}

	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPublishStage, "failed to open %s", src)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPublishStage, "failed to create %s", dest)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, errors.ErrPublishStage, "failed to copy formula to %s", dest)
	}

	return os.Remove(src)
}
