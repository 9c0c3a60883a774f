// Package releaser sequences a release run: fetch repository metadata,
// fetch the latest release, resolve and download the source archive,
// compute its checksum, render the formula, write it locally and,
// unless publication is skipped, push it to the tap. Every stage runs
// to completion before the next begins and the first failure aborts
// the run.
package releaser

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/brewtap/pkg/archive"
	"github.com/arthur-debert/brewtap/pkg/checksum"
	"github.com/arthur-debert/brewtap/pkg/config"
	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/formula"
	"github.com/arthur-debert/brewtap/pkg/github"
	"github.com/arthur-debert/brewtap/pkg/logging"
	"github.com/arthur-debert/brewtap/pkg/publish"
)

// archiveFileName is the scratch file the release tarball lands in
const archiveFileName = "tar_archive.tar.gz"

// MetadataFetcher is the read-only slice of the hosting API the run needs
type MetadataFetcher interface {
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.Release, error)
}

// Downloader streams the archive at url into dest
type Downloader func(ctx context.Context, url, dest string) error

// Result summarizes a completed run for the caller to render
type Result struct {
	Owner       string
	Repo        string
	Version     string
	Checksum    string
	FormulaPath string
	Published   bool
}

// Releaser drives the release pipeline
type Releaser struct {
	cfg       *config.Config
	fetcher   MetadataFetcher
	download  Downloader
	digest    checksum.DigestComputer
	publisher publish.RepositoryPublisher
}

// Option overrides a collaborator, used by tests
type Option func(*Releaser)

// WithFetcher replaces the hosting API client
func WithFetcher(f MetadataFetcher) Option {
	return func(r *Releaser) {
		r.fetcher = f
	}
}

// WithDownloader replaces the archive downloader
func WithDownloader(d Downloader) Option {
	return func(r *Releaser) {
		r.download = d
	}
}

// WithDigestComputer replaces the checksum engine
func WithDigestComputer(d checksum.DigestComputer) Option {
	return func(r *Releaser) {
		r.digest = d
	}
}

// WithPublisher replaces the publication gateway
func WithPublisher(p publish.RepositoryPublisher) Option {
	return func(r *Releaser) {
		r.publisher = p
	}
}

// New creates a Releaser wired with the production collaborators
func New(cfg *config.Config, opts ...Option) *Releaser {
	r := &Releaser{
		cfg:      cfg,
		fetcher:  github.NewClient(cfg.GithubToken, github.WithTimeout(cfg.Timeout())),
		download: archive.Download,
		digest:   checksum.NewSHA256Computer(),
		publisher: publish.NewGitPublisher(publish.GitPublisherOptions{
			Token:         cfg.GithubToken,
			TapOwner:      cfg.HomebrewOwner,
			TapRepo:       cfg.HomebrewTap,
			CommitOwner:   cfg.CommitOwner,
			CommitEmail:   cfg.CommitEmail,
			FormulaFolder: cfg.FormulaFolder,
			Workdir:       cfg.Workdir,
			UpdateReadme:  cfg.UpdateReadmeTable,
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pipeline. It validates the configuration before any
// network activity and aborts on the first failing stage; there is no
// retry and no rollback of completed side effects.
func (r *Releaser) Run(ctx context.Context) (*Result, error) {
	logger := logging.GetLogger("releaser")

	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	owner := r.cfg.GithubOwner
	repoName := r.cfg.GithubRepo

	logger.Info().Str("repo", repoName).Msg("Collecting repository metadata")
	repository, err := r.fetcher.GetRepository(ctx, owner, repoName)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("repo", repoName).Msg("Fetching latest release")
	release, err := r.fetcher.GetLatestRelease(ctx, owner, repoName)
	if err != nil {
		return nil, err
	}
	version := release.Version()
	if version == "" {
		return nil, errors.New(errors.ErrRenderInvalid, "latest release has no name or tag")
	}

	tarURL := archive.ResolveURL(owner, repoName, version)

	logger.Info().Str("url", tarURL).Msg("Downloading release archive")
	archivePath := filepath.Join(r.cfg.Workdir, archiveFileName)
	downloadCtx, cancelDownload := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancelDownload()
	if err := r.download(downloadCtx, tarURL, archivePath); err != nil {
		return nil, err
	}

	logger.Info().Msg("Generating archive checksum")
	digestCtx, cancelDigest := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancelDigest()
	digest, err := r.digest.Compute(digestCtx, archivePath)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("repo", repoName).Str("version", version).Msg("Generating Homebrew formula")
	doc, err := formula.Render(formula.Params{
		Owner:       owner,
		Repo:        repoName,
		Description: repository.Description,
		License:     licenseID(repository),
		Checksum:    digest,
		ArchiveURL:  tarURL,
		Install:     r.cfg.Install,
		Test:        r.cfg.Test,
	})
	if err != nil {
		return nil, err
	}

	formulaPath := filepath.Join(r.cfg.Workdir, formula.FileName(formulaName(repository, repoName)))
	if err := os.WriteFile(formulaPath, []byte(doc), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write formula to %s", formulaPath)
	}

	result := &Result{
		Owner:       owner,
		Repo:        repoName,
		Version:     version,
		Checksum:    digest,
		FormulaPath: formulaPath,
	}

	if r.cfg.SkipPublish {
		logger.Info().Str("tap", r.cfg.HomebrewTap).Msg("Skipping publication to tap")
		return result, nil
	}

	logger.Info().
		Str("repo", repoName).
		Str("version", version).
		Str("tap", r.cfg.HomebrewTap).
		Msg("Publishing formula to tap")
	publishCtx, cancelPublish := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancelPublish()
	if err := r.publisher.Publish(publishCtx, publish.Request{
		FormulaPath: formulaPath,
		Owner:       owner,
		Repo:        repoName,
		Version:     version,
		Description: formula.FormatDescription(repository.Description, repoName),
	}); err != nil {
		return nil, err
	}
	result.Published = true

	logger.Info().
		Str("repo", repoName).
		Str("version", version).
		Str("tap", r.cfg.HomebrewTap).
		Msg("Release published")

	return result, nil
}

// licenseID returns the machine-readable license identifier, empty when
// the repository has none
func licenseID(repo *github.Repository) string {
	if repo.License == nil {
		return ""
	}
	return repo.License.SpdxID
}

// formulaName prefers the API-reported repository name, matching the
// file the tap ultimately serves
func formulaName(repo *github.Repository, fallback string) string {
	if repo.Name != "" {
		return repo.Name
	}
	return fallback
}
