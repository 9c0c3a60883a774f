// Package archive resolves and downloads the source tarball for a
// tagged release.
package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/logging"
)

// ResolveURL returns the canonical source archive URL for a release tag.
// The result always ends in .tar.gz per the host's archive convention.
func ResolveURL(owner, repo, version string) string {
	return fmt.Sprintf("https://github.com/%s/%s/archive/%s.tar.gz", owner, repo, version)
}

// Download streams the archive at url into dest. The request carries no
// credentials: release archives are served from the public download host.
// Any transport failure, non-2xx status or write error is terminal.
func Download(ctx context.Context, url, dest string) error {
	logger := logging.GetLogger("archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransport, "failed to build request for %s", url)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransport, "failed to download %s", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Newf(errors.ErrHTTPStatus, "unexpected status %d downloading %s", resp.StatusCode, url).
			WithDetail("status", resp.StatusCode).
			WithDetail("url", url)
	}

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dest)
	}
	defer func() {
		_ = out.Close()
	}()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write archive to %s", dest)
	}

	logger.Debug().
		Str("url", url).
		Str("dest", dest).
		Int64("bytes", written).
		Msg("Archive downloaded")

	return nil
}
