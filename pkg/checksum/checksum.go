// Package checksum computes the SHA-256 digest of a downloaded archive.
package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/logging"
)

// readChunkSize is how many bytes are hashed between deadline checks
const readChunkSize = 1 << 20

// DigestComputer computes a content digest for a local file
type DigestComputer interface {
	Compute(ctx context.Context, path string) (string, error)
}

// SHA256Computer is the production DigestComputer. It streams the file
// through crypto/sha256, honoring the context deadline between chunks
// so an oversized or stalled read cannot hang a run.
type SHA256Computer struct{}

// NewSHA256Computer creates the production digest computer
func NewSHA256Computer() *SHA256Computer {
	return &SHA256Computer{}
}

// Compute returns the 64-character lowercase hex SHA-256 digest of the
// file at path. The file is only read, never modified.
func (c *SHA256Computer) Compute(ctx context.Context, path string) (string, error) {
	logger := logging.GetLogger("checksum")

	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrChecksumFailed, "failed to open %s", path)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	buf := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrapf(err, errors.ErrChecksumTimeout, "checksum of %s exceeded time budget", path)
		}

		n, err := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrChecksumFailed, "failed to read %s", path)
		}
	}

	digest := hex.EncodeToString(hash.Sum(nil))
	logger.Debug().Str("path", path).Str("sha256", digest).Msg("Checksum computed")

	return digest, nil
}

// ComputeBytes hashes in-memory content, used for content already held
// in memory rather than on disk.
func ComputeBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
