package checksum

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestCompute(t *testing.T) {
	path := writeTempFile(t, []byte("Hello, World!\n"))

	digest, err := NewSHA256Computer().Compute(context.Background(), path)
	require.NoError(t, err)

	assert.Regexp(t, hexDigest, digest)
	// Known digest of "Hello, World!\n"
	assert.Equal(t, "c98c24b677eff44860afea6f493bbaec5bb1c4cbb209c6fc2bbb47f66ff2ad31", digest)
}

func TestComputeIsDeterministic(t *testing.T) {
	path := writeTempFile(t, []byte("same content every time"))
	computer := NewSHA256Computer()

	first, err := computer.Compute(context.Background(), path)
	require.NoError(t, err)
	second, err := computer.Compute(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeDiffersOnSingleByteChange(t *testing.T) {
	computer := NewSHA256Computer()

	first, err := computer.Compute(context.Background(), writeTempFile(t, []byte("content-a")))
	require.NoError(t, err)
	second, err := computer.Compute(context.Background(), writeTempFile(t, []byte("content-b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestComputeDoesNotMutateSource(t *testing.T) {
	content := []byte("immutable input")
	path := writeTempFile(t, content)

	_, err := NewSHA256Computer().Compute(context.Background(), path)
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, after)
}

func TestComputeMissingFile(t *testing.T) {
	_, err := NewSHA256Computer().Compute(context.Background(), "/non/existent/archive.tar.gz")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumFailed))
}

func TestComputeExpiredBudget(t *testing.T) {
	path := writeTempFile(t, []byte("content"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSHA256Computer().Compute(ctx, path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumTimeout))
}

func TestComputeBytes(t *testing.T) {
	digest := ComputeBytes([]byte("Hello, World!\n"))
	assert.Equal(t, "c98c24b677eff44860afea6f493bbaec5bb1c4cbb209c6fc2bbb47f66ff2ad31", digest)
}
