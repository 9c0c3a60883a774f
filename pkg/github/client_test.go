package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/tool", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "token ghp_secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "tool",
			"description": "A fast CLI tool.",
			"homepage": "https://tool.example.com",
			"license": {"spdx_id": "MIT"}
		}`))
	}))
	defer server.Close()

	client := NewClient("ghp_secret", WithBaseURL(server.URL))

	repo, err := client.GetRepository(context.Background(), "acme", "tool")
	require.NoError(t, err)

	assert.Equal(t, "tool", repo.Name)
	assert.Equal(t, "A fast CLI tool.", repo.Description)
	require.NotNil(t, repo.License)
	assert.Equal(t, "MIT", repo.License.SpdxID)
}

func TestGetLatestRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/tool/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"name": "v1.2.0", "tag_name": "v1.2.0"}`))
	}))
	defer server.Close()

	client := NewClient("ghp_secret", WithBaseURL(server.URL))

	release, err := client.GetLatestRelease(context.Background(), "acme", "tool")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", release.Version())
}

func TestReleaseVersionFallsBackToTag(t *testing.T) {
	release := &Release{Name: "", TagName: "v0.9.1"}
	assert.Equal(t, "v0.9.1", release.Version())

	named := &Release{Name: "v1.0.0", TagName: "v1.0.0-tag"}
	assert.Equal(t, "v1.0.0", named.Version())
}

func TestNonSuccessStatusIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("ghp_secret", WithBaseURL(server.URL))

	_, err := client.GetRepository(context.Background(), "acme", "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHTTPStatus))
	assert.Equal(t, 404, errors.GetErrorDetails(err)["status"])
}

func TestTransportFailureIsFatal(t *testing.T) {
	client := NewClient("ghp_secret", WithBaseURL("http://127.0.0.1:1"))

	_, err := client.GetRepository(context.Background(), "acme", "tool")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransport))
}

func TestMalformedResponseIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient("ghp_secret", WithBaseURL(server.URL))

	_, err := client.GetLatestRelease(context.Background(), "acme", "tool")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDecode))
}
