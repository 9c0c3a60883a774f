package style

import (
	"testing"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/releaser"
	"github.com/stretchr/testify/assert"
)

func TestRenderResult(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		out := RenderResult(&releaser.Result{
			Repo:        "tool",
			Version:     "v1.2.0",
			Checksum:    "abc123",
			FormulaPath: "/tmp/tool.rb",
			Published:   true,
		})

		assert.Contains(t, out, "v1.2.0")
		assert.Contains(t, out, "tool")
		assert.Contains(t, out, "published to the tap")
		assert.Contains(t, out, "/tmp/tool.rb")
		assert.Contains(t, out, "abc123")
	})

	t.Run("skipped", func(t *testing.T) {
		out := RenderResult(&releaser.Result{Repo: "tool", Version: "v1.2.0"})

		assert.Contains(t, out, "publication skipped")
	})
}

func TestRenderError(t *testing.T) {
	t.Run("coded_error", func(t *testing.T) {
		err := errors.New(errors.ErrPublishPush, "push rejected")

		out := RenderError(err)
		assert.Contains(t, out, "PUBLISH_PUSH")
		assert.Contains(t, out, "push rejected")
	})

	t.Run("plain_error", func(t *testing.T) {
		out := RenderError(assert.AnError)
		assert.Contains(t, out, assert.AnError.Error())
	})

	t.Run("nil_error", func(t *testing.T) {
		assert.Empty(t, RenderError(nil))
	})
}
