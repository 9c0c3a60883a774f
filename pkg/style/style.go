// Package style renders run outcomes for the terminal.
package style

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/releaser"
)

// RenderResult formats a completed run for the user
func RenderResult(result *releaser.Result) string {
	action := "written locally (publication skipped)"
	if result.Published {
		action = "published to the tap"
	}

	return fmt.Sprintf("%s %s %s of %s %s\n  formula:  %s\n  sha256:   %s",
		pterm.Success.Prefix.Text,
		pterm.Success.MessageStyle.Sprint("Released"),
		result.Version,
		result.Repo,
		action,
		result.FormulaPath,
		result.Checksum)
}

// RenderError formats a failed run, surfacing the error code when the
// error carries one
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}
