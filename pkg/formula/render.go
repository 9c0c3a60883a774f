// Package formula renders Homebrew formula documents that satisfy the
// strict audit rules (`brew audit --strict --online`) without invoking
// brew itself: proper class name, bounded desc without articles or
// punctuation, present homepage, archive URL with matching sha256, an
// install block and an optional test block.
package formula

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/brewtap/pkg/errors"
	"github.com/arthur-debert/brewtap/pkg/logging"
)

// Params carries everything the renderer needs. All fields except Test
// must be non-empty.
type Params struct {
	Owner       string
	Repo        string
	Description string
	License     string
	Checksum    string
	ArchiveURL  string
	Install     string
	Test        string
}

// validate surfaces malformed metadata as a precondition violation
func (p *Params) validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return errors.New(errors.ErrRenderInvalid, "repository has no description")
	}
	if strings.TrimSpace(p.License) == "" {
		return errors.New(errors.ErrRenderInvalid, "repository has no machine-readable license")
	}
	if strings.TrimSpace(p.Install) == "" {
		return errors.New(errors.ErrRenderInvalid, "install recipe is empty")
	}
	return nil
}

// Render produces the final formula document. It performs no I/O and
// always succeeds given well-formed params.
func Render(p Params) (string, error) {
	logger := logging.GetLogger("formula")

	if err := p.validate(); err != nil {
		return "", err
	}

	closing := "end"
	if test := strings.TrimSpace(p.Test); test != "" {
		closing = fmt.Sprintf("\n  test do\n    %s\n  end\nend\n", test)
	}

	doc := fmt.Sprintf(`# typed: false
# frozen_string_literal: true

# This file was generated by brewtap. DO NOT EDIT.
class %s < Formula
  desc "%s"
  homepage "%s"
  url "%s"
  sha256 "%s"
  license "%s"
  bottle :unneeded

  def install
    %s
  end
%s
`,
		ClassName(p.Repo),
		FormatDescription(p.Description, p.Repo),
		Homepage(p.Owner, p.Repo),
		p.ArchiveURL,
		p.Checksum,
		p.License,
		strings.TrimSpace(p.Install),
		closing,
	)

	logger.Debug().Str("repo", p.Repo).Msg("Formula rendered")
	return doc, nil
}

// FileName returns the formula file name for a repository
func FileName(repo string) string {
	return repo + ".rb"
}
