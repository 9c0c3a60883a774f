package main

// Short messages (one-liners)
const (
	MsgRootShort    = "Release software as a Homebrew formula to a tap"
	MsgVersionShort = "Print version information"
	MsgReleaseShort = "Generate and publish a formula for the latest release"
)

// Long messages
const (
	MsgRootLong = `brewtap turns the latest tagged release of a repository into a Homebrew
formula and commits it to a tap repository: it fetches the release, downloads
the source archive, computes its sha256, renders a formula that satisfies
brew audit, and pushes the result.`

	MsgReleaseLong = `Release runs the full pipeline for the configured repository: fetch
repository and release metadata, download the source archive, compute its
checksum, render the formula, write it locally and publish it to the tap.

Configuration comes from INPUT_-prefixed environment variables (the CI
convention) or a .brewtap.toml/.brewtap.yaml file in the working directory.
Required: INPUT_GITHUB_TOKEN, INPUT_INSTALL, INPUT_HOMEBREW_OWNER,
INPUT_HOMEBREW_TAP.`

	MsgReleaseExample = `  # Publish the latest release of the current repository
  INPUT_GITHUB_TOKEN=... INPUT_INSTALL='bin.install "tool"' \
  INPUT_HOMEBREW_OWNER=acme INPUT_HOMEBREW_TAP=homebrew-tools \
  brewtap release

  # Render the formula locally without touching the tap
  brewtap release --skip-publish`
)
