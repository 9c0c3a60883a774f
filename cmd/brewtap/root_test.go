package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	require.NoError(t, err)
}

func TestReleaseCmdFailsFastOnMissingConfig(t *testing.T) {
	// No INPUT_ variables set: the run must abort during validation,
	// before any network activity
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"release"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG_MISSING")
}

func TestReleaseCmdHasPublishFlags(t *testing.T) {
	cmd := newReleaseCmd()

	assert.NotNil(t, cmd.Flags().Lookup("skip-publish"))
	assert.NotNil(t, cmd.Flags().Lookup("update-readme-table"))
}
