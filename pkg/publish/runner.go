package publish

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/brewtap/pkg/logging"
)

// CommandRunner executes a single external command in a working
// directory and returns its combined output. It exists so tests can
// record invocations without a git binary or network.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// execRunner is the production CommandRunner backed by os/exec
type execRunner struct {
	redact string
}

// newExecRunner creates a runner that masks secret in anything it logs
func newExecRunner(secret string) *execRunner {
	return &execRunner{redact: secret}
}

func (r *execRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	logger := logging.GetLogger("publish.runner")

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().
		Str("command", name).
		Strs("args", r.redactArgs(args)).
		Str("dir", dir).
		Msg("Executing command")

	err := cmd.Run()
	output := stdout.String() + stderr.String()

	if err != nil {
		logger.Error().
			Err(err).
			Str("command", name).
			Str("output", r.redactString(output)).
			Msg("Command execution failed")
	}

	return output, err
}

// redactArgs masks the auth token in command arguments before logging
func (r *execRunner) redactArgs(args []string) []string {
	if r.redact == "" {
		return args
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.redactString(a)
	}
	return out
}

func (r *execRunner) redactString(s string) string {
	if r.redact == "" {
		return s
	}
	return strings.ReplaceAll(s, r.redact, "***")
}
