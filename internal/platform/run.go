package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
)

// Subprocess deadlines.
const (
	DefaultTimeout = 10 * time.Second
	CaptureTimeout = 30 * time.Second
	CompileTimeout = 60 * time.Second
)

// RunOutput executes a helper command with the given deadline and returns
// its stdout. Timeouts surface as platform-timeout; a missing binary as
// platform-unavailable; any other failure as platform-failure carrying
// the native stderr text.
func RunOutput(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	return runWithStdin(ctx, timeout, nil, name, args...)
}

// RunInput is RunOutput with data piped to the helper's stdin.
func RunInput(ctx context.Context, timeout time.Duration, stdin []byte, name string, args ...string) ([]byte, error) {
	return runWithStdin(ctx, timeout, stdin, name, args...)
}

func runWithStdin(ctx context.Context, timeout time.Duration, stdin []byte, name string, args ...string) ([]byte, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if cctx.Err() == context.DeadlineExceeded {
		return nil, cuperr.New(cuperr.PlatformTimeout, "%s timed out after %s", name, timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, cuperr.New(cuperr.PlatformUnavailable, "required helper %q is not installed", name)
	}
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = err.Error()
	}
	return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "%s failed: %s", name, msg)
}

// LookHelper verifies a required helper binary is on PATH.
func LookHelper(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return cuperr.New(cuperr.PlatformUnavailable, "required helper %q is not installed", name)
	}
	return nil
}
