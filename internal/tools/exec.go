package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrToolUnavailable indicates the external tool is not installed or not on
// PATH. Scorers map this to a neutral score rather than failing the run.
var ErrToolUnavailable = errors.New("tool unavailable")

// ErrTimeout indicates the tool exceeded its time budget
var ErrTimeout = errors.New("tool timed out")

// run executes an external tool and captures its output. Arguments are
// passed as a vector, never through a shell, and must not contain NUL bytes.
// A non-zero exit is not an error by itself: most linters exit non-zero on
// findings, so callers get the captured output either way.
func run(ctx context.Context, timeout time.Duration, dir string, name string, args ...string) (stdout, stderr string, err error) {
	for _, arg := range args {
		if strings.ContainsRune(arg, 0) {
			return "", "", fmt.Errorf("command argument contains NUL byte")
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if ctx.Err() == context.DeadlineExceeded {
		return stdout, stderr, ErrTimeout
	}
	if runErr != nil {
		var execErr *exec.Error
		if errors.As(runErr, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return stdout, stderr, ErrToolUnavailable
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Findings produce non-zero exits; output is still usable.
			return stdout, stderr, nil
		}
		return stdout, stderr, runErr
	}
	return stdout, stderr, nil
}
