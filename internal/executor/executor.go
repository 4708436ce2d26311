package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/RishabhK9/cloudist/internal/ctxlog"
	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/sandbox"
)

// notInstalledFragments are the OS error substrings that distinguish a
// missing tool from other spawn failures.
var notInstalledFragments = []string{
	"executable file not found",
	"no such file or directory",
	"not found in $PATH",
	"permission denied",
}

// Executor runs one provisioning binary under a sandbox guard. The struct
// itself holds only configuration; everything per-run lives on the stack of
// Run, so concurrent invocations never interfere.
type Executor struct {
	binary string
	guard  *sandbox.Guard

	// start is the spawn seam; tests substitute it to observe or stub the
	// actual process start.
	start func(cmd *exec.Cmd) error
}

// New returns an executor for the given tool binary, confined by guard.
func New(binary string, guard *sandbox.Guard) *Executor {
	return &Executor{
		binary: binary,
		guard:  guard,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Run executes `<binary> <command> [args...]` per the request. The returned
// error is non-nil only for pre-spawn sandbox violations; every
// subprocess-level outcome is reported through the ExecutionResult.
func (e *Executor) Run(ctx context.Context, req model.ExecutionRequest) (model.ExecutionResult, error) {
	logger := ctxlog.FromContext(ctx).With("command", req.Command)

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	maxOutput := req.MaxOutputBytes
	if maxOutput <= 0 {
		maxOutput = model.DefaultMaxOutputBytes
	}

	// Path validation is mandatory before any directory work or spawn.
	dir, err := e.guard.Validate(req.WorkingDirectory)
	if err != nil {
		logger.Error("Working directory rejected by sandbox guard.", "dir", req.WorkingDirectory, "error", err)
		return model.ExecutionResult{}, err
	}

	stdout := newCaptureWriter(maxOutput, req.OnStdout)
	stderr := newCaptureWriter(maxOutput, req.OnStderr)

	argv := append([]string{req.Command}, req.Args...)
	cmd := exec.Command(e.binary, argv...)
	cmd.Dir = dir
	cmd.Env = mergeEnv(os.Environ(), req.EnvOverlay)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Stdin stays nil: the child reads from the null device, never a TTY.

	logger.Debug("Spawning provisioning tool.", "binary", e.binary, "dir", dir, "timeout", timeout)
	if err := e.start(cmd); err != nil {
		logger.Error("Spawn failed.", "error", err)
		return model.ExecutionResult{
			Success:      false,
			ExitCode:     1,
			ErrorMessage: err.Error(),
		}, nil
	}

	esc := newEscalator(cmd.Process, timeout)
	waitErr := cmd.Wait()
	esc.done()

	result := model.ExecutionResult{
		Stdout:          stdout.String(),
		Stderr:          stderr.String(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
		TimedOut:        esc.fired(),
	}

	switch {
	case result.TimedOut:
		// The reserved code overrides whatever the killed process reported.
		result.ExitCode = model.ExitCodeTimeout
		result.ErrorMessage = fmt.Sprintf("process timed out after %s", timeout)
		if waitErr != nil {
			result.ErrorMessage += ": " + waitErr.Error()
		}
	case waitErr == nil:
		result.Success = true
	default:
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
		result.ErrorMessage = waitErr.Error()
	}

	logger.Debug("Process finished.",
		"success", result.Success,
		"exitCode", result.ExitCode,
		"timedOut", result.TimedOut,
	)
	return result, nil
}

// IsToolNotInstalled reports whether a failed result looks like the
// provisioning binary being absent or unexecutable, so callers can surface
// an install hint instead of a raw OS error.
func IsToolNotInstalled(result model.ExecutionResult) bool {
	if result.Success || result.ErrorMessage == "" {
		return false
	}
	msg := strings.ToLower(result.ErrorMessage)
	for _, fragment := range notInstalledFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// mergeEnv overlays the request environment onto the ambient one,
// overriding on key collisions.
func mergeEnv(ambient []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return ambient
	}
	merged := make([]string, 0, len(ambient)+len(overlay))
	for _, kv := range ambient {
		key, _, _ := strings.Cut(kv, "=")
		if _, shadowed := overlay[key]; !shadowed {
			merged = append(merged, kv)
		}
	}
	for k, v := range overlay {
		merged = append(merged, k+"="+v)
	}
	return merged
}
