package model

import "time"

const (
	// DefaultTimeout bounds a single provisioning-tool run.
	DefaultTimeout = 5 * time.Minute

	// DefaultMaxOutputBytes caps each captured stream independently.
	DefaultMaxOutputBytes = 10 * 1024 * 1024

	// TruncationMarker is appended exactly once to a stream that hit its cap.
	TruncationMarker = "\n... [output truncated]"

	// ExitCodeTimeout is the reserved exit code reported for a run that was
	// killed by the executor's timeout, mirroring the conventional 124 used
	// by timeout(1). It overrides whatever code the process itself reported.
	ExitCodeTimeout = 124
)

// ExecutionRequest configures one sandboxed run of the provisioning tool.
// Zero values for Timeout and MaxOutputBytes mean the defaults above.
type ExecutionRequest struct {
	// Command is the tool subcommand, e.g. "init" or "plan".
	Command string

	// Args are the remaining arguments after the subcommand.
	Args []string

	// WorkingDirectory is where the tool runs. It must resolve under the
	// executor's sandbox root or the request is rejected before spawn.
	WorkingDirectory string

	// EnvOverlay is merged onto the ambient environment, overriding on key
	// collisions. Used for credential and plugin-cache injection.
	EnvOverlay map[string]string

	Timeout        time.Duration
	MaxOutputBytes int64

	// OnStdout and OnStderr, when set, receive each captured chunk as it
	// arrives. Calls are serialized per stream but may interleave across
	// the two streams.
	OnStdout func(chunk string)
	OnStderr func(chunk string)
}

// ExecutionResult reports the outcome of one run. It is returned for every
// subprocess-level condition (nonzero exit, timeout, spawn failure); only a
// sandbox violation surfaces as an error instead.
type ExecutionResult struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int

	StdoutTruncated bool
	StderrTruncated bool
	TimedOut        bool

	// ErrorMessage is a human-readable failure description: the OS error
	// for spawn failures, a timeout notice for timed-out runs, or the
	// tool's own stderr lead for ordinary failures.
	ErrorMessage string
}
