// Package executor spawns the provisioning tool as a sandboxed subprocess.
//
// Every invocation gets fully piped stdio, an environment overlay merged
// onto the ambient environment, per-stream output caps, and a
// timeout-escalation state machine (Running → Signaled → Killed → Exited)
// with a single escalation guard so a racing timer can never double-signal
// the process.
//
// All subprocess-level outcomes (nonzero exit, timeout, spawn failure) come
// back as an ExecutionResult rather than an error; the only error Run ever
// returns is a sandbox violation, raised before spawn. State is
// invocation-local, so any number of runs may proceed concurrently in
// distinct working directories.
package executor
